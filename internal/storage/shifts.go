package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Shifts are stored as little-endian float64 bits, 8 bytes per tick.

func encodeShifts(shifts []float64) []byte {
	buf := make([]byte, 8*len(shifts))
	for i, v := range shifts {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func decodeShifts(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("shift trace length %d is not a multiple of 8", len(buf))
	}
	out := make([]float64, len(buf)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}
	return out, nil
}
