package maze

import (
	"github.com/vovakirdan/ballmaze/internal/core"
)

// Autopilot steers the ball toward the center of the next gap. It reads
// only what a renderer sees, so it can drive a live engine or a bare
// RunState.
type Autopilot struct {
	Gain     float64 // Fraction of the remaining distance covered per tick
	MaxShift float64 // Largest shift ever requested
}

// NewAutopilot returns a pilot that closes the distance in one tick,
// limited to maxShift.
func NewAutopilot(maxShift float64) Autopilot {
	return Autopilot{Gain: 1, MaxShift: maxShift}
}

// Shift returns the desired horizontal shift for the next tick.
func (a Autopilot) Shift(snap Snapshot, ballRange int) float64 {
	if snap.Phase != PhaseRunning || ballRange <= 0 {
		return 0
	}
	for _, f := range snap.Floors {
		if f.Index != snap.Score {
			continue
		}
		target := f.GapOffset + f.GapWidth/2
		desired := a.Gain * float64(target-snap.BallX) / float64(ballRange)
		return core.ClampF(desired, -a.MaxShift, a.MaxShift)
	}
	return 0
}

// Sample converts a desired shift into the raw accelerometer reading that
// a filter with the given sensitivity settles on.
func (a Autopilot) Sample(snap Snapshot, ballRange int, sensitivity float64) float64 {
	if sensitivity == 0 {
		return 0
	}
	return -a.Shift(snap, ballRange) / sensitivity
}
