package sensor

import (
	"math"
	"sync/atomic"
)

// Inbox is a single-slot, last-write-wins float64 mailbox.
// Writers never block and readers always see a whole value.
// Zero value is ready to use and holds 0.
type Inbox struct {
	bits atomic.Uint64
}

// Store replaces the held value.
func (b *Inbox) Store(v float64) {
	b.bits.Store(math.Float64bits(v))
}

// Load returns the most recently stored value.
func (b *Inbox) Load() float64 {
	return math.Float64frombits(b.bits.Load())
}
