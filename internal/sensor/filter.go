// Package sensor turns raw sensor samples into the scalars the simulation
// reads: a low-pass filtered horizontal shift and a latest-value inbox.
package sensor

import "sync"

// LowPass is a single-pole exponential smoothing filter for accelerometer
// samples. Safe for concurrent use.
type LowPass struct {
	alpha       float64
	sensitivity float64

	mu       sync.Mutex
	filtered float64
}

// NewLowPass creates a filter with smoothing factor alpha (0 < alpha <= 1)
// and output gain sensitivity.
func NewLowPass(alpha, sensitivity float64) *LowPass {
	return &LowPass{alpha: alpha, sensitivity: sensitivity}
}

// Push feeds one raw sample and returns the horizontal shift:
// the smoothed value, scaled by sensitivity and sign-inverted so that
// tilting the device right (negative x) rolls the ball right.
func (f *LowPass) Push(raw float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filtered += f.alpha * (raw - f.filtered)
	return -f.filtered * f.sensitivity
}

// Value returns the current smoothed (unscaled) value.
func (f *LowPass) Value() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filtered
}

// Reset clears the filter state.
func (f *LowPass) Reset() {
	f.mu.Lock()
	f.filtered = 0
	f.mu.Unlock()
}
