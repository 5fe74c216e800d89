package tui

import "time"

// KeyboardTilt emulates an accelerometer with the arrow keys. A key press
// holds the tilt; terminals send no key-up events, so the tilt returns to
// level once key repeats stop arriving for longer than release.
//
// Readings follow the device convention: tilting right is negative.
type KeyboardTilt struct {
	magnitude float64
	release   time.Duration

	raw     float64
	pressed time.Time
}

// NewKeyboardTilt creates a level keyboard tilt sensor.
func NewKeyboardTilt(magnitude float64, release time.Duration) *KeyboardTilt {
	return &KeyboardTilt{magnitude: magnitude, release: release}
}

// Left tilts the device left.
func (k *KeyboardTilt) Left(now time.Time) {
	k.raw = k.magnitude
	k.pressed = now
}

// Right tilts the device right.
func (k *KeyboardTilt) Right(now time.Time) {
	k.raw = -k.magnitude
	k.pressed = now
}

// Level releases any held tilt.
func (k *KeyboardTilt) Level() {
	k.raw = 0
}

// Sample returns the raw reading at now.
func (k *KeyboardTilt) Sample(now time.Time) float64 {
	if k.raw != 0 && now.Sub(k.pressed) > k.release {
		k.raw = 0
	}
	return k.raw
}
