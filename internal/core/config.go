package core

import "time"

// RuntimeConfig contains configuration passed to the engine by the platform.
// The surface size is in terminal cells; the engine works in world pixels.
type RuntimeConfig struct {
	ScreenW  int   // Surface width in characters
	ScreenH  int   // Surface height in characters
	TickRate int   // Simulation ticks per second (0 = use the config tick period)
	Seed     int64 // RNG seed for deterministic level generation (0 = time based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 0,
		Seed:     0,
	}
}

// TickPeriod returns the tick period implied by TickRate, or fallback when
// TickRate is unset.
func (c RuntimeConfig) TickPeriod(fallback time.Duration) time.Duration {
	if c.TickRate <= 0 {
		return fallback
	}
	return time.Second / time.Duration(c.TickRate)
}
