package config

import (
	"math"

	"github.com/vovakirdan/ballmaze/internal/core"
)

// DifficultyManager derives per-run parameters from the difficulty level.
// The level is fixed for a whole run: the tower and its scroll speed never
// change mid-run.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level() float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return d.initialLevel
}

// ScrollStep returns the scroll distance per tick for the current level.
// Never less than baseStep.
func (d *DifficultyManager) ScrollStep(baseStep int) int {
	step := core.RoundInt(float64(baseStep) * (1.0 + d.Level()*d.cfg.Scaling.ScrollMultiplier))
	return core.Max(step, baseStep)
}

// GapWidth returns the gap width for the current level, never narrower
// than minGap.
func (d *DifficultyManager) GapWidth(baseGap, minGap int) int {
	reduction := int(d.Level() * float64(d.cfg.Scaling.GapReduction))
	result := baseGap - reduction
	if result < minGap {
		result = core.Min(minGap, baseGap)
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
