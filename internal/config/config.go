// Package config provides YAML-based game configuration loading and
// difficulty presets for ball maze.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/ballmaze/internal/core"
)

// BallMazeConfig contains all tunables of the game. Distances are world
// pixels unless noted otherwise.
type BallMazeConfig struct {
	Level      LevelConfig      `yaml:"level"`
	Ball       BallConfig       `yaml:"ball"`
	Collision  CollisionConfig  `yaml:"collision"`
	Input      InputConfig      `yaml:"input"`
	Timing     TimingConfig     `yaml:"timing"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Theme      ThemeConfig      `yaml:"theme"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LevelConfig defines the tower layout.
type LevelConfig struct {
	Floors           int      `yaml:"floors"`
	FirstFloorHeight int      `yaml:"first_floor_height"`
	FloorSpacing     int      `yaml:"floor_spacing"`
	FloorThickness   int      `yaml:"floor_thickness"`
	GapWidth         int      `yaml:"gap_width"`
	GapMargin        int      `yaml:"gap_margin"`
	PartialStep      int      `yaml:"partial_step"` // Grid the gap's left edge snaps to (classic variant)
	Variant          string   `yaml:"variant"`      // Registered gap placement variant
	Palette          []string `yaml:"palette"`
}

// BallConfig defines the ball and how fast the tower scrolls past it.
type BallConfig struct {
	Radius     int `yaml:"radius"`
	Margin     int `yaml:"margin"`      // Minimum distance between ball edge and screen edge
	ScrollStep int `yaml:"scroll_step"` // Vertical distance per tick
}

// CollisionConfig defines the forgiving ball rectangle.
type CollisionConfig struct {
	Unit    float64 `yaml:"unit"`    // Pixels per layout unit
	InsetX  float64 `yaml:"inset_x"` // Horizontal inset in units
	InsetY  float64 `yaml:"inset_y"` // Vertical inset in units
	Divisor float64 `yaml:"divisor"` // Radius divisor for the half height (sqrt 2)
}

// InputConfig defines accelerometer smoothing and the keyboard tilt sensor.
type InputConfig struct {
	Alpha        float64       `yaml:"alpha"`
	Sensitivity  float64       `yaml:"sensitivity"`
	ResetOnStart bool          `yaml:"reset_on_start"`
	KeyboardTilt float64       `yaml:"keyboard_tilt"` // Raw sample produced by a held arrow key
	SamplePeriod time.Duration `yaml:"sample_period"` // Sensor delivery cadence
	Release      time.Duration `yaml:"release"`       // Tilt returns to level after this long without a key
}

// TimingConfig defines the simulation cadence.
type TimingConfig struct {
	TickPeriod time.Duration `yaml:"tick_period"`
}

// SurfaceConfig maps world pixels onto terminal cells.
type SurfaceConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// ThemeConfig defines the light-sensor driven color theme.
type ThemeConfig struct {
	DarkThreshold float64 `yaml:"dark_threshold"` // Below this light level the dark theme is used
	LampOn        float64 `yaml:"lamp_on"`        // Light level reported while the lamp is on
	LampOff       float64 `yaml:"lamp_off"`       // Light level reported while the lamp is off
}

// DifficultyConfig scales the base tower by a preset level.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ScrollMultiplier float64 `yaml:"scroll_multiplier"` // Multiplier added to scroll step at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap width reduction at max difficulty
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values the engine cannot run with. Screen-dependent
// checks (does the gap fit) happen at level generation.
func (c BallMazeConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Level.Floors > 0, "level.floors must be positive, got %d", c.Level.Floors)
	check(c.Level.FloorSpacing > 0, "level.floor_spacing must be positive, got %d", c.Level.FloorSpacing)
	check(c.Level.FloorThickness > 0, "level.floor_thickness must be positive, got %d", c.Level.FloorThickness)
	check(c.Level.GapWidth > 0, "level.gap_width must be positive, got %d", c.Level.GapWidth)
	check(c.Level.GapMargin >= 0, "level.gap_margin must not be negative, got %d", c.Level.GapMargin)
	check(c.Level.PartialStep > 0, "level.partial_step must be positive, got %d", c.Level.PartialStep)
	check(len(c.Level.Palette) > 0, "level.palette must not be empty")
	if _, err := core.ParsePalette(c.Level.Palette); err != nil {
		errs = append(errs, fmt.Errorf("%w: level.palette: %v", ErrInvalidConfig, err))
	}
	check(c.Ball.Radius > 0, "ball.radius must be positive, got %d", c.Ball.Radius)
	check(c.Ball.Margin >= 0, "ball.margin must not be negative, got %d", c.Ball.Margin)
	check(c.Ball.ScrollStep > 0, "ball.scroll_step must be positive, got %d", c.Ball.ScrollStep)
	check(c.Collision.Unit > 0, "collision.unit must be positive, got %v", c.Collision.Unit)
	check(c.Collision.Divisor > 0, "collision.divisor must be positive, got %v", c.Collision.Divisor)
	check(c.Input.Alpha > 0 && c.Input.Alpha <= 1, "input.alpha must be in (0, 1], got %v", c.Input.Alpha)
	check(c.Input.SamplePeriod > 0, "input.sample_period must be positive, got %v", c.Input.SamplePeriod)
	check(c.Timing.TickPeriod > 0, "timing.tick_period must be positive, got %v", c.Timing.TickPeriod)
	check(c.Surface.CellWidth > 0 && c.Surface.CellHeight > 0,
		"surface cell size must be positive, got %dx%d", c.Surface.CellWidth, c.Surface.CellHeight)
	check(c.Difficulty.InitialLevel >= 0 && c.Difficulty.InitialLevel <= 1,
		"difficulty.initial_level must be in [0, 1], got %v", c.Difficulty.InitialLevel)

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. Empty means fixed.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
