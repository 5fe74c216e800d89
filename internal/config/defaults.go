package config

import (
	_ "embed"
	"math"
	"time"
)

//go:embed defaults/ballmaze.yaml
var defaultBallMazeYAML []byte

// DefaultBallMazeConfig returns the built-in configuration.
// The embedded YAML carries the same values.
func DefaultBallMazeConfig() BallMazeConfig {
	return BallMazeConfig{
		Level: LevelConfig{
			Floors:           25,
			FirstFloorHeight: 480,
			FloorSpacing:     240,
			FloorThickness:   16,
			GapWidth:         128,
			GapMargin:        16,
			PartialStep:      8,
			Variant:          "classic",
			Palette: []string{
				"red", "orange", "yellow", "green", "cyan", "blue", "magenta",
			},
		},
		Ball: BallConfig{
			Radius:     24,
			Margin:     8,
			ScrollStep: 4,
		},
		Collision: CollisionConfig{
			Unit:    4,
			InsetX:  2.0,
			InsetY:  1.5,
			Divisor: math.Sqrt2,
		},
		Input: InputConfig{
			Alpha:        0.65,
			Sensitivity:  0.03,
			ResetOnStart: false,
			KeyboardTilt: 0.8,
			SamplePeriod: 20 * time.Millisecond,
			Release:      150 * time.Millisecond,
		},
		Timing: TimingConfig{
			TickPeriod: 16 * time.Millisecond,
		},
		Surface: SurfaceConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
		Theme: ThemeConfig{
			DarkThreshold: 35,
			LampOn:        400,
			LampOff:       10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				ScrollMultiplier: 1.0,
				GapReduction:     40,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBallMazeYAML
}
