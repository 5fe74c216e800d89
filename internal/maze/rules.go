package maze

import (
	"fmt"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/core"
)

// Geometry holds the per-run constants the tick rule works with.
type Geometry struct {
	ScreenWidth    int
	ScreenHeight   int
	BallRadius     int
	BallRange      int // Horizontal displacement for a shift of 1.0
	MinBallX       int
	MaxBallX       int
	ScrollStep     int
	FloorThickness int
	FloorSpacing   int
}

// VisibleAhead returns how many floors can be on screen below the ball.
func (g Geometry) VisibleAhead() int {
	return core.CeilDiv(g.ScreenHeight, g.FloorSpacing)
}

// Rules bundles everything derived from the config and the world size.
// Building Rules is the only place the difficulty level is applied.
type Rules struct {
	Geometry  Geometry
	Level     LevelParams
	Collision CollisionModel
}

// NewRules derives run rules for a world of width x height pixels.
func NewRules(cfg config.BallMazeConfig, width, height int) (Rules, error) {
	palette, err := core.ParsePalette(cfg.Level.Palette)
	if err != nil {
		return Rules{}, fmt.Errorf("level palette: %w", err)
	}

	dm := config.NewDifficultyManager(cfg.Difficulty)
	r := cfg.Ball.Radius
	edge := cfg.Ball.Margin + r

	// The ball rectangle must still fit through a narrowed gap.
	minGap := 2*r + 2*int(cfg.Collision.Unit)
	gapWidth := dm.GapWidth(cfg.Level.GapWidth, minGap)

	g := Geometry{
		ScreenWidth:    width,
		ScreenHeight:   height,
		BallRadius:     r,
		BallRange:      width/2 - (cfg.Level.GapMargin + r),
		MinBallX:       edge,
		MaxBallX:       width - edge,
		ScrollStep:     dm.ScrollStep(cfg.Ball.ScrollStep),
		FloorThickness: cfg.Level.FloorThickness,
		FloorSpacing:   cfg.Level.FloorSpacing,
	}
	if g.MinBallX > g.MaxBallX || g.BallRange < 0 {
		return Rules{}, fmt.Errorf("%w: width %d cannot hold ball of radius %d", ErrScreenTooNarrow, width, r)
	}
	if g.FloorSpacing <= 0 {
		return Rules{}, fmt.Errorf("%w: got %d", ErrInvalidSpacing, g.FloorSpacing)
	}

	return Rules{
		Geometry: g,
		Level: LevelParams{
			ScreenWidth:      width,
			GapWidth:         gapWidth,
			Margin:           cfg.Level.GapMargin,
			PartialStep:      cfg.Level.PartialStep,
			FloorCount:       cfg.Level.Floors,
			FirstFloorHeight: cfg.Level.FirstFloorHeight,
			FloorSpacing:     cfg.Level.FloorSpacing,
			Palette:          palette,
		},
		Collision: NewCollisionModel(cfg.Collision, width, gapWidth, cfg.Level.FloorThickness),
	}, nil
}
