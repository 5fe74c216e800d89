package maze

import (
	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/core"
)

// CollisionModel tests the ball against a floor. The ball is approximated
// by a rectangle shrunk inside its circle so near misses are forgiven.
type CollisionModel struct {
	ScreenWidth int
	GapWidth    int
	Thickness   int
	InsetX      int
	InsetY      int
	Divisor     float64
}

// NewCollisionModel converts the configured insets from layout units to pixels.
func NewCollisionModel(cfg config.CollisionConfig, screenWidth, gapWidth, thickness int) CollisionModel {
	return CollisionModel{
		ScreenWidth: screenWidth,
		GapWidth:    gapWidth,
		Thickness:   thickness,
		InsetX:      int(cfg.InsetX * cfg.Unit),
		InsetY:      int(cfg.InsetY * cfg.Unit),
		Divisor:     cfg.Divisor,
	}
}

// BallRect returns the collision rectangle for a ball centered at (cx, cy).
func (m CollisionModel) BallRect(cx, cy, r int) core.Rect {
	half := int(float64(r) / m.Divisor)
	return core.RectFromEdges(
		cx-r+m.InsetX,
		cy-half+m.InsetY,
		cx+r-m.InsetX,
		cy+half-m.InsetY,
	)
}

// Solids returns the two solid parts of a floor, left and right of the gap.
// Either may be empty when the gap touches a screen edge.
func (m CollisionModel) Solids(f Floor) (left, right core.Rect) {
	gapEnd := f.GapOffset + m.GapWidth
	left = core.NewRect(0, f.Height, f.GapOffset, m.Thickness)
	right = core.NewRect(gapEnd, f.Height, m.ScreenWidth-gapEnd, m.Thickness)
	return left, right
}

// Intersects reports whether the ball overlaps a solid part of the floor.
// Touching edges do not count.
func (m CollisionModel) Intersects(cx, cy, r int, f Floor) bool {
	ball := m.BallRect(cx, cy, r)
	left, right := m.Solids(f)
	return ball.Intersects(left) || ball.Intersects(right)
}
