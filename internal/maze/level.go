// Package maze implements the ball maze simulation: tower generation,
// forgiving collision, the per-tick update rule and the fixed-tick loop
// that publishes snapshots for a renderer.
package maze

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/ballmaze/internal/core"
)

// GapPlacer picks the left edge of a floor's gap.
// registry.Variant satisfies it.
type GapPlacer interface {
	PlaceGap(rng *rand.Rand, margin, span, step int) int
}

// LevelParams contains everything level generation depends on.
type LevelParams struct {
	ScreenWidth      int
	GapWidth         int
	Margin           int // Minimum solid floor left and right of the gap
	PartialStep      int // Grid step for gap placement
	FloorCount       int
	FirstFloorHeight int
	FloorSpacing     int
	Palette          []core.Color
}

// Span returns the width of the valid range for a gap's left edge.
// Negative when the gap and margins do not fit.
func (p LevelParams) Span() int {
	return p.ScreenWidth - 2*p.Margin - p.GapWidth
}

// Floor is one horizontal barrier of the tower.
type Floor struct {
	Index     int
	GapOffset int // Left edge of the gap
	Height    int // Distance from the start of the run
	Color     core.Color
}

// FloorTable is the generated tower. Immutable after generation.
type FloorTable struct {
	floors      []Floor
	gapWidth    int
	screenWidth int
}

// Len returns the number of floors.
func (t *FloorTable) Len() int {
	return len(t.floors)
}

// Floor returns floor i. Panics if i is out of range.
func (t *FloorTable) Floor(i int) Floor {
	return t.floors[i]
}

// Floors returns a copy of all floors.
func (t *FloorTable) Floors() []Floor {
	out := make([]Floor, len(t.floors))
	copy(out, t.floors)
	return out
}

// GapWidth returns the width of every gap.
func (t *FloorTable) GapWidth() int {
	return t.gapWidth
}

// ScreenWidth returns the width the table was generated for.
func (t *FloorTable) ScreenWidth() int {
	return t.screenWidth
}

// NewFloorTable builds a table from explicit floors. Used for hand-made
// towers; heights must be strictly increasing.
func NewFloorTable(floors []Floor, gapWidth, screenWidth int) *FloorTable {
	t := &FloorTable{
		floors:      make([]Floor, len(floors)),
		gapWidth:    gapWidth,
		screenWidth: screenWidth,
	}
	copy(t.floors, floors)
	for i := range t.floors {
		t.floors[i].Index = i
		if i > 0 && t.floors[i].Height <= t.floors[i-1].Height {
			panic(fmt.Sprintf("maze: floor %d height %d not above floor %d height %d",
				i, t.floors[i].Height, i-1, t.floors[i-1].Height))
		}
	}
	return t
}

// GenerateFloors builds the tower for one run. A nil placer uses the
// classic grid placement. Deterministic for a given rng seed.
func GenerateFloors(p LevelParams, placer GapPlacer, rng *rand.Rand) (*FloorTable, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if placer == nil {
		placer = classicVariant{}
	}

	span := p.Span()
	t := &FloorTable{
		floors:      make([]Floor, p.FloorCount),
		gapWidth:    p.GapWidth,
		screenWidth: p.ScreenWidth,
	}

	for i := range t.floors {
		gap := placer.PlaceGap(rng, p.Margin, span, p.PartialStep)
		if gap < p.Margin || gap > p.Margin+span {
			return nil, fmt.Errorf("%w: floor %d at %d, want [%d, %d]",
				ErrGapOutOfRange, i, gap, p.Margin, p.Margin+span)
		}

		height := p.FirstFloorHeight
		if i > 0 {
			height = t.floors[i-1].Height + p.FloorSpacing
		}

		t.floors[i] = Floor{
			Index:     i,
			GapOffset: gap,
			Height:    height,
			Color:     p.Palette[i%len(p.Palette)],
		}
	}

	return t, nil
}

func (p LevelParams) validate() error {
	switch {
	case p.FloorCount <= 0:
		return fmt.Errorf("%w: got %d", ErrNoFloors, p.FloorCount)
	case len(p.Palette) == 0:
		return ErrEmptyPalette
	case p.PartialStep <= 0:
		return fmt.Errorf("%w: got %d", ErrInvalidStep, p.PartialStep)
	case p.FloorSpacing <= 0:
		return fmt.Errorf("%w: got %d", ErrInvalidSpacing, p.FloorSpacing)
	case p.GapWidth <= 0:
		return fmt.Errorf("%w: got %d", ErrInvalidGap, p.GapWidth)
	case p.Span() < 0:
		return fmt.Errorf("%w: width %d, gap %d, margin %d",
			ErrScreenTooNarrow, p.ScreenWidth, p.GapWidth, p.Margin)
	}
	return nil
}
