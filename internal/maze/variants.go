package maze

import (
	"math/rand"

	"github.com/vovakirdan/ballmaze/internal/registry"
)

// Variant IDs.
const (
	VariantClassic  = "classic"
	VariantFreeform = "freeform"
)

// classicVariant snaps the gap to a grid of PartialStep so every tower is
// built from the same set of positions.
type classicVariant struct{}

func (classicVariant) ID() string    { return VariantClassic }
func (classicVariant) Title() string { return "Classic (grid-aligned gaps)" }

func (classicVariant) PlaceGap(rng *rand.Rand, margin, span, step int) int {
	slots := span / step
	if slots < 1 {
		return margin
	}
	return margin + rng.Intn(slots)*step
}

// freeformVariant draws the gap anywhere in the valid range.
type freeformVariant struct{}

func (freeformVariant) ID() string    { return VariantFreeform }
func (freeformVariant) Title() string { return "Freeform (pixel-placed gaps)" }

func (freeformVariant) PlaceGap(rng *rand.Rand, margin, span, _ int) int {
	if span <= 0 {
		return margin
	}
	return margin + rng.Intn(span)
}

func init() {
	registry.Register(VariantClassic, func() registry.Variant { return classicVariant{} })
	registry.Register(VariantFreeform, func() registry.Variant { return freeformVariant{} })
}
