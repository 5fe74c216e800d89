package maze

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/ballmaze/internal/registry"
)

// ErrReplayDiverged is returned when a replayed run does not end the way
// the record says it did.
var ErrReplayDiverged = errors.New("replay diverged from record")

// Replay rebuilds the tower from the record's seed and re-applies its
// shifts without the real-time loop. The returned state is the final one.
func Replay(rec RunRecord) (*RunState, error) {
	rules, err := NewRules(rec.Config, rec.Width, rec.Height)
	if err != nil {
		return nil, err
	}
	v, err := registry.Create(rec.Variant)
	if err != nil {
		return nil, fmt.Errorf("level variant: %w", err)
	}
	table, err := GenerateFloors(rules.Level, v, rand.New(rand.NewSource(rec.Seed)))
	if err != nil {
		return nil, fmt.Errorf("generate level: %w", err)
	}

	st := NewRunState(table, rules.Geometry, rules.Collision)
	for _, shift := range rec.Shifts {
		if st.Step(shift).Terminal() {
			break
		}
	}

	if st.Outcome != rec.Outcome || st.Score != rec.Score || st.Ticks != rec.Ticks {
		return st, fmt.Errorf("%w: got %s score %d after %d ticks, recorded %s score %d after %d ticks",
			ErrReplayDiverged, st.Outcome, st.Score, st.Ticks, rec.Outcome, rec.Score, rec.Ticks)
	}
	return st, nil
}
