package maze

import (
	"fmt"

	"github.com/vovakirdan/ballmaze/internal/core"
)

// Outcome is the result of a run so far.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeWon
	OutcomeLost
)

var outcomeNames = map[Outcome]string{
	OutcomeRunning: "running",
	OutcomeWon:     "won",
	OutcomeLost:    "lost",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for o, name := range outcomeNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// Terminal reports whether the run is over.
func (o Outcome) Terminal() bool {
	return o != OutcomeRunning
}

// RunState is the mutable state of one run. It is owned by a single
// goroutine; readers get copies through snapshots.
type RunState struct {
	BallX     int // Ball center, screen space
	BallY     int // Ball center, distance from the start of the run
	ScrollTop int // World y of the top screen edge
	Score     int // Floors passed, also the index of the next floor
	Ticks     int
	Outcome   Outcome

	geom      Geometry
	collision CollisionModel
	table     *FloorTable
	shifts    []float64
}

// NewRunState places the ball at the top center of the screen.
func NewRunState(table *FloorTable, g Geometry, cm CollisionModel) *RunState {
	return &RunState{
		BallX:     g.ScreenWidth / 2,
		BallY:     0,
		ScrollTop: -g.BallRadius,
		geom:      g,
		collision: cm,
		table:     table,
		shifts:    make([]float64, 0, 256),
	}
}

// Step advances the run by one tick using the given horizontal shift.
// Returns the outcome after the tick. Terminal runs are left untouched.
func (s *RunState) Step(shift float64) Outcome {
	if s.Outcome.Terminal() {
		return s.Outcome
	}
	if s.Score < 0 || s.Score >= s.table.Len() {
		panic(fmt.Sprintf("maze: score %d outside floor table of %d", s.Score, s.table.Len()))
	}

	s.shifts = append(s.shifts, shift)
	s.Ticks++

	g := s.geom
	s.BallX = core.Clamp(s.BallX+core.RoundInt(shift*float64(g.BallRange)), g.MinBallX, g.MaxBallX)
	s.BallY += g.ScrollStep
	s.ScrollTop += g.ScrollStep

	floor := s.table.Floor(s.Score)
	if s.collision.Intersects(s.BallX, s.BallY, g.BallRadius, floor) {
		s.Outcome = OutcomeLost
		return s.Outcome
	}

	if s.BallY-2*g.BallRadius > floor.Height {
		s.Score++
	}
	if s.Score == s.table.Len() {
		s.Outcome = OutcomeWon
	}
	return s.Outcome
}

// Table returns the tower of this run.
func (s *RunState) Table() *FloorTable {
	return s.table
}

// Geometry returns the run constants.
func (s *RunState) Geometry() Geometry {
	return s.geom
}

// Shifts returns a copy of the shift applied on every tick so far.
func (s *RunState) Shifts() []float64 {
	out := make([]float64, len(s.shifts))
	copy(out, s.shifts)
	return out
}

// Snapshot returns a read-only view of the state for rendering.
func (s *RunState) Snapshot(phase Phase) *Snapshot {
	g := s.geom
	snap := &Snapshot{
		Phase:        phase,
		Outcome:      s.Outcome,
		Tick:         s.Ticks,
		BallX:        s.BallX,
		BallY:        s.BallY,
		BallRadius:   g.BallRadius,
		TopOffset:    s.ScrollTop,
		Score:        s.Score,
		FloorCount:   s.table.Len(),
		ScreenWidth:  g.ScreenWidth,
		ScreenHeight: g.ScreenHeight,
	}
	snap.Floors = s.visibleFloors()
	return snap
}

// visibleFloors returns the floor just passed while it is still near the
// ball, then the next floors that can fit on screen.
func (s *RunState) visibleFloors() []FloorView {
	g := s.geom
	n := s.table.Len()
	views := make([]FloorView, 0, g.VisibleAhead()+2)

	if s.Score > 0 && s.Score <= n {
		prev := s.table.Floor(s.Score - 1)
		if prev.Height > s.BallY-g.BallRadius-g.FloorThickness {
			views = append(views, s.view(prev))
		}
	}
	last := core.Min(s.Score+g.VisibleAhead(), n-1)
	for i := s.Score; i <= last; i++ {
		views = append(views, s.view(s.table.Floor(i)))
	}
	return views
}

func (s *RunState) view(f Floor) FloorView {
	return FloorView{
		Index:     f.Index,
		Top:       f.Height - s.ScrollTop,
		GapOffset: f.GapOffset,
		GapWidth:  s.table.GapWidth(),
		Thickness: s.geom.FloorThickness,
		Color:     f.Color,
	}
}
