package maze

import (
	"time"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/core"
)

// Phase is the engine lifecycle state.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// FloorView is a floor positioned in screen space.
type FloorView struct {
	Index     int
	Top       int // Screen y of the floor's top edge
	GapOffset int
	GapWidth  int
	Thickness int
	Color     core.Color
}

// Snapshot is an immutable copy of everything a renderer draws. A new
// snapshot is published after every tick; published snapshots are never
// modified.
type Snapshot struct {
	Phase        Phase
	Outcome      Outcome
	Tick         int
	Seed         int64
	Variant      string
	BallX        int
	BallY        int
	BallRadius   int
	TopOffset    int
	Score        int
	FloorCount   int
	ScreenWidth  int
	ScreenHeight int
	Floors       []FloorView
	Light        float64 // Latest ambient light level
}

// BallScreenY returns the ball center in screen space.
func (s Snapshot) BallScreenY() int {
	return s.BallY - s.TopOffset
}

// idleSnapshot describes an engine that has no active run.
func idleSnapshot(g Geometry) *Snapshot {
	return &Snapshot{
		Phase:        PhaseIdle,
		BallX:        g.ScreenWidth / 2,
		BallRadius:   g.BallRadius,
		TopOffset:    -g.BallRadius,
		ScreenWidth:  g.ScreenWidth,
		ScreenHeight: g.ScreenHeight,
	}
}

// RunRecord is everything needed to reproduce a finished run.
type RunRecord struct {
	Seed       int64
	Variant    string
	Width      int // World size the run was played at
	Height     int
	Config     config.BallMazeConfig
	Shifts     []float64 // Shift applied on each tick
	Outcome    Outcome
	Score      int
	Ticks      int
	StartedAt  time.Time
	FinishedAt time.Time
}
