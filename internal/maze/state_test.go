package maze

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/core"
)

func testGeometry() Geometry {
	return Geometry{
		ScreenWidth:    1000,
		ScreenHeight:   600,
		BallRadius:     20,
		BallRange:      460,
		MinBallX:       28,
		MaxBallX:       972,
		ScrollStep:     5,
		FloorThickness: 20,
		FloorSpacing:   200,
	}
}

// tower builds floors with gaps centered on x=500 at the given heights.
func tower(heights ...int) *FloorTable {
	floors := make([]Floor, len(heights))
	for i, h := range heights {
		floors[i] = Floor{GapOffset: 450, Height: h, Color: core.ColorRed}
	}
	return NewFloorTable(floors, 100, 1000)
}

func TestNewRunState(t *testing.T) {
	st := NewRunState(tower(400), testGeometry(), testCollision())
	if st.BallX != 500 || st.BallY != 0 || st.ScrollTop != -20 {
		t.Errorf("start = (%d, %d, top %d), expected (500, 0, top -20)", st.BallX, st.BallY, st.ScrollTop)
	}
	if st.Score != 0 || st.Outcome != OutcomeRunning {
		t.Errorf("start score/outcome = %d/%v", st.Score, st.Outcome)
	}
}

func TestStepScrollsWithoutScoring(t *testing.T) {
	st := NewRunState(tower(400, 600), testGeometry(), testCollision())

	for i := 0; i < 30; i++ {
		if got := st.Step(0); got != OutcomeRunning {
			t.Fatalf("tick %d: outcome %v, expected running", i+1, got)
		}
	}

	if st.BallY != 150 {
		t.Errorf("BallY = %d, expected 150", st.BallY)
	}
	if st.ScrollTop != 130 {
		t.Errorf("ScrollTop = %d, expected 130", st.ScrollTop)
	}
	if st.BallX != 500 || st.Score != 0 || st.Ticks != 30 {
		t.Errorf("BallX/Score/Ticks = %d/%d/%d, expected 500/0/30", st.BallX, st.Score, st.Ticks)
	}
}

func TestStepClampsAtRightBound(t *testing.T) {
	g := testGeometry()
	st := NewRunState(tower(10000), g, testCollision())

	for i := 0; i < 50; i++ {
		st.Step(1.0)
		if i >= 1 && st.BallX != g.MaxBallX {
			t.Fatalf("tick %d: BallX = %d, expected clamp at %d", i+1, st.BallX, g.MaxBallX)
		}
	}

	for i := 0; i < 50; i++ {
		st.Step(-1.0)
	}
	if st.BallX != g.MinBallX {
		t.Errorf("BallX = %d, expected clamp at %d", st.BallX, g.MinBallX)
	}
}

func TestStepRoundsShift(t *testing.T) {
	st := NewRunState(tower(10000), testGeometry(), testCollision())
	// 0.01 * 460 = 4.6 rounds to 5
	st.Step(0.01)
	if st.BallX != 505 {
		t.Errorf("BallX = %d, expected 505", st.BallX)
	}
	// -0.001 * 460 = -0.46 rounds to 0
	st.Step(-0.001)
	if st.BallX != 505 {
		t.Errorf("BallX = %d, expected 505", st.BallX)
	}
}

func TestStepWinsOnExactTick(t *testing.T) {
	st := NewRunState(tower(100, 300), testGeometry(), testCollision())

	// Floor 0 is passed once BallY-40 > 100, at tick 29.
	for st.Ticks < 29 {
		st.Step(0)
	}
	if st.Score != 1 {
		t.Fatalf("Score = %d after tick 29, expected 1", st.Score)
	}

	// The final floor is passed once BallY-40 > 300, at tick 69.
	for st.Ticks < 68 {
		if got := st.Step(0); got != OutcomeRunning {
			t.Fatalf("tick %d: outcome %v before the last floor was cleared", st.Ticks, got)
		}
	}
	if st.Outcome != OutcomeRunning || st.Score != 1 {
		t.Fatalf("tick 68: outcome %v score %d, expected running 1", st.Outcome, st.Score)
	}

	if got := st.Step(0); got != OutcomeWon {
		t.Fatalf("tick 69: outcome %v, expected won", got)
	}
	if st.Score != 2 || st.BallY != 345 {
		t.Errorf("Score/BallY = %d/%d, expected 2/345", st.Score, st.BallY)
	}
}

func TestStepLosesOnCollision(t *testing.T) {
	floors := []Floor{{GapOffset: 0, Height: 100}}
	st := NewRunState(NewFloorTable(floors, 100, 1000), testGeometry(), testCollision())

	// Ball rect bottom (BallY+8) first passes 100 at BallY=95.
	for st.Ticks < 18 {
		if got := st.Step(0); got != OutcomeRunning {
			t.Fatalf("tick %d: outcome %v, expected running", st.Ticks, got)
		}
	}
	if got := st.Step(0); got != OutcomeLost {
		t.Fatalf("tick 19: outcome %v, expected lost", got)
	}
	if st.Score != 0 {
		t.Errorf("Score = %d, a lost tick must not score", st.Score)
	}
}

func TestTerminalStability(t *testing.T) {
	floors := []Floor{{GapOffset: 0, Height: 100}}
	st := NewRunState(NewFloorTable(floors, 100, 1000), testGeometry(), testCollision())
	for !st.Step(0).Terminal() {
	}

	before := *st
	shifts := len(st.Shifts())
	for i := 0; i < 5; i++ {
		if got := st.Step(1.0); got != OutcomeLost {
			t.Fatalf("outcome changed to %v after loss", got)
		}
	}

	if st.BallX != before.BallX || st.BallY != before.BallY || st.ScrollTop != before.ScrollTop ||
		st.Score != before.Score || st.Ticks != before.Ticks {
		t.Error("terminal Step should not modify state")
	}
	if len(st.Shifts()) != shifts {
		t.Error("terminal Step should not record shifts")
	}
}

func TestStepPanicsOnCorruptScore(t *testing.T) {
	st := NewRunState(tower(400), testGeometry(), testCollision())
	st.Score = 5

	defer func() {
		if recover() == nil {
			t.Error("expected panic for score outside the table")
		}
	}()
	st.Step(0)
}

func TestShiftsRecorded(t *testing.T) {
	st := NewRunState(tower(10000), testGeometry(), testCollision())
	want := []float64{0.1, -0.2, 0}
	for _, s := range want {
		st.Step(s)
	}

	got := st.Shifts()
	if len(got) != len(want) {
		t.Fatalf("Shifts() len = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Shifts()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	got[0] = 99
	if st.Shifts()[0] != 0.1 {
		t.Error("Shifts() should return a copy")
	}
}

func TestSnapshotVisibleFloors(t *testing.T) {
	rules, err := NewRules(config.DefaultBallMazeConfig(), 640, 384)
	if err != nil {
		t.Fatalf("NewRules failed: %v", err)
	}
	table, err := GenerateFloors(rules.Level, nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateFloors failed: %v", err)
	}
	st := NewRunState(table, rules.Geometry, rules.Collision)

	snap := st.Snapshot(PhaseRunning)
	// ceil(384/240) = 2 floors ahead of the next one
	if len(snap.Floors) != 3 {
		t.Fatalf("visible floors = %d, expected 3", len(snap.Floors))
	}
	for i, f := range snap.Floors {
		if f.Index != i {
			t.Errorf("floor view %d has index %d", i, f.Index)
		}
	}
	if top := snap.Floors[0].Top; top != 480+24 {
		t.Errorf("first floor top = %d, expected 504", top)
	}
	if snap.BallScreenY() != 24 {
		t.Errorf("BallScreenY = %d, expected 24", snap.BallScreenY())
	}
	if snap.FloorCount != 25 || snap.Floors[0].GapWidth != 128 {
		t.Errorf("snapshot table = %d floors gap %d", snap.FloorCount, snap.Floors[0].GapWidth)
	}
}

func TestSnapshotKeepsPassedFloorWhileNear(t *testing.T) {
	g := testGeometry()
	g.FloorThickness = 60
	st := NewRunState(tower(100, 300), g, testCollision())
	for st.Score == 0 {
		st.Step(0)
	}

	// BallY=145: 100 > 145-20-60, floor 0 still drawn
	snap := st.Snapshot(PhaseRunning)
	if len(snap.Floors) == 0 || snap.Floors[0].Index != 0 {
		t.Fatalf("passed floor should stay visible right after scoring, got %+v", snap.Floors)
	}

	for st.BallY < 200 {
		st.Step(0)
	}
	snap = st.Snapshot(PhaseRunning)
	if snap.Floors[0].Index != 1 {
		t.Errorf("passed floor should drop out once far above, got index %d", snap.Floors[0].Index)
	}
}

func TestSnapshotAfterWinHasNoFloorsAhead(t *testing.T) {
	st := NewRunState(tower(100, 300), testGeometry(), testCollision())
	for !st.Step(0).Terminal() {
	}
	snap := st.Snapshot(PhaseFinished)
	for _, f := range snap.Floors {
		if f.Index >= snap.FloorCount {
			t.Errorf("floor view index %d past table", f.Index)
		}
	}
	if snap.Outcome != OutcomeWon {
		t.Errorf("Outcome = %v, expected won", snap.Outcome)
	}
}

func TestOutcomeStrings(t *testing.T) {
	for _, o := range []Outcome{OutcomeRunning, OutcomeWon, OutcomeLost} {
		got, err := ParseOutcome(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOutcome(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := ParseOutcome("draw"); err == nil {
		t.Error("expected error for unknown outcome")
	}
}
