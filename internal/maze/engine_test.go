package maze

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/ballmaze/internal/config"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithTickPeriod(time.Millisecond),
		WithSeeder(func() int64 { return 42 }),
	}, opts...)
	e, err := NewEngine(config.DefaultBallMazeConfig(), 640, 384, opts...)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := e.Stop(ctx); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
	})
	return e
}

func waitPhase(t *testing.T, e *Engine, want Phase) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if e.CurrentSnapshot().Phase == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("engine did not reach phase %v, stuck in %v", want, e.CurrentSnapshot().Phase)
}

func TestEngineStartsIdle(t *testing.T) {
	e := newTestEngine(t)

	snap := e.CurrentSnapshot()
	if snap.Phase != PhaseIdle || e.Phase() != PhaseIdle {
		t.Errorf("phase = %v/%v, expected idle", snap.Phase, e.Phase())
	}
	if snap.ScreenWidth != 640 || snap.BallX != 320 {
		t.Errorf("idle snapshot = %+v", snap)
	}
	if _, ok := e.LastRun(); ok {
		t.Error("LastRun should be empty before any run")
	}
	if e.Variant() != VariantClassic {
		t.Errorf("Variant() = %q, expected classic", e.Variant())
	}
}

func TestEngineStartStop(t *testing.T) {
	e := newTestEngine(t, WithTickPeriod(50*time.Millisecond))

	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if e.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected running", e.Phase())
	}
	snap := e.CurrentSnapshot()
	if snap.Seed != 42 || snap.Variant != VariantClassic || snap.FloorCount != 25 {
		t.Errorf("running snapshot = seed %d variant %q floors %d", snap.Seed, snap.Variant, snap.FloorCount)
	}

	if err := e.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start error = %v, expected ErrAlreadyRunning", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if e.Phase() != PhaseIdle || e.CurrentSnapshot().Phase != PhaseIdle {
		t.Error("engine should be idle after Stop")
	}

	// Stop is idempotent and restart works.
	if err := e.Stop(ctx); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Errorf("restart failed: %v", err)
	}
}

func TestEngineRunFinishesAndReplays(t *testing.T) {
	e := newTestEngine(t)

	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitPhase(t, e, PhaseFinished)

	rec, ok := e.LastRun()
	if !ok {
		t.Fatal("LastRun should be set once the run finished")
	}
	if !rec.Outcome.Terminal() {
		t.Errorf("recorded outcome = %v, expected terminal", rec.Outcome)
	}
	if rec.Seed != 42 || rec.Variant != VariantClassic || rec.Width != 640 || rec.Height != 384 {
		t.Errorf("record metadata = %+v", rec)
	}
	if len(rec.Shifts) != rec.Ticks {
		t.Errorf("%d shifts for %d ticks", len(rec.Shifts), rec.Ticks)
	}

	snap := e.CurrentSnapshot()
	if snap.Outcome != rec.Outcome || snap.Score != rec.Score || snap.Tick != rec.Ticks {
		t.Errorf("final snapshot %v/%d/%d disagrees with record %v/%d/%d",
			snap.Outcome, snap.Score, snap.Tick, rec.Outcome, rec.Score, rec.Ticks)
	}

	st, err := Replay(rec)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if st.BallX != snap.BallX || st.BallY != snap.BallY {
		t.Errorf("replayed ball (%d, %d), live ball (%d, %d)", st.BallX, st.BallY, snap.BallX, snap.BallY)
	}

	// Start from Finished tears down the previous run.
	if err := e.Start(); err != nil {
		t.Fatalf("Start after finish failed: %v", err)
	}
	if e.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected running", e.Phase())
	}
}

func TestEngineSensorInputs(t *testing.T) {
	e := newTestEngine(t)

	e.OnAccelerometerSample(10)
	if want := -6.5 * 0.03; e.Shift() != want {
		t.Errorf("Shift() = %v, expected %v", e.Shift(), want)
	}

	e.OnLightLevel(12)
	if got := e.CurrentSnapshot().Light; got != 12 {
		t.Errorf("Light = %v, expected 12", got)
	}
}

func TestEngineFilterPersistsAcrossRuns(t *testing.T) {
	e := newTestEngine(t, WithTickPeriod(time.Hour))
	e.OnAccelerometerSample(10)
	before := e.Shift()

	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if e.Shift() != before {
		t.Errorf("filter should carry over by default, got %v want %v", e.Shift(), before)
	}
}

func TestEngineResetOnStart(t *testing.T) {
	cfg := config.DefaultBallMazeConfig()
	cfg.Input.ResetOnStart = true
	e, err := NewEngine(cfg, 640, 384, WithTickPeriod(time.Hour))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer e.Stop(context.Background())

	e.OnAccelerometerSample(10)
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if e.Shift() != 0 {
		t.Errorf("Shift() = %v, expected 0 after reset", e.Shift())
	}
}

func TestEngineStartFailsOnBadLevel(t *testing.T) {
	e, err := NewEngine(config.DefaultBallMazeConfig(), 150, 384)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if err := e.Start(); !errors.Is(err, ErrScreenTooNarrow) {
		t.Errorf("Start error = %v, expected ErrScreenTooNarrow", err)
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, a failed start should stay idle", e.Phase())
	}
}

func TestNewEngineUnknownVariant(t *testing.T) {
	cfg := config.DefaultBallMazeConfig()
	cfg.Level.Variant = "spiral"
	if _, err := NewEngine(cfg, 640, 384); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestEngineSnapshotsAreConsistent(t *testing.T) {
	e := newTestEngine(t, WithSeeder(func() int64 { return rand.Int63() }))
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	step := e.Rules().Geometry.ScrollStep

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				s := e.CurrentSnapshot()
				if s.Phase == PhaseIdle {
					continue
				}
				if s.BallY != s.Tick*step || s.TopOffset != s.BallY-s.BallRadius {
					t.Errorf("torn snapshot: tick %d ballY %d top %d", s.Tick, s.BallY, s.TopOffset)
					return
				}
			}
		}()
	}
	for i := 0; i < 200; i++ {
		e.OnAccelerometerSample(float64(i%7 - 3))
		time.Sleep(100 * time.Microsecond)
	}
	wg.Wait()
}
