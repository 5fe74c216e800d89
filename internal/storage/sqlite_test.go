package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/maze"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(seed int64, finished time.Time) maze.RunRecord {
	cfg := config.DefaultBallMazeConfig()
	cfg.Level.Variant = maze.VariantFreeform
	return maze.RunRecord{
		Seed:       seed,
		Variant:    maze.VariantFreeform,
		Width:      640,
		Height:     384,
		Config:     cfg,
		Shifts:     []float64{0, 0.1, -0.0625, 1e-9},
		Outcome:    maze.OutcomeLost,
		Score:      3,
		Ticks:      4,
		StartedAt:  finished.Add(-2 * time.Second),
		FinishedAt: finished,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)
	want := testRecord(42, time.Now())

	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("run id %q does not look like a UUID", id)
	}

	entry, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	got := entry.Record

	if entry.ID != id || entry.Floors != 25 {
		t.Errorf("summary = %+v", entry.RunSummary)
	}
	if got.Seed != want.Seed || got.Variant != want.Variant || got.Outcome != want.Outcome ||
		got.Score != want.Score || got.Ticks != want.Ticks || got.Width != want.Width || got.Height != want.Height {
		t.Errorf("record = %+v, expected %+v", got, want)
	}
	if !reflect.DeepEqual(got.Shifts, want.Shifts) {
		t.Errorf("shifts = %v, expected %v", got.Shifts, want.Shifts)
	}
	if !reflect.DeepEqual(got.Config, want.Config) {
		t.Errorf("config did not round trip:\n got %+v\nwant %+v", got.Config, want.Config)
	}
	if !got.StartedAt.Equal(want.StartedAt) || !got.FinishedAt.Equal(want.FinishedAt) {
		t.Errorf("times = %v..%v, expected %v..%v", got.StartedAt, got.FinishedAt, want.StartedAt, want.FinishedAt)
	}
	if entry.Duration() != 2*time.Second {
		t.Errorf("Duration() = %v, expected 2s", entry.Duration())
	}
}

func TestStoreRunByPrefix(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveRun(testRecord(1, time.Now()))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	entry, err := store.Run(id[:8])
	if err != nil {
		t.Fatalf("Run(prefix) failed: %v", err)
	}
	if entry.ID != id {
		t.Errorf("Run(prefix) = %s, expected %s", entry.ID, id)
	}
}

func TestStoreRunNotFound(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"", "does-not-exist"} {
		if _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Run(%q) error = %v, expected ErrRunNotFound", id, err)
		}
	}
}

func TestStoreRunAmbiguousPrefix(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 2; i++ {
		if _, err := store.SaveRun(testRecord(int64(i), time.Now())); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	// A prefix that matches everything.
	if _, err := store.Run("%"); !errors.Is(err, ErrAmbiguousRun) {
		t.Errorf("Run(%%) error = %v, expected ErrAmbiguousRun", err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(testRecord(int64(i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	for i, want := range []int64{4, 3, 2} {
		if runs[i].Seed != want {
			t.Errorf("runs[%d].Seed = %d, expected %d", i, runs[i].Seed, want)
		}
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("RecentRuns(0) returned %d runs, expected 5", len(all))
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveRun(testRecord(1, time.Now()))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("deleted run still found: %v", err)
	}
	if err := store.DeleteRun(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second DeleteRun error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreReplayRoundTrip(t *testing.T) {
	store := openTestStore(t)

	cfg := config.DefaultBallMazeConfig()
	e, err := maze.NewEngine(cfg, 640, 384,
		maze.WithTickPeriod(time.Millisecond),
		maze.WithSeeder(func() int64 { return 7 }))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	deadline := time.Now().Add(10 * time.Second)
	for e.Phase() != maze.PhaseFinished && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	rec, ok := e.LastRun()
	if !ok {
		t.Fatal("run did not finish")
	}

	id, err := store.SaveRun(rec)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	entry, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if _, err := maze.Replay(entry.Record); err != nil {
		t.Errorf("Replay of journaled run failed: %v", err)
	}
}

func TestShiftCodec(t *testing.T) {
	in := []float64{0, -0, 1.5, -3.25e-7}
	out, err := decodeShifts(encodeShifts(in))
	if err != nil {
		t.Fatalf("decodeShifts failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("codec = %v, expected %v", out, in)
	}
	if _, err := decodeShifts([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated trace")
	}
}
