package maze

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/registry"
	"github.com/vovakirdan/ballmaze/internal/sensor"
)

// Engine runs the fixed-tick simulation loop on its own goroutine.
// Sensor callbacks may be called from any goroutine and never block.
// Snapshots may be read from any goroutine. At most one run is active.
type Engine struct {
	cfg         config.BallMazeConfig
	rules       Rules
	variant     registry.Variant
	period      time.Duration
	resetFilter bool
	seeder      func() int64
	logger      *log.Logger

	filter *sensor.LowPass
	shift  sensor.Inbox
	light  sensor.Inbox

	snap  atomic.Pointer[Snapshot]
	last  atomic.Pointer[RunRecord]
	phase atomic.Int32

	mu      sync.Mutex // Serializes Start and Stop
	stop    chan struct{}
	done    chan struct{}
	stopped bool // stop has been closed for the current worker
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSeeder sets the seed source used at the start of every run.
func WithSeeder(fn func() int64) Option {
	return func(e *Engine) {
		if fn != nil {
			e.seeder = fn
		}
	}
}

// WithTickPeriod overrides timing.tick_period.
func WithTickPeriod(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.period = d
		}
	}
}

// WithVariant overrides the configured level variant.
func WithVariant(v registry.Variant) Option {
	return func(e *Engine) {
		if v != nil {
			e.variant = v
		}
	}
}

// NewEngine creates an idle engine for a world of width x height pixels.
func NewEngine(cfg config.BallMazeConfig, width, height int, opts ...Option) (*Engine, error) {
	rules, err := NewRules(cfg, width, height)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		rules:       rules,
		period:      cfg.Timing.TickPeriod,
		resetFilter: cfg.Input.ResetOnStart,
		seeder:      func() int64 { return time.Now().UnixNano() },
		logger:      log.New(io.Discard),
		filter:      sensor.NewLowPass(cfg.Input.Alpha, cfg.Input.Sensitivity),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.variant == nil {
		id := cfg.Level.Variant
		if id == "" {
			id = VariantClassic
		}
		v, err := registry.Create(id)
		if err != nil {
			return nil, fmt.Errorf("level variant: %w", err)
		}
		e.variant = v
	}
	if e.period <= 0 {
		return nil, fmt.Errorf("%w: tick period %v", config.ErrInvalidConfig, e.period)
	}

	e.snap.Store(idleSnapshot(rules.Geometry))
	return e, nil
}

// Rules returns the run rules derived at construction.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Variant returns the active level variant ID.
func (e *Engine) Variant() string {
	return e.variant.ID()
}

// Phase returns the lifecycle phase.
func (e *Engine) Phase() Phase {
	return Phase(e.phase.Load())
}

// Start generates a fresh tower and begins a run. A finished run is torn
// down first. Fails with ErrAlreadyRunning while a run is active, or with a
// level error when the tower cannot be built for this screen.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Phase() == PhaseRunning {
		return ErrAlreadyRunning
	}

	seed := e.seeder()
	table, err := GenerateFloors(e.rules.Level, e.variant, rand.New(rand.NewSource(seed)))
	if err != nil {
		e.logger.Error("level generation failed", "variant", e.variant.ID(), "err", err)
		return fmt.Errorf("generate level: %w", err)
	}

	if e.Phase() == PhaseFinished {
		// Worker signalled completion and is returning.
		<-e.done
		e.stop, e.done, e.stopped = nil, nil, false
		e.phase.Store(int32(PhaseIdle))
	}

	if e.resetFilter {
		e.filter.Reset()
		e.shift.Store(0)
	}

	st := NewRunState(table, e.rules.Geometry, e.rules.Collision)
	meta := runMeta{seed: seed, variant: e.variant.ID(), startedAt: time.Now()}

	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	e.phase.Store(int32(PhaseRunning))
	e.publish(st, PhaseRunning, meta)

	e.logger.Info("run started",
		"seed", seed,
		"variant", meta.variant,
		"floors", table.Len(),
		"gap", table.GapWidth(),
		"scroll", e.rules.Geometry.ScrollStep,
	)

	go e.loop(st, meta, e.stop, e.done)
	return nil
}

// Stop cancels the active run, waits for the loop to exit and returns the
// engine to idle. Safe to call in any phase. Returns an error wrapping
// ErrLoopStuck if ctx ends before the loop exits.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.done == nil {
		return nil
	}
	if !e.stopped {
		close(e.stop)
		e.stopped = true
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrLoopStuck, ctx.Err())
	}

	e.stop, e.done, e.stopped = nil, nil, false
	e.phase.Store(int32(PhaseIdle))
	e.snap.Store(idleSnapshot(e.rules.Geometry))
	e.logger.Debug("engine idle")
	return nil
}

// OnAccelerometerSample feeds one raw horizontal tilt reading. Never blocks.
func (e *Engine) OnAccelerometerSample(raw float64) {
	e.shift.Store(e.filter.Push(raw))
}

// OnLightLevel records the ambient light level. Never blocks.
func (e *Engine) OnLightLevel(level float64) {
	e.light.Store(level)
}

// Shift returns the smoothed shift the next tick will apply.
func (e *Engine) Shift() float64 {
	return e.shift.Load()
}

// CurrentSnapshot returns the latest published snapshot with the latest
// light level.
func (e *Engine) CurrentSnapshot() Snapshot {
	snap := *e.snap.Load()
	snap.Light = e.light.Load()
	return snap
}

// LastRun returns the record of the most recently finished run.
func (e *Engine) LastRun() (RunRecord, bool) {
	rec := e.last.Load()
	if rec == nil {
		return RunRecord{}, false
	}
	out := *rec
	out.Shifts = append([]float64(nil), rec.Shifts...)
	return out, true
}

type runMeta struct {
	seed      int64
	variant   string
	startedAt time.Time
}

// loop ticks on absolute deadlines so jitter does not accumulate. When the
// loop falls more than two periods behind it resyncs instead of bursting.
func (e *Engine) loop(st *RunState, meta runMeta, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(e.period)
	defer timer.Stop()
	next := time.Now().Add(e.period)

	for {
		select {
		case <-stop:
			e.logger.Debug("run cancelled", "tick", st.Ticks, "score", st.Score)
			return
		case <-timer.C:
		}

		outcome := st.Step(e.shift.Load())
		if outcome.Terminal() {
			e.finish(st, meta)
			return
		}
		e.publish(st, PhaseRunning, meta)

		now := time.Now()
		next = next.Add(e.period)
		if now.Sub(next) > 2*e.period {
			e.logger.Debug("tick loop behind, resyncing", "behind", now.Sub(next))
			next = now.Add(e.period)
		}
		timer.Reset(next.Sub(now))
	}
}

// finish records the run before publishing the final snapshot so a reader
// that sees PhaseFinished can always fetch LastRun.
func (e *Engine) finish(st *RunState, meta runMeta) {
	rec := &RunRecord{
		Seed:       meta.seed,
		Variant:    meta.variant,
		Width:      e.rules.Geometry.ScreenWidth,
		Height:     e.rules.Geometry.ScreenHeight,
		Config:     e.cfg,
		Shifts:     st.Shifts(),
		Outcome:    st.Outcome,
		Score:      st.Score,
		Ticks:      st.Ticks,
		StartedAt:  meta.startedAt,
		FinishedAt: time.Now(),
	}
	e.last.Store(rec)
	e.publish(st, PhaseFinished, meta)
	e.phase.Store(int32(PhaseFinished))

	e.logger.Info("run finished",
		"outcome", st.Outcome,
		"score", st.Score,
		"floors", st.Table().Len(),
		"ticks", st.Ticks,
		"elapsed", rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond),
	)
}

func (e *Engine) publish(st *RunState, phase Phase, meta runMeta) {
	snap := st.Snapshot(phase)
	snap.Seed = meta.seed
	snap.Variant = meta.variant
	e.snap.Store(snap)
}
