package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/core"
	"github.com/vovakirdan/ballmaze/internal/maze"
	"github.com/vovakirdan/ballmaze/internal/storage"
)

var (
	flagSimRuns     int
	flagSimCols     int
	flagSimRows     int
	flagSimTilt     float64
	flagSimMaxShift float64
	flagSimNoSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless games driven by the autopilot",
	Long: `Run the engine without a terminal UI.

The autopilot feeds accelerometer samples that steer the ball toward the
next gap. With --tilt the sensor instead reports one constant raw value
for the whole run. Finished runs are journaled unless --no-journal is set.

The playfield matches what 'play' would use on a terminal of the given
size in cells.

Examples:
  ballmaze simulate
  ballmaze simulate --runs 10 --fps 1000
  ballmaze simulate --tilt 0.5 --seed 7
  ballmaze simulate --cols 120 --rows 40 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().IntVar(&flagSimCols, "cols", 80, "Terminal width in cells")
	simulateCmd.Flags().IntVar(&flagSimRows, "rows", 24, "Terminal height in cells")
	simulateCmd.Flags().Float64Var(&flagSimTilt, "tilt", 0, "Constant raw accelerometer sample instead of the autopilot")
	simulateCmd.Flags().Float64Var(&flagSimMaxShift, "max-shift", 0.25, "Largest shift the autopilot asks for per tick")
	simulateCmd.Flags().BoolVar(&flagSimNoSave, "no-journal", false, "Do not journal runs")
}

func runSimulate(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	if flagSimRuns < 1 {
		exitf("--runs must be at least 1")
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	rc := runtimeConfig(flagSimCols, flagSimRows)
	width := rc.ScreenW * cfg.Surface.CellWidth
	height := core.Max(rc.ScreenH-1, 1) * cfg.Surface.CellHeight

	e, err := maze.NewEngine(cfg, width, height, engineOptions(rc, cfg, logger)...)
	if err != nil {
		exitf("%v", err)
	}

	var store *storage.Store
	if !flagSimNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open run journal", "err", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	feed := autopilotFeed(e, cfg, flagSimMaxShift)
	if cmd.Flags().Changed("tilt") {
		tilt := flagSimTilt
		feed = func(maze.Snapshot) float64 { return tilt }
	}

	// Feed at least once per tick so the autopilot keeps up with fast runs.
	samplePeriod := min(cfg.Input.SamplePeriod, rc.TickPeriod(cfg.Timing.TickPeriod))

	g := e.Rules().Geometry
	fmt.Printf("Simulating %d run(s) on a %dx%d world, variant %s\n\n", flagSimRuns, g.ScreenWidth, g.ScreenHeight, e.Variant())

	wins := 0
	for i := 0; i < flagSimRuns; i++ {
		rec, err := simulateRun(ctx, e, samplePeriod, feed, logger)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Println("Interrupted")
				return
			}
			closeLog()
			exitf("run %d: %v", i+1, err)
		}
		if rec.Outcome == maze.OutcomeWon {
			wins++
		}

		id := "-"
		if store != nil {
			if id, err = store.SaveRun(rec); err != nil {
				logger.Error("journal run", "err", err)
				id = "-"
			}
		}
		printRun(i+1, id, rec)
	}

	fmt.Printf("\nWon %d of %d\n", wins, flagSimRuns)
}

// autopilotFeed returns a sensor source that steers toward the next gap.
func autopilotFeed(e *maze.Engine, cfg config.BallMazeConfig, maxShift float64) func(maze.Snapshot) float64 {
	pilot := maze.NewAutopilot(maxShift)
	ballRange := e.Rules().Geometry.BallRange
	return func(snap maze.Snapshot) float64 {
		return pilot.Sample(snap, ballRange, cfg.Input.Sensitivity)
	}
}

// simulateRun starts one run and feeds the sensor until it finishes.
func simulateRun(ctx context.Context, e *maze.Engine, period time.Duration, feed func(maze.Snapshot) float64, logger *log.Logger) (maze.RunRecord, error) {
	if err := e.Start(); err != nil {
		return maze.RunRecord{}, err
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		snap := e.CurrentSnapshot()
		if snap.Phase == maze.PhaseFinished {
			rec, ok := e.LastRun()
			if !ok {
				return rec, errors.New("finished run left no record")
			}
			return rec, nil
		}
		e.OnAccelerometerSample(feed(snap))

		select {
		case <-ctx.Done():
			stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := e.Stop(stopCtx); err != nil {
				logger.Warn("engine did not stop", "err", err)
			}
			return maze.RunRecord{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func printRun(n int, id string, rec maze.RunRecord) {
	fmt.Printf("  #%-3d  %-8s  %-4s  score %3d  ticks %6d  seed %d\n",
		n, shortID(id), rec.Outcome, rec.Score, rec.Ticks, rec.Seed)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
