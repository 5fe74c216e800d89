// ballmaze is a tilt-the-ball maze game for the terminal.
//
// Usage:
//
//	ballmaze play              - Play in the terminal
//	ballmaze simulate          - Run headless games with the autopilot
//	ballmaze replay <run-id>   - Re-run a journaled game and check it
//	ballmaze runs              - List journaled runs
//	ballmaze variants          - List level variants
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: timing.tick_period)
//	--seed <value>        - Set RNG seed for reproducible towers
//	--db <path>           - Set run journal path (default: ~/.ballmaze/runs.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--variant <id>        - Level variant
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/core"
	"github.com/vovakirdan/ballmaze/internal/maze"
	"github.com/vovakirdan/ballmaze/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVariant    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballmaze",
	Short: "Ball Maze - Tilt the ball through a tower of floors",
	Long: `Ball Maze drops a ball down a tower of floors. Each floor has one gap;
tilt left and right to steer the ball through it. Touch a floor and the
run is over. Pass every floor to win.

Available commands:
  play      - Play in the terminal
  simulate  - Run headless games driven by the autopilot
  replay    - Re-run a journaled game from its seed and tilt trace
  runs      - List journaled runs
  variants  - List level variants

Examples:
  ballmaze play
  ballmaze play --difficulty hard --variant freeform
  ballmaze simulate --runs 5 --fps 500
  ballmaze runs
  ballmaze replay 3f2a9c1e`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = timing.tick_period from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ballmaze/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Level variant (see 'ballmaze variants')")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(variantsCmd)
}

// newLogger builds the logger for a command. Logs go to --log-file when
// set, otherwise to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ballmaze",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)
	return logger, closeFn, nil
}

// loadConfig resolves the config file and applies the difficulty and
// variant flags on top.
func loadConfig() (config.BallMazeConfig, error) {
	cfg, err := config.LoadBallMaze(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	if flagVariant != "" {
		if !registry.Exists(flagVariant) {
			return cfg, fmt.Errorf("unknown variant %q, run 'ballmaze variants' to list them", flagVariant)
		}
		cfg.Level.Variant = flagVariant
	}

	return cfg, cfg.Validate()
}

// runtimeConfig collects the flags that shape a session.
func runtimeConfig(cols, rows int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if cols > 0 && rows > 0 {
		rc.ScreenW, rc.ScreenH = cols, rows
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	return rc
}

// engineOptions translates the runtime config into engine options.
func engineOptions(rc core.RuntimeConfig, cfg config.BallMazeConfig, logger *log.Logger) []maze.Option {
	opts := []maze.Option{
		maze.WithLogger(logger),
		maze.WithTickPeriod(rc.TickPeriod(cfg.Timing.TickPeriod)),
	}
	if rc.Seed != 0 {
		seed := rc.Seed
		opts = append(opts, maze.WithSeeder(func() int64 { return seed }))
	}
	return opts
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
