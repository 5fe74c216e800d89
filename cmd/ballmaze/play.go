package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ballmaze/internal/platform/tui"
	"github.com/vovakirdan/ballmaze/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Left/A, Right/D  - Tilt the ball
  Space/Enter      - Start, or play again after a run
  Esc/B            - Abandon the run
  T                - Toggle the lamp (light or dark theme)
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Base scroll speed and gap width
  normal - 30% faster scroll, narrower gaps
  hard   - 70% faster scroll, much narrower gaps
  fixed  - Use the config's difficulty section as is

Examples:
  ballmaze play
  ballmaze play --difficulty hard
  ballmaze play --seed 42 --variant freeform
  ballmaze play --config ./my-maze.yaml --log-file maze.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	// The alt screen owns the terminal, so logs go nowhere unless --log-file is set.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := runtimeConfig(width, height)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "err", err)
		// Continue without the journal - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:        cfg,
		Store:         store,
		Logger:        logger,
		EngineOptions: engineOptions(rc, cfg, logger),
	}, rc.ScreenW, rc.ScreenH)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		exitf("running game: %v", runErr)
	}
}
