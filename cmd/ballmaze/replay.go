package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballmaze/internal/maze"
	"github.com/vovakirdan/ballmaze/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-run a journaled game and check it",
	Long: `Regenerate the tower of a journaled run from its seed and re-apply the
recorded tilt trace tick by tick. Reports whether the outcome, score and
tick count match what was recorded.

The run id may be any unique prefix of the id shown by 'ballmaze runs'.

Examples:
  ballmaze replay 3f2a9c1e
  ballmaze replay 3f2a`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening run journal: %v", err)
	}

	entry, err := store.Run(args[0])
	store.Close()
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'ballmaze runs' to see journaled runs.")
		}
		exitf("%v", err)
	}

	rec := entry.Record
	fmt.Printf("Run %s\n", entry.ID)
	fmt.Printf("  %-9s %d\n", "Seed", rec.Seed)
	fmt.Printf("  %-9s %s\n", "Variant", rec.Variant)
	fmt.Printf("  %-9s %dx%d\n", "World", rec.Width, rec.Height)
	fmt.Printf("  %-9s %s, score %d/%d after %d ticks\n", "Recorded", rec.Outcome, rec.Score, rec.Config.Level.Floors, rec.Ticks)
	fmt.Printf("  %-9s %s\n", "Played", formatTime(rec.StartedAt))
	fmt.Println()

	st, err := maze.Replay(rec)
	if err != nil {
		if errors.Is(err, maze.ErrReplayDiverged) {
			fmt.Printf("Replay diverged: %s, score %d after %d ticks\n", st.Outcome, st.Score, st.Ticks)
			os.Exit(1)
		}
		exitf("replaying run: %v", err)
	}

	fmt.Printf("Replay matches: %s, score %d after %d ticks\n", st.Outcome, st.Score, st.Ticks)
}
