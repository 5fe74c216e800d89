package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballmaze/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsDelete string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Long: `Display the most recent journaled runs, newest first.

Examples:
  ballmaze runs
  ballmaze runs --limit 50
  ballmaze runs --delete 3f2a9c1e`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunsDelete, "delete", "", "Delete the run with this id or unique prefix")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening run journal: %v", err)
	}
	defer store.Close()

	if flagRunsDelete != "" {
		entry, err := store.Run(flagRunsDelete)
		if err == nil {
			err = store.DeleteRun(entry.ID)
		}
		if err != nil {
			store.Close()
			exitf("%v", err)
		}
		fmt.Printf("Deleted run %s\n", entry.ID)
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		store.Close()
		exitf("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs journaled yet.")
		fmt.Println()
		fmt.Println("Play 'ballmaze play' or 'ballmaze simulate' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-7s  %-7s  %-6s  %-9s  %-20s  %s\n", "ID", "Outcome", "Score", "Ticks", "Variant", "Seed", "Date")
	fmt.Printf("  %-8s  %-7s  %-7s  %-6s  %-9s  %-20s  %s\n", "--", "-------", "-----", "-----", "-------", "----", "----")

	// Print runs
	for _, r := range runs {
		score := fmt.Sprintf("%d/%d", r.Score, r.Floors)
		fmt.Printf("  %-8s  %-7s  %-7s  %-6d  %-9s  %-20d  %s\n",
			shortID(r.ID), r.Outcome, score, r.Ticks, r.Variant, r.Seed, formatTime(r.FinishedAt))
	}

	fmt.Println()
	fmt.Println("Run 'ballmaze replay <id>' to check a run against its journal.")
}
