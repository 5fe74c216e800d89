package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballmaze/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List level variants",
	Long:  `Shows the gap placement variants a tower can be generated with.`,
	Args:  cobra.NoArgs,
	Run:   runVariants,
}

func runVariants(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, v := range variants {
		fmt.Printf("  %-*s  %s\n", maxIDLen, v.ID, v.Title)
	}

	fmt.Println()
	fmt.Println("Run 'ballmaze play --variant <id>' to play one.")
}
