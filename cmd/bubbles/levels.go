package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List level layouts",
	Long: `Shows the level layouts in play order.

Levels come from the config's levels_dir, or the built-in set when it
is empty. Clearing a board moves on to the next layout.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	_, lvls, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-20s  %-7s  %s\n", "#", maxIDLen, "ID", "Name", "Bubbles", "Source")
	fmt.Printf("  %-3s  %-*s  %-20s  %-7s  %s\n", "-", maxIDLen, "--", "----", "-------", "------")
	for i, l := range lvls {
		fmt.Printf("  %-3d  %-*s  %-20s  %-7d  %s\n", i+1, maxIDLen, l.ID, l.Name, len(l.Layout.Cells), l.FilePath)
	}

	fmt.Println()
	fmt.Println("Run 'bubbles play --level <#>' to start on a level.")
}
