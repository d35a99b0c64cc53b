package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/magoocas/life-of-a-burrb/internal/platform/tui"
	"github.com/magoocas/life-of-a-burrb/internal/storage"
)

var flagClear bool

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Browse past runs and lifetime stats",
	Long: `Open an interactive browser over recorded runs.

The table toggles between the longest runs and the most recent ones;
a side panel shows lifetime totals across every session.

Examples:
  burrb records
  burrb records --db ./runs.db
  burrb records --clear`,
	Run: runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs and exit")
}

func runRecords(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if clearErr := store.ClearRuns(); clearErr != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", clearErr)
			os.Exit(1)
		}
		fmt.Println("All recorded runs deleted.")
		return
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if runErr := tui.RunRecords(store, width, height); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error showing records: %v\n", runErr)
		os.Exit(1)
	}
}
