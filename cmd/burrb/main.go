// burrb is a terminal life sim: roam a procedurally generated town as a
// small round creature, collect currencies, unlock abilities and try to
// stay out of trouble.
//
// Usage:
//
//	burrb play               - Start a session in your terminal
//	burrb serve              - Start SSH server for remote play
//	burrb records            - Browse past runs and lifetime stats
//	burrb abilities          - Show the ability catalog
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set world seed for reproducible towns
//	--db <path>     - Set database path (default: ~/.burrb/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "burrb",
	Short: "Life of a Burrb - A tiny open-world life sim in your terminal",
	Long: `Life of a Burrb drops you into a procedurally generated town as a burrb,
a small round creature with a long tongue. Explore four biomes and the city,
collect five currencies, buy abilities and survive the locals.

Available commands:
  play       - Start a session directly
  serve      - Start SSH server for remote play
  records    - Browse past runs and lifetime stats
  abilities  - Show the ability catalog

Examples:
  burrb play
  burrb play --seed 42 --difficulty hard
  burrb serve --ssh :2222 --watch :8080
  burrb records`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "World seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.burrb/runs.db", "Path to run records database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(abilitiesCmd)
}
