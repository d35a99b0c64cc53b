package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/magoocas/life-of-a-burrb/internal/core"
	"github.com/magoocas/life-of-a-burrb/internal/platform/tui"
	"github.com/magoocas/life-of-a-burrb/internal/sim"
	"github.com/magoocas/life-of-a-burrb/internal/spectator"
	"github.com/magoocas/life-of-a-burrb/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagBroadcast  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a burrb session",
	Long: `Start a session in the current terminal. A new town is generated from the
seed and the session runs until you quit; the run is then recorded.

Controls:
  WASD/Arrows - Move (uppercase or shift = sprint)
  O           - Tongue attack
  E           - Interact with doors, closets, beds
  Tab         - Open the ability shop
  U           - Unstuck nudge
  Esc/Ctrl+C  - Quit

Difficulty options:
  easy   - More hearts, fewer aggressive npcs
  normal - Default balance
  hard   - More aggressive npcs that bite harder

Examples:
  burrb play
  burrb play --seed 42
  burrb play --difficulty hard
  burrb play --config ./my-burrb.yaml
  burrb play --broadcast :8080`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagBroadcast, "broadcast", "", "Serve a WebSocket spectator feed on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Apply gameplay config and difficulty before the session starts
	sim.SetConfigPath(flagConfig)
	sim.SetDifficultyPreset(flagDifficulty)

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the session still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if flagBroadcast == "" {
		if runErr := tui.Run(store, nil, cfg); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	// Broadcast mode: the session and the spectator feed run side by side
	// and quitting either tears the other down. The TUI owns the terminal,
	// so spectator logs go to a file instead of stderr.
	logger := log.New(io.Discard)
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		logDir := filepath.Join(home, ".burrb")
		//nolint:errcheck // Best-effort, logging falls back to discard
		os.MkdirAll(logDir, 0o755)
		logPath := filepath.Join(logDir, "watch.log")
		if f, openErr := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); openErr == nil {
			defer f.Close()
			logger = log.NewWithOptions(f, log.Options{
				ReportTimestamp: true,
				Prefix:          "burrb-watch",
			})
		}
	}
	hub := spectator.NewHub(logger)
	watchSrv := spectator.NewServer(flagBroadcast, hub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := watchSrv.Run(gctx); err != nil {
			return fmt.Errorf("spectator server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Quitting the session stops the spectator server as well
		defer stop()
		if err := tui.Run(store, hub, cfg); err != nil {
			return fmt.Errorf("session: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
