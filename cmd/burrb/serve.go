package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/magoocas/life-of-a-burrb/internal/platform/tui"
	"github.com/magoocas/life-of-a-burrb/internal/spectator"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHDBPath   string
	flagIdleTimeout int
	flagWatch       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the burrb SSH server",
	Long: `Start an SSH server that lets users connect and play over the network.

Each SSH connection gets its own town and its own session. Runs are stored
per-server, so all users share the same records.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.burrb/host_key

With --watch, a WebSocket spectator feed runs beside the SSH server and
streams every active session's state to connected viewers.

Examples:
  burrb serve                           # Listen on :23234 with auto-generated key
  burrb serve --ssh :2222               # Listen on port 2222
  burrb serve --host-key ./my_host_key  # Use specific host key
  burrb serve --db ./runs.db            # Use specific database
  burrb serve --watch :8080             # Also serve a spectator feed

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSSHDBPath, "db", "~/.burrb/runs.db", "Path to run records database")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagWatch, "watch", "", "Spectator feed address (host:port, empty = disabled)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagSSHDBPath,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	var (
		hub      *spectator.Hub
		watchSrv *spectator.Server
	)
	if flagWatch != "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "burrb-watch",
		})
		hub = spectator.NewHub(logger)
		watchSrv = spectator.NewServer(flagWatch, hub, logger)
	}

	server, err := tui.NewSSHServer(cfg, hub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting burrb SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	if flagWatch != "" {
		fmt.Printf("Spectator feed on ws://localhost%s/watch\n", flagWatch)
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Run(gctx); err != nil {
			return fmt.Errorf("SSH server: %w", err)
		}
		return nil
	})
	if watchSrv != nil {
		g.Go(func() error {
			if err := watchSrv.Run(gctx); err != nil {
				return fmt.Errorf("spectator server: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
