package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/api"
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels"
	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
	"github.com/vovakirdan/tui-bubbles/internal/metrics"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeHTTP   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bubbles SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session. The SSH user name is the
player name, and all users share the server's leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses the config's host_key_path (generated if missing)

With --http the leaderboard API and game metrics are served as well.

Examples:
  bubbles serve                          # Listen on :2222
  bubbles serve --ssh :23234             # Listen on port 23234
  bubbles serve --http :8080             # Also serve /api and /metrics
  bubbles serve --leaderboard redis      # Share scores through Redis

Users can connect with:
  ssh alice@localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
	serveCmd.Flags().StringVar(&flagServeHTTP, "http", "", "Also serve the HTTP API on this address")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "bubbles-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, lvls, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	board, err := openBoard(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}
	defer board.Close()

	reporter := leaderboard.NewReporter(board, cfg.Leaderboard.Timeout, logger)
	defer reporter.Wait()

	m := metrics.New()

	sshCfg := tui.SSHServerConfig{
		Address:     firstNonEmpty(flagSSHAddr, cfg.Server.SSHAddr),
		HostKeyPath: firstNonEmpty(flagHostKey, cfg.Server.HostKeyPath),
		IdleTimeout: cfg.Server.IdleTimeout,
		App: tui.AppConfig{
			Game: bubbles.Options{
				Rules:    cfg.ToRules(),
				Layouts:  levels.Layouts(lvls),
				Reporter: reporter,
				OnEvents: m.Observe,
			},
			Board:   board,
			Runtime: core.RuntimeConfig{TickRate: flagFPS},
			Logger:  logger,
		},
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	if flagServeHTTP != "" {
		router, stop := api.NewRouter(routerConfig(cfg, board, m, logger.WithPrefix("bubbles-api")))
		defer stop()
		httpSrv := &http.Server{Addr: flagServeHTTP, Handler: router, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("starting HTTP API", "address", flagServeHTTP)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP API stopped", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpSrv.Shutdown(ctx) //nolint:errcheck
		}()
	}

	fmt.Printf("Starting bubbles SSH server on %s\n", server.Addr())
	if _, port, splitErr := net.SplitHostPort(server.Addr()); splitErr == nil {
		fmt.Printf("Connect with: ssh <name>@localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
