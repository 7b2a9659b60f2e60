package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/api"
	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
	"github.com/vovakirdan/tui-bubbles/internal/metrics"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the leaderboard over HTTP",
	Long: `Start an HTTP server exposing the leaderboard.

Routes:
  GET  /api/leaderboard?limit=n   Top players (default from config)
  GET  /api/leaderboard/{player}  One player's best score
  POST /api/scores                Submit {"name": "...", "score": n}
  GET  /health                    Liveness check
  GET  /metrics                   Prometheus metrics

Requests are rate limited per client IP.

Examples:
  bubbles api
  bubbles api --addr :9000
  bubbles api --leaderboard redis`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (default from config)")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "bubbles-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadBubbles(flagConfig)
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

	addr := firstNonEmpty(flagAPIAddr, cfg.Server.APIAddr)
	server := api.NewServer(addr, routerConfig(cfg, board, metrics.New(), logger))
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func routerConfig(cfg config.BubblesConfig, board leaderboard.Board, m *metrics.Metrics, logger *log.Logger) api.RouterConfig {
	rl := api.DefaultRateLimitConfig
	if cfg.Server.RatePerSec > 0 {
		rl.RequestsPerSecond = cfg.Server.RatePerSec
	}
	if cfg.Server.RateBurst > 0 {
		rl.Burst = cfg.Server.RateBurst
	}
	return api.RouterConfig{
		Board:           board,
		Metrics:         m,
		Logger:          logger,
		RateLimitConfig: &rl,
		CORSOrigins:     cfg.Server.CORSOrigins,
		TopLimit:        cfg.Leaderboard.TopLimit,
	}
}
