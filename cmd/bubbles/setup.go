package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels"
	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
)

// newLogger builds a logger at --log-level writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig reads the game config and its level layouts.
func loadConfig() (config.BubblesConfig, []levels.Level, error) {
	cfg, err := config.LoadBubbles(flagConfig)
	if err != nil {
		return cfg, nil, err
	}
	lvls, err := levels.Load(cfg.LevelsDir)
	if err != nil {
		return cfg, nil, err
	}
	if err := levels.CheckFits(lvls, cfg.ToRules()); err != nil {
		return cfg, nil, err
	}
	return cfg, lvls, nil
}

// openBoard opens the leaderboard backend picked by flag or config.
func openBoard(ctx context.Context, cfg config.BubblesConfig) (leaderboard.Board, error) {
	backend := cfg.Leaderboard.Backend
	if flagLeaderboard != "" {
		backend = flagLeaderboard
	}
	return leaderboard.New(ctx, backend, leaderboard.Options{
		DBPath:    flagDBPath,
		RedisAddr: cfg.Leaderboard.RedisAddr,
		RedisKey:  cfg.Leaderboard.RedisKey,
		Timeout:   cfg.Leaderboard.Timeout,
	})
}

// openLogFile opens path for appending, expanding a leading ~.
func openLogFile(path string) (*os.File, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
