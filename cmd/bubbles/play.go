package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels"
	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
)

var (
	flagPlayer  string
	flagLevel   int
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the bubble shooter.

Controls:
  Left/Right  - Aim
  Space/Up    - Fire
  P           - Pause
  R           - Restart (after game over)
  Esc         - Back to menu (paused or game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Without --player you are asked for a name before the first game.
With --level the game starts at once on that level.

Examples:
  bubbles play
  bubbles play --player ada
  bubbles play --level 2 --seed 42
  bubbles play --config ./my-bubbles.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for the leaderboard")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start directly at this level (1-based)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.bubbles/bubbles.log", "Log file (the game owns the terminal)")
}

func runPlay(_ *cobra.Command, _ []string) {
	// The alternate screen owns stdout, so logs go to a file.
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "bubbles")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, lvls, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel < 0 || flagLevel > len(lvls) {
		fmt.Fprintf(os.Stderr, "Error: --level must be between 1 and %d\n", len(lvls))
		fmt.Fprintln(os.Stderr, "Run 'bubbles levels' to see available levels.")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := bubbles.Options{
		Rules:   cfg.ToRules(),
		Layouts: levels.Layouts(lvls),
	}

	board, err := openBoard(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: leaderboard unavailable: %v\n", err)
		logger.Warn("leaderboard unavailable", "error", err)
		// Continue without scores - the game still works
		board = nil
	}
	var reporter *leaderboard.Reporter
	if board != nil {
		reporter = leaderboard.NewReporter(board, cfg.Leaderboard.Timeout, logger)
		opts.Reporter = reporter
	}

	if os.Getenv("NO_COLOR") != "" {
		tui.SetTheme(tui.MonochromeTheme())
	}

	runErr := tui.Run(tui.AppConfig{
		Game:  opts,
		Board: board,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Player:     flagPlayer,
		Suggested:  os.Getenv("USER"),
		SkipMenu:   flagLevel > 0,
		StartLevel: max(flagLevel-1, 0),
		Logger:     logger,
	})

	if reporter != nil {
		reporter.Wait()
	}
	if board != nil {
		board.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
