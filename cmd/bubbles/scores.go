package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best score of the top players.

With --player, also lists that player's recent games (sqlite backend).
With --clear, deletes every recorded score (sqlite backend).

Examples:
  bubbles scores
  bubbles scores --limit 25
  bubbles scores --player ada
  bubbles scores --leaderboard redis`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 0, "Number of players to show (default from config)")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show this player's recent games")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadBubbles(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	board, err := openBoard(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}
	defer board.Close()

	sqlBoard, isSQL := board.(*leaderboard.SQLiteBoard)

	if flagScoresClear {
		if !isSQL {
			fmt.Fprintln(os.Stderr, "Error: --clear needs the sqlite backend")
			os.Exit(1)
		}
		if err := sqlBoard.Store().ClearScores(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All scores deleted.")
		return
	}

	limit := flagScoresLimit
	if limit <= 0 {
		limit = cfg.Leaderboard.TopLimit
	}
	entries, err := board.Top(ctx, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Bubbles")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubbles play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Player", "Best", "Games")
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "------", "----", "-----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-10d  %d\n", i+1, e.Player, e.Score, e.Games)
	}

	if flagScoresPlayer == "" {
		return
	}

	fmt.Println()
	best, ok, err := board.Best(ctx, flagScoresPlayer)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error retrieving player: %v\n", err)
		os.Exit(1)
	case !ok:
		fmt.Printf("%s has no recorded games.\n", flagScoresPlayer)
		return
	}
	fmt.Printf("%s - best %d over %d games\n", best.Player, best.Score, best.Games)

	if !isSQL {
		return
	}
	games, err := sqlBoard.Store().RecentGames(ctx, flagScoresPlayer, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %s\n", "Score", "Level", "Date")
	fmt.Printf("  %-10s  %-6s  %s\n", "-----", "-----", "----")
	for _, g := range games {
		fmt.Printf("  %-10d  %-6d  %s\n", g.Score, g.Level+1, g.CreatedAt.Format("2006-01-02 15:04"))
	}
}
