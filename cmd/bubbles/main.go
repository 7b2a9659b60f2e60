// bubbles is a hex-grid bubble shooter for the terminal.
//
// Usage:
//
//	bubbles play             - Play in this terminal
//	bubbles serve            - Start SSH server for remote play
//	bubbles api              - Serve the leaderboard over HTTP
//	bubbles scores           - Show the leaderboard
//	bubbles levels           - List level layouts
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.bubbles/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--leaderboard <name>  - Override the leaderboard backend (sqlite, redis)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagLeaderboard string
	flagLogLevel    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubbles",
	Short: "Bubbles - a bubble shooter in your terminal",
	Long: `Bubbles is a hex-grid bubble shooter for the terminal.

Aim the launcher, match three or more bubbles of one colour to pop them,
and cut bubbles loose from the ceiling to drop them. Every few missed
matches the ceiling moves down; reach the limit line and the game is over.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  api      - Serve the leaderboard over HTTP
  scores   - View the leaderboard
  levels   - List level layouts

Examples:
  bubbles play --player ada
  bubbles play --level 3
  bubbles serve --ssh :2222
  bubbles api --addr :8080
  bubbles scores --limit 20`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bubbles/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard backend: sqlite or redis (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}
