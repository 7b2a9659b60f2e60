package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the default configuration.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Board: BoardConfig{
			Rows:         20,
			Cols:         14,
			GameOverRow:  14,
			NewRowChance: 0.6,
		},
		Shots: ShotsConfig{
			Initial:       35,
			Bonus:         10,
			BonusEvery:    5000,
			BeforeAdvance: 6,
		},
		Scoring: ScoringConfig{
			MinMatch:   3,
			Pop:        10,
			Fall:       20,
			ClearBonus: 1000,
		},
		Timing: TimingConfig{
			SettleTicks:  18,
			AdvanceTicks: 12,
		},
		Palette: []string{"red", "green", "blue", "yellow", "purple", "orange"},
		Leaderboard: LeaderboardConfig{
			Backend:   "sqlite",
			RedisAddr: "localhost:6379",
			RedisKey:  "bubbles:leaderboard",
			Timeout:   3 * time.Second,
			TopLimit:  10,
		},
		Server: ServerConfig{
			SSHAddr:     ":2222",
			HostKeyPath: ".ssh/bubbles_ed25519",
			IdleTimeout: 30 * time.Minute,
			APIAddr:     ":8080",
			RatePerSec:  5,
			RateBurst:   10,
			CORSOrigins: []string{"*"},
		},
	}
}
