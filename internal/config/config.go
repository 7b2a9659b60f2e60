// Package config provides YAML-based configuration loading for the bubble
// shooter and its services.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// BubblesConfig contains all configuration for the game and its services.
type BubblesConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Shots       ShotsConfig       `yaml:"shots"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Timing      TimingConfig      `yaml:"timing"`
	Palette     []string          `yaml:"palette"`
	LevelsDir   string            `yaml:"levels_dir"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Server      ServerConfig      `yaml:"server"`
}

// BoardConfig defines the board geometry.
type BoardConfig struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	GameOverRow  int     `yaml:"game_over_row"`
	NewRowChance float64 `yaml:"new_row_chance"`
}

// ShotsConfig defines the shot budget and the advance countdown.
type ShotsConfig struct {
	Initial       int `yaml:"initial"`
	Bonus         int `yaml:"bonus"`
	BonusEvery    int `yaml:"bonus_every"` // score step
	BeforeAdvance int `yaml:"before_advance"`
}

// ScoringConfig defines points per event.
type ScoringConfig struct {
	MinMatch   int `yaml:"min_match"`
	Pop        int `yaml:"pop"`
	Fall       int `yaml:"fall"`
	ClearBonus int `yaml:"clear_bonus"`
}

// TimingConfig defines animation lengths in ticks.
type TimingConfig struct {
	SettleTicks  int `yaml:"settle_ticks"`
	AdvanceTicks int `yaml:"advance_ticks"`
}

// LeaderboardConfig selects and configures the score backend.
type LeaderboardConfig struct {
	Backend   string        `yaml:"backend"` // sqlite or redis
	RedisAddr string        `yaml:"redis_addr"`
	RedisKey  string        `yaml:"redis_key"`
	Timeout   time.Duration `yaml:"timeout"`
	TopLimit  int           `yaml:"top_limit"`
}

// ServerConfig configures the SSH and HTTP services.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	APIAddr     string        `yaml:"api_addr"`
	RatePerSec  float64       `yaml:"rate_per_sec"`
	RateBurst   int           `yaml:"rate_burst"`
	CORSOrigins []string      `yaml:"cors_origins"`
}

// Validate reports the first invalid setting.
func (c BubblesConfig) Validate() error {
	if _, err := c.Colors(); err != nil {
		return err
	}
	if err := c.ToRules().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Leaderboard.Backend {
	case "", "sqlite", "redis":
	default:
		return fmt.Errorf("config: unknown leaderboard backend %q", c.Leaderboard.Backend)
	}
	if c.Leaderboard.Backend == "redis" && c.Leaderboard.RedisAddr == "" {
		return fmt.Errorf("config: redis backend needs redis_addr")
	}
	return nil
}

// Colors parses the palette names.
func (c BubblesConfig) Colors() ([]core.Color, error) {
	out := make([]core.Color, 0, len(c.Palette))
	for _, name := range c.Palette {
		color, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown palette color %q", name)
		}
		out = append(out, color)
	}
	return out, nil
}

// ToRules converts the config into engine rules. Unknown palette names are
// skipped; call Validate first to reject them.
func (c BubblesConfig) ToRules() core.Rules {
	palette, _ := c.Colors()
	return core.Rules{
		Rows:               c.Board.Rows,
		Cols:               c.Board.Cols,
		GameOverRow:        c.Board.GameOverRow,
		NewRowChance:       c.Board.NewRowChance,
		InitialShots:       c.Shots.Initial,
		BonusShots:         c.Shots.Bonus,
		BonusThreshold:     c.Shots.BonusEvery,
		ShotsBeforeAdvance: c.Shots.BeforeAdvance,
		MinMatch:           c.Scoring.MinMatch,
		PopScore:           c.Scoring.Pop,
		FallScore:          c.Scoring.Fall,
		ClearBonus:         c.Scoring.ClearBonus,
		SettleTicks:        c.Timing.SettleTicks,
		AdvanceTicks:       c.Timing.AdvanceTicks,
		Palette:            palette,
	}
}
