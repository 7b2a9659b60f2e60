package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := embeddedDefaults()
	if err != nil {
		t.Fatalf("embeddedDefaults() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBubblesConfig()) {
		t.Errorf("embedded defaults differ from DefaultBubblesConfig():\n%+v\n%+v", cfg, DefaultBubblesConfig())
	}
}

func TestDefaultRulesMatchEngine(t *testing.T) {
	cfg := DefaultBubblesConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.ToRules(), core.DefaultRules()) {
		t.Errorf("ToRules() = %+v, want %+v", cfg.ToRules(), core.DefaultRules())
	}
}

func TestLoadBubblesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("shots:\n  initial: 50\nleaderboard:\n  timeout: 500ms\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBubbles(path)
	if err != nil {
		t.Fatalf("LoadBubbles() failed: %v", err)
	}
	if cfg.Shots.Initial != 50 {
		t.Errorf("Shots.Initial = %d, want 50", cfg.Shots.Initial)
	}
	if cfg.Shots.Bonus != 10 {
		t.Errorf("unset keys should keep defaults, Shots.Bonus = %d", cfg.Shots.Bonus)
	}
	if cfg.Leaderboard.Timeout != 500*time.Millisecond {
		t.Errorf("Leaderboard.Timeout = %v", cfg.Leaderboard.Timeout)
	}
}

func TestLoadBubblesMissingCustomPath(t *testing.T) {
	if _, err := LoadBubbles(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BubblesConfig)
	}{
		{"unknown color", func(c *BubblesConfig) { c.Palette = []string{"red", "pink"} }},
		{"empty palette", func(c *BubblesConfig) { c.Palette = nil }},
		{"game over row outside board", func(c *BubblesConfig) { c.Board.GameOverRow = 20 }},
		{"chance above one", func(c *BubblesConfig) { c.Board.NewRowChance = 1.5 }},
		{"no shots", func(c *BubblesConfig) { c.Shots.Initial = 0 }},
		{"unknown backend", func(c *BubblesConfig) { c.Leaderboard.Backend = "mongo" }},
		{"redis without addr", func(c *BubblesConfig) {
			c.Leaderboard.Backend = "redis"
			c.Leaderboard.RedisAddr = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBubblesConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
