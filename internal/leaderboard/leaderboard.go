// Package leaderboard keeps the best score of every player and reports
// finished games without blocking the game loop.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// Backend names accepted by New.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("leaderboard: unknown backend")

// Entry is one leaderboard row.
type Entry struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
	Games  int    `json:"games"`
}

// Board stores the best score per player.
type Board interface {
	// Submit records a finished game. Only a higher score replaces the best.
	Submit(ctx context.Context, player string, score int) error
	// Top returns up to n entries ordered by score descending.
	Top(ctx context.Context, n int) ([]Entry, error)
	// Best returns the entry of one player; ok is false if unknown.
	Best(ctx context.Context, player string) (entry Entry, ok bool, err error)
	Close() error
}

// GameRecorder is implemented by boards that also keep the level reached.
type GameRecorder interface {
	SubmitGame(ctx context.Context, player string, score, level int) error
}

// Options selects and configures a backend.
type Options struct {
	DBPath    string
	RedisAddr string
	RedisKey  string
	Timeout   time.Duration
}

// New opens the backend named by kind.
func New(ctx context.Context, kind string, opts Options) (Board, error) {
	switch strings.ToLower(kind) {
	case "", BackendSQLite:
		store, err := storage.Open(opts.DBPath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteBoard(store), nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("leaderboard: cannot reach redis at %s: %w", opts.RedisAddr, err)
		}
		return NewRedisBoard(client, opts.RedisKey), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

func validPlayer(player string) error {
	if strings.TrimSpace(player) == "" {
		return errors.New("leaderboard: empty player name")
	}
	return nil
}
