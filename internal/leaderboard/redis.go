package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the sorted set holding best scores.
const DefaultRedisKey = "bubbles:leaderboard"

// RedisBoard keeps best scores in a sorted set keyed by player name and
// games played in a companion hash, so several servers share one board.
type RedisBoard struct {
	client   *redis.Client
	key      string
	gamesKey string
}

// NewRedisBoard uses client with the given sorted set key.
func NewRedisBoard(client *redis.Client, key string) *RedisBoard {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBoard{client: client, key: key, gamesKey: key + ":games"}
}

func (b *RedisBoard) Submit(ctx context.Context, player string, score int) error {
	if err := validPlayer(player); err != nil {
		return err
	}
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// GT only moves the score up; new members are always added.
		pipe.ZAddGT(ctx, b.key, redis.Z{Score: float64(score), Member: player})
		pipe.HIncrBy(ctx, b.gamesKey, player, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("leaderboard: redis submit: %w", err)
	}
	return nil
}

func (b *RedisBoard) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	zs, err := b.client.ZRevRangeWithScores(ctx, b.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: redis top: %w", err)
	}
	if len(zs) == 0 {
		return nil, nil
	}

	names := make([]string, len(zs))
	for i, z := range zs {
		names[i] = fmt.Sprint(z.Member)
	}
	games, err := b.client.HMGet(ctx, b.gamesKey, names...).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: redis games: %w", err)
	}

	out := make([]Entry, len(zs))
	for i, z := range zs {
		out[i] = Entry{Player: names[i], Score: int(z.Score), Games: parseCount(games[i])}
	}
	return out, nil
}

func (b *RedisBoard) Best(ctx context.Context, player string) (Entry, bool, error) {
	score, err := b.client.ZScore(ctx, b.key, player).Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("leaderboard: redis best: %w", err)
	}
	games, err := b.client.HGet(ctx, b.gamesKey, player).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, false, fmt.Errorf("leaderboard: redis games: %w", err)
	}
	return Entry{Player: player, Score: int(score), Games: parseCount(games)}, true, nil
}

func (b *RedisBoard) Close() error {
	return b.client.Close()
}

func parseCount(v any) int {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
