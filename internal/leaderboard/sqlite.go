package leaderboard

import (
	"context"

	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// SQLiteBoard serves the leaderboard from the local scores database.
type SQLiteBoard struct {
	store *storage.Store
}

// NewSQLiteBoard wraps an open store. The board owns it from now on.
func NewSQLiteBoard(store *storage.Store) *SQLiteBoard {
	return &SQLiteBoard{store: store}
}

// Store returns the underlying database for history queries.
func (b *SQLiteBoard) Store() *storage.Store {
	return b.store
}

func (b *SQLiteBoard) Submit(ctx context.Context, player string, score int) error {
	return b.SubmitGame(ctx, player, score, 0)
}

func (b *SQLiteBoard) SubmitGame(ctx context.Context, player string, score, level int) error {
	if err := validPlayer(player); err != nil {
		return err
	}
	_, err := b.store.SaveScore(ctx, player, score, level)
	return err
}

func (b *SQLiteBoard) Top(ctx context.Context, n int) ([]Entry, error) {
	players, err := b.store.TopPlayers(ctx, n)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(players))
	for i, p := range players {
		out[i] = Entry{Player: p.Name, Score: p.BestScore, Games: p.GamesPlayed}
	}
	return out, nil
}

func (b *SQLiteBoard) Best(ctx context.Context, player string) (Entry, bool, error) {
	p, ok, err := b.store.PlayerBest(ctx, player)
	if err != nil || !ok {
		return Entry{}, ok, err
	}
	return Entry{Player: p.Name, Score: p.BestScore, Games: p.GamesPlayed}, true, nil
}

func (b *SQLiteBoard) Close() error {
	return b.store.Close()
}
