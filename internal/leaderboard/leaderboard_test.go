package leaderboard

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func openSQLite(t *testing.T) Board {
	t.Helper()
	board, err := New(context.Background(), BackendSQLite, Options{
		DBPath: filepath.Join(t.TempDir(), "scores.db"),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { board.Close() })
	return board
}

// exerciseBoard runs the same checks against any backend.
func exerciseBoard(t *testing.T, board Board) {
	t.Helper()
	ctx := context.Background()

	submits := []struct {
		player string
		score  int
	}{
		{"ada", 400},
		{"bob", 700},
		{"ada", 900},
		{"ada", 100},
	}
	for _, s := range submits {
		if err := board.Submit(ctx, s.player, s.score); err != nil {
			t.Fatalf("Submit(%s, %d) failed: %v", s.player, s.score, err)
		}
	}

	top, err := board.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	want := []Entry{
		{Player: "ada", Score: 900, Games: 3},
		{Player: "bob", Score: 700, Games: 1},
	}
	if len(top) != len(want) {
		t.Fatalf("Top() = %+v, want %+v", top, want)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("Top()[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}

	entry, ok, err := board.Best(ctx, "ada")
	if err != nil || !ok {
		t.Fatalf("Best(ada) = ok %v, err %v", ok, err)
	}
	if entry.Score != 900 {
		t.Errorf("Best(ada).Score = %d, want 900", entry.Score)
	}

	if _, ok, err := board.Best(ctx, "nobody"); err != nil || ok {
		t.Errorf("Best(nobody) = ok %v, err %v; want not found", ok, err)
	}

	if err := board.Submit(ctx, " ", 10); err == nil {
		t.Error("Submit() with blank player should fail")
	}
}

func TestSQLiteBoard(t *testing.T) {
	exerciseBoard(t, openSQLite(t))
}

func TestSQLiteBoardRecordsLevel(t *testing.T) {
	board := openSQLite(t).(*SQLiteBoard)
	ctx := context.Background()

	if err := board.SubmitGame(ctx, "ada", 1200, 3); err != nil {
		t.Fatalf("SubmitGame() failed: %v", err)
	}
	games, err := board.Store().RecentGames(ctx, "ada", 1)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 1 || games[0].Level != 3 {
		t.Errorf("RecentGames() = %+v, want one game at level 3", games)
	}
}

// TestRedisBoard needs a live server: BUBBLES_TEST_REDIS=localhost:6379.
func TestRedisBoard(t *testing.T) {
	addr := os.Getenv("BUBBLES_TEST_REDIS")
	if addr == "" {
		t.Skip("BUBBLES_TEST_REDIS not set")
	}
	ctx := context.Background()
	key := "bubbles:test:" + time.Now().Format("150405.000000")

	board, err := New(ctx, BackendRedis, Options{RedisAddr: addr, RedisKey: key, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	rb := board.(*RedisBoard)
	t.Cleanup(func() {
		rb.client.Del(ctx, rb.key, rb.gamesKey)
		board.Close()
	})

	exerciseBoard(t, board)
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), "mongo", Options{})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(mongo) error = %v, want ErrUnknownBackend", err)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{"4", 4},
		{nil, 0},
		{"x", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

type fakeBoard struct {
	mu     sync.Mutex
	scores map[string]int
	fail   bool
}

func (f *fakeBoard) Submit(_ context.Context, player string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("boom")
	}
	if f.scores == nil {
		f.scores = make(map[string]int)
	}
	f.scores[player] = max(f.scores[player], score)
	return nil
}

func (f *fakeBoard) Top(context.Context, int) ([]Entry, error) { return nil, nil }

func (f *fakeBoard) Best(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, nil
}

func (f *fakeBoard) Close() error { return nil }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestReporterSubmitsInBackground(t *testing.T) {
	board := &fakeBoard{}
	r := NewReporter(board, time.Second, quietLogger())

	r.ReportScore("ada", 300)
	r.ReportScore("ada", 500)
	r.ReportScore("bob", 50)
	r.ReportScore("", 999)
	r.Wait()

	if board.scores["ada"] != 500 || board.scores["bob"] != 50 {
		t.Errorf("scores = %v", board.scores)
	}
	if _, ok := board.scores[""]; ok {
		t.Error("empty player should not be reported")
	}
}

func TestReporterSurvivesFailures(t *testing.T) {
	board := &fakeBoard{fail: true}
	r := NewReporter(board, 0, quietLogger())
	r.ReportScore("ada", 10)
	r.Wait()
	if len(board.scores) != 0 {
		t.Errorf("scores = %v, want none", board.scores)
	}
}

func TestReporterUsesGameRecorder(t *testing.T) {
	board := openSQLite(t).(*SQLiteBoard)
	r := NewReporter(board, time.Second, quietLogger())

	r.ReportGame("ada", 2000, 2)
	r.Wait()

	games, err := board.Store().RecentGames(context.Background(), "ada", 5)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 1 || games[0].Score != 2000 || games[0].Level != 2 {
		t.Errorf("RecentGames() = %+v", games)
	}
}
