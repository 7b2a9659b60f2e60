package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestObserve(t *testing.T) {
	m := New()
	m.Observe([]core.Event{
		{Kind: core.EventShot},
		{Kind: core.EventPopping, Bubbles: make([]core.Bubble, 3), Count: 3},
		{Kind: core.EventFalling, Bubbles: make([]core.Bubble, 2), Count: 2},
		{Kind: core.EventShot},
		{Kind: core.EventMiss},
		{Kind: core.EventBonusShots, Count: 10},
		{Kind: core.EventAdvance, Count: 0},
		{Kind: core.EventBoardCleared},
		{Kind: core.EventGameOver, Score: 1200},
	})

	out := scrape(t, m)
	for _, want := range []string{
		"bubbles_shots_total 2",
		"bubbles_misses_total 1",
		"bubbles_popped_total 3",
		"bubbles_fallen_total 2",
		"bubbles_bonus_shots_total 10",
		"bubbles_board_advances_total 1",
		"bubbles_boards_cleared_total 1",
		"bubbles_games_over_total 1",
		"bubbles_final_score_sum 1200",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRecordRequest(t *testing.T) {
	m := New()
	m.RecordRequest("GET", "/api/leaderboard", 200, 5*time.Millisecond)
	m.RecordRateLimited()

	out := scrape(t, m)
	if !strings.Contains(out, `bubbles_http_requests_total{method="GET",route="/api/leaderboard",status="200"} 1`) {
		t.Errorf("request counter missing:\n%s", out)
	}
	if !strings.Contains(out, "bubbles_http_rate_limited_total 1") {
		t.Error("rate limit counter missing")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Observe([]core.Event{{Kind: core.EventShot}})
	m.RecordRequest("GET", "/", 200, time.Millisecond)
	m.RecordRateLimited()
}
