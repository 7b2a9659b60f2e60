// Package metrics exposes game and API counters for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// Metrics holds every collector on its own registry.
// Labels are bounded: no per-player values.
type Metrics struct {
	registry *prometheus.Registry

	shots         prometheus.Counter
	misses        prometheus.Counter
	popped        prometheus.Counter
	fallen        prometheus.Counter
	advances      prometheus.Counter
	boardsCleared prometheus.Counter
	bonusShots    prometheus.Counter
	gamesOver     prometheus.Counter
	finalScore    prometheus.Histogram

	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	rateLimited    prometheus.Counter
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		shots: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_shots_total",
			Help: "Projectiles fired",
		}),
		misses: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_misses_total",
			Help: "Shots that found no free cell",
		}),
		popped: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_popped_total",
			Help: "Bubbles removed by colour matches",
		}),
		fallen: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_fallen_total",
			Help: "Bubbles removed for losing their anchor",
		}),
		advances: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_board_advances_total",
			Help: "Times the board moved down one row",
		}),
		boardsCleared: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_boards_cleared_total",
			Help: "Boards emptied by the player",
		}),
		bonusShots: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_bonus_shots_total",
			Help: "Shots awarded for crossing score milestones",
		}),
		gamesOver: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_games_over_total",
			Help: "Finished games",
		}),
		finalScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bubbles_final_score",
			Help:    "Score at game over",
			Buckets: []float64{0, 500, 1000, 2500, 5000, 10000, 25000, 50000},
		}),

		requestTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bubbles_http_requests_total",
			Help: "HTTP requests by route pattern and status",
		}, []string{"method", "route", "status"}),
		requestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bubbles_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "bubbles_http_rate_limited_total",
			Help: "Requests rejected by the per-IP limiter",
		}),
	}
}

// Observe updates the game counters from a batch of session events.
// Safe to call with a nil receiver.
func (m *Metrics) Observe(events []core.Event) {
	if m == nil {
		return
	}
	for _, e := range events {
		switch e.Kind {
		case core.EventShot:
			m.shots.Inc()
		case core.EventMiss:
			m.misses.Inc()
		case core.EventPopping:
			m.popped.Add(float64(len(e.Bubbles)))
		case core.EventFalling:
			m.fallen.Add(float64(len(e.Bubbles)))
		case core.EventAdvance:
			m.advances.Inc()
		case core.EventBoardCleared:
			m.boardsCleared.Inc()
		case core.EventBonusShots:
			m.bonusShots.Add(float64(e.Count))
		case core.EventGameOver:
			m.gamesOver.Inc()
			m.finalScore.Observe(float64(e.Score))
		}
	}
}

// RecordRequest counts one HTTP request. route must be a pattern, not a raw path.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordRateLimited counts a request rejected by the rate limiter.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
