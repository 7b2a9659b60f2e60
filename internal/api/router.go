// Package api serves the leaderboard over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
	"github.com/vovakirdan/tui-bubbles/internal/metrics"
)

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	// Board is the leaderboard backend (required).
	Board leaderboard.Board

	// Metrics is optional; without it /metrics is not mounted.
	Metrics *metrics.Metrics

	// Logger is optional; nil disables request logging.
	Logger *log.Logger

	// RateLimiter is used as is when set, otherwise one is built
	// from RateLimitConfig or DefaultRateLimitConfig. Only a limiter the
	// router builds reports rejections to Metrics.
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins defaults to any origin.
	CORSOrigins []string

	// TopLimit is the default leaderboard size. Zero means 10.
	TopLimit int
}

type handlers struct {
	board    leaderboard.Board
	topLimit int
}

// NewRouter builds the router. It opens no listeners; a limiter it
// creates itself is stopped by the returned function.
func NewRouter(cfg RouterConfig) (*chi.Mux, func()) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recoverer)

	stop := func() {}
	limiter := cfg.RateLimiter
	if limiter == nil {
		rlc := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlc = *cfg.RateLimitConfig
		}
		if rlc.OnReject == nil && cfg.Metrics != nil {
			rlc.OnReject = cfg.Metrics.RecordRateLimited
		}
		limiter = NewIPRateLimiter(rlc)
		stop = limiter.Stop
	}
	r.Use(limiter.Middleware)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	topLimit := cfg.TopLimit
	if topLimit <= 0 {
		topLimit = 10
	}
	h := &handlers{board: cfg.Board, topLimit: topLimit}

	r.Get("/health", h.handleHealth)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", h.handleTop)
		r.Get("/leaderboard/{player}", h.handlePlayer)
		r.Post("/scores", h.handleSubmit)
	})

	return r, stop
}

// requestLogger logs each request and feeds the HTTP metrics.
// Metrics use the route pattern to keep label cardinality bounded.
func requestLogger(logger *log.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)

			m.RecordRequest(r.Method, route, status, elapsed)
			if logger != nil {
				logger.Info("request",
					"id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", elapsed,
				)
			}
		})
	}
}
