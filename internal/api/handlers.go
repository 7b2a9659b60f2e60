package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
)

const (
	maxTopLimit   = 100
	maxNameLength = 32
	maxBodyBytes  = 1 << 10
)

type scoreRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *handlers) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := h.topLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxTopLimit)
	}

	entries, err := h.board.Top(r.Context(), limit)
	if err != nil {
		writeError(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	writeJSON(w, entries)
}

func (h *handlers) handlePlayer(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	entry, ok, err := h.board.Best(r.Context(), player)
	if err != nil {
		writeError(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}
	if !ok {
		writeError(w, "player not found", http.StatusNotFound)
		return
	}
	writeJSON(w, entry)
}

func (h *handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	switch {
	case req.Name == "":
		writeError(w, "name is required", http.StatusBadRequest)
		return
	case utf8.RuneCountInString(req.Name) > maxNameLength:
		writeError(w, "name too long", http.StatusBadRequest)
		return
	case req.Score < 0:
		writeError(w, "score must not be negative", http.StatusBadRequest)
		return
	}

	if err := h.board.Submit(r.Context(), req.Name, req.Score); err != nil {
		writeError(w, "could not save score", http.StatusServiceUnavailable)
		return
	}
	entry, _, err := h.board.Best(r.Context(), req.Name)
	if err != nil {
		writeError(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry) //nolint:errcheck
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
