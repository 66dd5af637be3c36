package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/ehwaz/internal/journal"
)

// Handler holds the status API route handlers.
type Handler struct {
	journal     journal.Recorder
	clientCount func() int
}

// NewHandler creates a new Handler. clientCount may be nil.
func NewHandler(j journal.Recorder, clientCount func() int) *Handler {
	return &Handler{journal: j, clientCount: clientCount}
}

// Status handles GET /api/status: journal stats plus SSE client count.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.journal.Stats()
	if err != nil {
		slog.Error("status failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	clients := 0
	if h.clientCount != nil {
		clients = h.clientCount()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":       stats,
		"sse_clients": clients,
	})
}

// Exports handles GET /api/exports: the most recent journal entries.
func (h *Handler) Exports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := h.journal.Recent(limit)
	if err != nil {
		slog.Error("list exports failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if rows == nil {
		rows = []journal.ExportRow{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exports": rows,
		"count":   len(rows),
	})
}
