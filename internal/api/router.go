// Package api implements the watch-mode status API using chi.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ehwaz/internal/journal"
)

// NewRouter creates a chi router with the status routes mounted.
// sseHandler, if non-nil, is mounted at GET /events.
// clientCount, if non-nil, reports connected SSE clients in /status.
func NewRouter(j journal.Recorder, sseHandler http.Handler, clientCount func() int) chi.Router {
	h := NewHandler(j, clientCount)

	r := chi.NewRouter()
	r.Get("/status", h.Status)
	r.Get("/exports", h.Exports)
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}
	return r
}
