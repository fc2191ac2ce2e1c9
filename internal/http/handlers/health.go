package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskfeed/taskfeed-be/internal/http/respond"
)

// Pinger is the slice of the store the health endpoint needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports uptime and database reachability.
type HealthHandler struct {
	db        Pinger
	startedAt time.Time
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(db Pinger, startedAt time.Time) *HealthHandler {
	return &HealthHandler{db: db, startedAt: startedAt}
}

// Check answers 200 while the database is reachable, 503 otherwise.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("health check: database unreachable")
		respond.Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	respond.JSON(w, http.StatusOK, "ok", map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
