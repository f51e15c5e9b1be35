package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/taskreg/api/internal/service"
	"github.com/taskreg/api/internal/store"
)

// HealthHandler handles liveness checks
type HealthHandler struct {
	registry *service.Registry
	store    store.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(registry *service.Registry, st store.Store) *HealthHandler {
	return &HealthHandler{registry: registry, store: st}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]interface{}{
		"status":   status,
		"entities": h.registry.Counts(),
	})
}
