package handler

import (
	"log/slog"
	"net/http"

	"github.com/taskreg/api/internal/service"
)

// ExportHandler handles report export endpoints
type ExportHandler struct {
	registry *service.Registry
}

// NewExportHandler creates a new export handler
func NewExportHandler(registry *service.Registry) *ExportHandler {
	return &ExportHandler{registry: registry}
}

// ExportTasksCSV handles GET /v1/export/tasks.csv
func (h *ExportHandler) ExportTasksCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="tasks.csv"`)

	if err := h.registry.ExportTasksCSV(w); err != nil {
		// Rows may already be on the wire, so a problem+json body is not an
		// option here.
		slog.Error("csv export failed", slog.String("error", err.Error()))
	}
}
