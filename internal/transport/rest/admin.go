package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/adapter/memory"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/admin"
)

type adminService interface {
	Reset(ctx context.Context, in admin.ResetInput) (admin.ResetReport, error)
	Export(ctx context.Context) memory.Snapshot
	Import(ctx context.Context, snap memory.Snapshot) (map[domain.Kind]int, error)
	Fallbacks(ctx context.Context) []domain.FallbackEvent
}

// AdminHandler serves the operator endpoints.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

// Reset handles POST /api/reset. A reset that failed on either backend
// answers 207 with the full report.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var in admin.ResetInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	report, err := h.svc.Reset(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if report.Failed() {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, report)
}

// Export handles GET /api/sync.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Export(r.Context()))
}

type importResponse struct {
	Counts map[domain.Kind]int `json:"counts"`
}

// Import handles PUT /api/sync. The body is a snapshot as returned by
// Export.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snap memory.Snapshot
	if err := decode(w, r, &snap); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	counts, err := h.svc.Import(r.Context(), snap)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Counts: counts})
}

// Fallbacks handles GET /api/admin/fallbacks.
func (h *AdminHandler) Fallbacks(w http.ResponseWriter, r *http.Request) {
	events := h.svc.Fallbacks(r.Context())
	if events == nil {
		events = []domain.FallbackEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
