package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/audit"
)

type auditService interface {
	List(ctx context.Context, input audit.ListInput) ([]domain.AuditLog, error)
}

type dashboardService interface {
	Get(ctx context.Context) (domain.Dashboard, error)
}

// ReportHandler serves the read-only views: the audit trail and the
// dashboard.
type ReportHandler struct {
	audit     auditService
	dashboard dashboardService
	log       *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(audit auditService, dashboard dashboardService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		audit:     audit,
		dashboard: dashboard,
		log:       logger.With("handler", "report"),
	}
}

// AuditLogs handles GET /api/audit-logs?resource=&resourceId=&action=&limit=.
func (h *ReportHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	in := audit.ListInput{
		Resource: domain.Kind(q.str("resource")),
		Action:   domain.AuditAction(q.str("action")),
		Limit:    q.int("limit"),
	}
	if id := q.uuid("resourceId"); id != nil {
		in.ResourceID = *id
	}
	if err := q.err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	logs, err := h.audit.List(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// Dashboard handles GET /api/dashboard.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Get(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
