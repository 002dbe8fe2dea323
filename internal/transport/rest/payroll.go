package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/payroll"
)

type payrollService interface {
	ListSalaries(ctx context.Context, input payroll.ListInput) ([]domain.Salary, error)
	GetSalary(ctx context.Context, id uuid.UUID) (domain.Salary, error)
	CreateSalary(ctx context.Context, input payroll.CreateSalaryInput) (domain.Salary, error)
	UpdateSalary(ctx context.Context, input payroll.UpdateSalaryInput) (domain.Salary, error)
	DeleteSalary(ctx context.Context, id uuid.UUID) error

	ListBonuses(ctx context.Context, input payroll.ListInput) ([]domain.Bonus, error)
	GetBonus(ctx context.Context, id uuid.UUID) (domain.Bonus, error)
	CreateBonus(ctx context.Context, input payroll.CreateBonusInput) (domain.Bonus, error)
	UpdateBonus(ctx context.Context, input payroll.UpdateBonusInput) (domain.Bonus, error)
	DeleteBonus(ctx context.Context, id uuid.UUID) error

	ListCommissions(ctx context.Context, input payroll.ListInput) ([]domain.Commission, error)
	GetCommission(ctx context.Context, id uuid.UUID) (domain.Commission, error)
	CreateCommission(ctx context.Context, input payroll.CreateCommissionInput) (domain.Commission, error)
	UpdateCommission(ctx context.Context, input payroll.UpdateCommissionInput) (domain.Commission, error)
	DeleteCommission(ctx context.Context, id uuid.UUID) error
}

// PayrollHandler serves salaries, bonuses and commissions.
type PayrollHandler struct {
	svc payrollService
	log *slog.Logger
}

// NewPayrollHandler creates a PayrollHandler.
func NewPayrollHandler(svc payrollService, logger *slog.Logger) *PayrollHandler {
	return &PayrollHandler{svc: svc, log: logger.With("handler", "payroll")}
}

// listInput reads ?memberId=&status=&month=&year=.
func listInput(r *http.Request) (payroll.ListInput, error) {
	q := newQueryParams(r)
	in := payroll.ListInput{
		MemberID: q.uuid("memberId"),
		Status:   domain.PayStatus(q.str("status")),
		Month:    q.int("month"),
		Year:     q.int("year"),
	}
	return in, q.err()
}

// ListSalaries handles GET /api/salaries.
func (h *PayrollHandler) ListSalaries(w http.ResponseWriter, r *http.Request) {
	in, err := listInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items, err := h.svc.ListSalaries(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetSalary handles GET /api/salaries/{id}.
func (h *PayrollHandler) GetSalary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	item, err := h.svc.GetSalary(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateSalary handles POST /api/salaries.
func (h *PayrollHandler) CreateSalary(w http.ResponseWriter, r *http.Request) {
	var in payroll.CreateSalaryInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	item, err := h.svc.CreateSalary(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateSalary handles PUT /api/salaries/{id}.
func (h *PayrollHandler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in payroll.UpdateSalaryInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	item, err := h.svc.UpdateSalary(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteSalary handles DELETE /api/salaries/{id}.
func (h *PayrollHandler) DeleteSalary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteSalary(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBonuses handles GET /api/bonuses.
func (h *PayrollHandler) ListBonuses(w http.ResponseWriter, r *http.Request) {
	in, err := listInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items, err := h.svc.ListBonuses(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetBonus handles GET /api/bonuses/{id}.
func (h *PayrollHandler) GetBonus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	item, err := h.svc.GetBonus(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateBonus handles POST /api/bonuses.
func (h *PayrollHandler) CreateBonus(w http.ResponseWriter, r *http.Request) {
	var in payroll.CreateBonusInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	item, err := h.svc.CreateBonus(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateBonus handles PUT /api/bonuses/{id}.
func (h *PayrollHandler) UpdateBonus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in payroll.UpdateBonusInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	item, err := h.svc.UpdateBonus(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteBonus handles DELETE /api/bonuses/{id}.
func (h *PayrollHandler) DeleteBonus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteBonus(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCommissions handles GET /api/commissions.
func (h *PayrollHandler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	in, err := listInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items, err := h.svc.ListCommissions(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetCommission handles GET /api/commissions/{id}.
func (h *PayrollHandler) GetCommission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	item, err := h.svc.GetCommission(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateCommission handles POST /api/commissions.
func (h *PayrollHandler) CreateCommission(w http.ResponseWriter, r *http.Request) {
	var in payroll.CreateCommissionInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	item, err := h.svc.CreateCommission(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateCommission handles PUT /api/commissions/{id}.
func (h *PayrollHandler) UpdateCommission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in payroll.UpdateCommissionInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	item, err := h.svc.UpdateCommission(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteCommission handles DELETE /api/commissions/{id}.
func (h *PayrollHandler) DeleteCommission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteCommission(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
