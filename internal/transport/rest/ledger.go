package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/ledger"
)

type ledgerService interface {
	ListCategories(ctx context.Context, flow domain.FlowType) ([]domain.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (domain.Category, error)
	CreateCategory(ctx context.Context, input ledger.CreateCategoryInput) (domain.Category, error)
	UpdateCategory(ctx context.Context, input ledger.UpdateCategoryInput) (domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListTransactions(ctx context.Context, input ledger.ListTransactionsInput) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	CreateTransaction(ctx context.Context, input ledger.CreateTransactionInput) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, input ledger.UpdateTransactionInput) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// LedgerHandler serves categories and transactions.
type LedgerHandler struct {
	svc ledgerService
	log *slog.Logger
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(svc ledgerService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{svc: svc, log: logger.With("handler", "ledger")}
}

// ListCategories handles GET /api/categories?type=.
func (h *LedgerHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context(), domain.FlowType(r.URL.Query().Get("type")))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// GetCategory handles GET /api/categories/{id}.
func (h *LedgerHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	cat, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// CreateCategory handles POST /api/categories. A spent value in the body
// is ignored.
func (h *LedgerHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in ledger.CreateCategoryInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	cat, err := h.svc.CreateCategory(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

// UpdateCategory handles PUT /api/categories/{id}.
func (h *LedgerHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in ledger.UpdateCategoryInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	cat, err := h.svc.UpdateCategory(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// DeleteCategory handles DELETE /api/categories/{id}.
func (h *LedgerHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTransactions handles
// GET /api/transactions?type=&categoryId=&teamId=&memberId=&limit=.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	in := ledger.ListTransactionsInput{
		Type:       domain.FlowType(q.str("type")),
		CategoryID: q.uuid("categoryId"),
		TeamID:     q.uuid("teamId"),
		MemberID:   q.uuid("memberId"),
		Limit:      q.int("limit"),
	}
	if err := q.err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	txs, err := h.svc.ListTransactions(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// GetTransaction handles GET /api/transactions/{id}.
func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	tx, err := h.svc.GetTransaction(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// CreateTransaction handles POST /api/transactions.
func (h *LedgerHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in ledger.CreateTransactionInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	tx, err := h.svc.CreateTransaction(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// UpdateTransaction handles PUT /api/transactions/{id}.
func (h *LedgerHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in ledger.UpdateTransactionInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	tx, err := h.svc.UpdateTransaction(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// DeleteTransaction handles DELETE /api/transactions/{id}.
func (h *LedgerHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
