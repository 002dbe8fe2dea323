package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/crm"
)

type crmService interface {
	ListCustomers(ctx context.Context, input crm.ListCustomersInput) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	CreateCustomer(ctx context.Context, input crm.CreateCustomerInput) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, input crm.UpdateCustomerInput) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) (crm.CustomerDeletion, error)

	ListCustomerTransactions(ctx context.Context, customerID uuid.UUID) ([]domain.CustomerTransaction, error)
	CreateCustomerTransaction(ctx context.Context, input crm.CreateCustomerTransactionInput) (domain.CustomerTransaction, error)
	UpdateCustomerTransaction(ctx context.Context, input crm.UpdateCustomerTransactionInput) (domain.CustomerTransaction, error)
	DeleteCustomerTransaction(ctx context.Context, customerID, id uuid.UUID) error

	ListCustomerCounts(ctx context.Context, input crm.ListCustomerCountsInput) ([]domain.CustomerCountSnapshot, error)
	RecordCustomerCount(ctx context.Context, input crm.CreateCustomerCountInput) (domain.CustomerCountSnapshot, error)
}

// CRMHandler serves customers, their transactions and the customer-count
// series.
type CRMHandler struct {
	svc crmService
	log *slog.Logger
}

// NewCRMHandler creates a CRMHandler.
func NewCRMHandler(svc crmService, logger *slog.Logger) *CRMHandler {
	return &CRMHandler{svc: svc, log: logger.With("handler", "crm")}
}

// ListCustomers handles GET /api/customers?type=&status=&teamId=&memberId=.
func (h *CRMHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	in := crm.ListCustomersInput{
		Type:     domain.CustomerType(q.str("type")),
		Status:   domain.CustomerStatus(q.str("status")),
		TeamID:   q.uuid("teamId"),
		MemberID: q.uuid("memberId"),
	}
	if err := q.err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	customers, err := h.svc.ListCustomers(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// GetCustomer handles GET /api/customers/{id}.
func (h *CRMHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCustomer handles POST /api/customers. The total amount is always
// derived.
func (h *CRMHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateCustomerInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.CreateCustomer(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCustomer handles PUT /api/customers/{id}.
func (h *CRMHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in crm.UpdateCustomerInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	c, err := h.svc.UpdateCustomer(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCustomer handles DELETE /api/customers/{id}.
func (h *CRMHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	deleted, err := h.svc.DeleteCustomer(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

// ListCustomerTransactions handles GET /api/customers/{id}/transactions.
func (h *CRMHandler) ListCustomerTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	txs, err := h.svc.ListCustomerTransactions(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// CreateCustomerTransaction handles POST /api/customers/{id}/transactions.
func (h *CRMHandler) CreateCustomerTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in crm.CreateCustomerTransactionInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.CustomerID = id
	tx, err := h.svc.CreateCustomerTransaction(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// UpdateCustomerTransaction handles
// PUT /api/customers/{id}/transactions/{txId}.
func (h *CRMHandler) UpdateCustomerTransaction(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	txID, err := pathID(r, "txId")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in crm.UpdateCustomerTransactionInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.CustomerID, in.ID = customerID, txID
	tx, err := h.svc.UpdateCustomerTransaction(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// DeleteCustomerTransaction handles
// DELETE /api/customers/{id}/transactions/{txId}.
func (h *CRMHandler) DeleteCustomerTransaction(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	txID, err := pathID(r, "txId")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteCustomerTransaction(r.Context(), customerID, txID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCustomerCounts handles GET /api/customer-counts?teamId=&limit=.
func (h *CRMHandler) ListCustomerCounts(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	in := crm.ListCustomerCountsInput{
		TeamID: q.uuid("teamId"),
		Limit:  q.int("limit"),
	}
	if err := q.err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	counts, err := h.svc.ListCustomerCounts(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// RecordCustomerCount handles POST /api/customer-counts.
func (h *CRMHandler) RecordCustomerCount(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateCustomerCountInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	snap, err := h.svc.RecordCustomerCount(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}
