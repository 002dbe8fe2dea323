package crm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// ListCustomerTransactions returns the movements of one customer, most
// recent first.
func (s *Service) ListCustomerTransactions(ctx context.Context, customerID uuid.UUID) ([]domain.CustomerTransaction, error) {
	return selector.ReadList(ctx, s.exec, "list customer transactions", func(ctx context.Context, b store.Backend) ([]domain.CustomerTransaction, error) {
		if _, err := b.Customers().Get(ctx, customerID); err != nil {
			return nil, err
		}
		return b.CustomerTransactions().List(ctx, store.Where("customer_id", customerID))
	})
}

// CreateCustomerTransaction books a movement and re-derives the customer's
// total in the same operation.
func (s *Service) CreateCustomerTransaction(ctx context.Context, input CreateCustomerTransactionInput) (domain.CustomerTransaction, error) {
	if err := input.Validate(); err != nil {
		return domain.CustomerTransaction{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx, err := selector.Write(ctx, s.exec, "create customer transaction", func(ctx context.Context, b store.Backend) (domain.CustomerTransaction, error) {
		if _, err := b.Customers().Get(ctx, input.CustomerID); err != nil {
			return domain.CustomerTransaction{}, err
		}
		created, err := b.CustomerTransactions().Create(ctx, domain.CustomerTransaction{
			CustomerID:  input.CustomerID,
			Amount:      input.Amount,
			Type:        input.Type,
			Description: strings.TrimSpace(input.Description),
			Date:        date.UTC(),
		})
		if err != nil {
			return domain.CustomerTransaction{}, fmt.Errorf("create customer transaction: %w", err)
		}
		if err := s.aggregates.RecomputeCustomerTotal(ctx, b, input.CustomerID); err != nil {
			return domain.CustomerTransaction{}, err
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindCustomerTransaction, created.ID, nil, created); err != nil {
			return domain.CustomerTransaction{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.CustomerTransaction{}, err
	}

	s.log.InfoContext(ctx, "customer transaction created",
		slog.String("customer_id", tx.CustomerID.String()),
		slog.String("transaction_id", tx.ID.String()),
		slog.String("type", tx.Type.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return tx, nil
}

// UpdateCustomerTransaction edits a movement of the given customer.
func (s *Service) UpdateCustomerTransaction(ctx context.Context, input UpdateCustomerTransactionInput) (domain.CustomerTransaction, error) {
	if err := input.Validate(); err != nil {
		return domain.CustomerTransaction{}, err
	}

	tx, err := selector.Write(ctx, s.exec, "update customer transaction", func(ctx context.Context, b store.Backend) (domain.CustomerTransaction, error) {
		if err := ownedBy(ctx, b, input.CustomerID, input.ID); err != nil {
			return domain.CustomerTransaction{}, err
		}
		var before domain.CustomerTransaction
		updated, err := b.CustomerTransactions().Update(ctx, input.ID, func(t *domain.CustomerTransaction) error {
			before = *t
			input.apply(t)
			return nil
		})
		if err != nil {
			return domain.CustomerTransaction{}, fmt.Errorf("update customer transaction: %w", err)
		}
		if err := s.aggregates.RecomputeCustomerTotal(ctx, b, input.CustomerID); err != nil {
			return domain.CustomerTransaction{}, err
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindCustomerTransaction, updated.ID, before, updated); err != nil {
			return domain.CustomerTransaction{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.CustomerTransaction{}, err
	}

	s.log.InfoContext(ctx, "customer transaction updated",
		slog.String("customer_id", tx.CustomerID.String()),
		slog.String("transaction_id", tx.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return tx, nil
}

// DeleteCustomerTransaction removes a movement of the given customer.
func (s *Service) DeleteCustomerTransaction(ctx context.Context, customerID, id uuid.UUID) error {
	_, err := selector.Write(ctx, s.exec, "delete customer transaction", func(ctx context.Context, b store.Backend) (struct{}, error) {
		if err := ownedBy(ctx, b, customerID, id); err != nil {
			return struct{}{}, err
		}
		removed, err := b.CustomerTransactions().Delete(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete customer transaction: %w", err)
		}
		if err := s.aggregates.RecomputeCustomerTotal(ctx, b, customerID); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindCustomerTransaction, id, removed, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "customer transaction deleted",
		slog.String("customer_id", customerID.String()),
		slog.String("transaction_id", id.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return nil
}

// ownedBy checks that transaction id belongs to customerID. A transaction
// of another customer is reported as not found.
func ownedBy(ctx context.Context, b store.Backend, customerID, id uuid.UUID) error {
	tx, err := b.CustomerTransactions().Get(ctx, id)
	if err != nil {
		return err
	}
	if tx.CustomerID != customerID {
		return domain.NotFoundError(string(domain.KindCustomerTransaction), id)
	}
	return nil
}
