package ledger

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

// ListTransactions returns transactions matching input, most recent first.
func (s *Service) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	q := store.Query{Limit: input.Limit}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}
	if input.Type != "" {
		q = q.And("type", input.Type)
	}
	if input.CategoryID != nil {
		q = q.And("category_id", *input.CategoryID)
	}
	if input.TeamID != nil {
		q = q.And("team_id", *input.TeamID)
	}
	if input.MemberID != nil {
		q = q.And("member_id", *input.MemberID)
	}

	return selector.ReadList(ctx, s.exec, "list transactions", func(ctx context.Context, b store.Backend) ([]domain.Transaction, error) {
		return b.Transactions().List(ctx, q)
	})
}

// GetTransaction returns a single transaction.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	return selector.Read(ctx, s.exec, "get transaction", func(ctx context.Context, b store.Backend) (domain.Transaction, error) {
		return b.Transactions().Get(ctx, id)
	})
}

// CreateTransaction books a transaction and adds expenses to the spent of
// their category within the same operation.
func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	tx := domain.Transaction{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        date.UTC(),
		CategoryID:  input.CategoryID,
		TeamID:      input.TeamID,
		MemberID:    input.MemberID,
	}

	created, err := selector.Write(ctx, s.exec, "create transaction", func(ctx context.Context, b store.Backend) (domain.Transaction, error) {
		if err := ensureCategory(ctx, b, tx.CategoryID); err != nil {
			return domain.Transaction{}, err
		}
		if err := ensureRefs(ctx, b, tx.TeamID, tx.MemberID); err != nil {
			return domain.Transaction{}, err
		}

		created, err := b.Transactions().Create(ctx, tx)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
		}
		if err := s.aggregates.ApplyTransactionCreate(ctx, b, created); err != nil {
			return domain.Transaction{}, err
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindTransaction, created.ID, nil, created); err != nil {
			return domain.Transaction{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	s.log.InfoContext(ctx, "transaction created",
		slog.String("transaction_id", created.ID.String()),
		slog.String("type", created.Type.String()),
		slog.Int64("amount", created.Amount),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return created, nil
}

// UpdateTransaction edits a transaction and moves its amount between
// category totals as needed.
func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	updated, err := selector.Write(ctx, s.exec, "update transaction", func(ctx context.Context, b store.Backend) (domain.Transaction, error) {
		if input.CategoryID != nil {
			if err := ensureCategory(ctx, b, *input.CategoryID); err != nil {
				return domain.Transaction{}, err
			}
		}
		if err := ensureRefs(ctx, b, input.TeamID, input.MemberID); err != nil {
			return domain.Transaction{}, err
		}

		var before domain.Transaction
		updated, err := b.Transactions().Update(ctx, input.ID, func(t *domain.Transaction) error {
			before = *t
			input.apply(t)
			return nil
		})
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("update transaction: %w", err)
		}
		if err := s.aggregates.ApplyTransactionUpdate(ctx, b, before, updated); err != nil {
			return domain.Transaction{}, err
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindTransaction, updated.ID, before, updated); err != nil {
			return domain.Transaction{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	s.log.InfoContext(ctx, "transaction updated",
		slog.String("transaction_id", updated.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return updated, nil
}

// DeleteTransaction removes a transaction and takes expenses back out of
// their category's spent.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	_, err := selector.Write(ctx, s.exec, "delete transaction", func(ctx context.Context, b store.Backend) (struct{}, error) {
		removed, err := b.Transactions().Delete(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete transaction: %w", err)
		}
		if err := s.aggregates.ApplyTransactionDelete(ctx, b, removed); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindTransaction, id, removed, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "transaction deleted",
		slog.String("transaction_id", id.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return nil
}

// ensureCategory checks that the category exists whatever the aggregate
// policy.
func ensureCategory(ctx context.Context, b store.Backend, id uuid.UUID) error {
	if _, err := b.Categories().Get(ctx, id); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	return nil
}
