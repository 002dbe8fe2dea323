// Package ledger manages categories and the income and expense transactions
// booked against them.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
)

type auditor interface {
	Record(ctx context.Context, b store.Backend, action domain.AuditAction, kind domain.Kind, id uuid.UUID, before, after any) error
}

// maintainer keeps category spent in step with expense transactions.
type maintainer interface {
	ApplyTransactionCreate(ctx context.Context, b store.Backend, tx domain.Transaction) error
	ApplyTransactionUpdate(ctx context.Context, b store.Backend, old, next domain.Transaction) error
	ApplyTransactionDelete(ctx context.Context, b store.Backend, tx domain.Transaction) error
}

// Service provides category and transaction operations.
type Service struct {
	exec       *selector.Executor
	audit      auditor
	aggregates maintainer
	log        *slog.Logger
}

// NewService creates a new ledger service.
func NewService(log *slog.Logger, exec *selector.Executor, audit auditor, aggregates maintainer) *Service {
	return &Service{
		exec:       exec,
		audit:      audit,
		aggregates: aggregates,
		log:        log.With("service", "ledger"),
	}
}

// ensureRefs checks the optional team and member references of a
// transaction against b.
func ensureRefs(ctx context.Context, b store.Backend, teamID, memberID *uuid.UUID) error {
	if teamID != nil {
		if _, err := b.Teams().Get(ctx, *teamID); err != nil {
			return fmt.Errorf("team: %w", err)
		}
	}
	if memberID != nil {
		if _, err := b.Members().Get(ctx, *memberID); err != nil {
			return fmt.Errorf("member: %w", err)
		}
	}
	return nil
}
