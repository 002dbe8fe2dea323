// Package crm manages customers, their account movements and the
// customer-count time series.
package crm

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

type maintainer interface {
	RecomputeCustomerTotal(ctx context.Context, b store.Backend, customerID uuid.UUID) error
}

// Service provides customer operations.
type Service struct {
	exec       *selector.Executor
	audit      auditor
	aggregates maintainer
	log        *slog.Logger
}

// NewService creates a new crm service.
func NewService(log *slog.Logger, exec *selector.Executor, audit auditor, aggregates maintainer) *Service {
	return &Service{
		exec:       exec,
		audit:      audit,
		aggregates: aggregates,
		log:        log.With("service", "crm"),
	}
}

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
