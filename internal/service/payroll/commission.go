package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// ListCommissions returns commissions matching input, most recent first.
func (s *Service) ListCommissions(ctx context.Context, input ListInput) ([]domain.Commission, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	q := input.query()
	return selector.ReadList(ctx, s.exec, "list commissions", func(ctx context.Context, b store.Backend) ([]domain.Commission, error) {
		return b.Commissions().List(ctx, q)
	})
}

// GetCommission returns a single commission.
func (s *Service) GetCommission(ctx context.Context, id uuid.UUID) (domain.Commission, error) {
	return selector.Read(ctx, s.exec, "get commission", func(ctx context.Context, b store.Backend) (domain.Commission, error) {
		return b.Commissions().Get(ctx, id)
	})
}

// CreateCommission records a commission, deriving the amount from the sale
// when it is not given.
func (s *Service) CreateCommission(ctx context.Context, input CreateCommissionInput) (domain.Commission, error) {
	if err := input.Validate(); err != nil {
		return domain.Commission{}, err
	}

	com := domain.Commission{
		MemberID:    input.MemberID,
		CustomerID:  input.CustomerID,
		Percentage:  input.Percentage,
		SalesAmount: input.SalesAmount,
		Date:        input.Date.UTC(),
		Status:      input.Status,
	}
	if input.Amount != nil {
		com.Amount = *input.Amount
	} else {
		com.Amount = domain.CommissionAmount(input.SalesAmount, input.Percentage)
	}
	if input.Date.IsZero() {
		com.Date = s.now().UTC()
	}
	if com.Status == "" {
		com.Status = domain.PayStatusPending
	}

	created, err := selector.Write(ctx, s.exec, "create commission", func(ctx context.Context, b store.Backend) (domain.Commission, error) {
		if err := ensureMember(ctx, b, com.MemberID); err != nil {
			return domain.Commission{}, err
		}
		if err := ensureCustomer(ctx, b, com.CustomerID); err != nil {
			return domain.Commission{}, err
		}
		created, err := b.Commissions().Create(ctx, com)
		if err != nil {
			return domain.Commission{}, fmt.Errorf("create commission: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindCommission, created.ID, nil, created); err != nil {
			return domain.Commission{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Commission{}, err
	}

	s.log.InfoContext(ctx, "commission created",
		slog.String("commission_id", created.ID.String()),
		slog.String("member_id", created.MemberID.String()),
		slog.String("amount", created.Amount.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return created, nil
}

// UpdateCommission applies a partial update to a commission.
func (s *Service) UpdateCommission(ctx context.Context, input UpdateCommissionInput) (domain.Commission, error) {
	if err := input.Validate(); err != nil {
		return domain.Commission{}, err
	}

	updated, err := selector.Write(ctx, s.exec, "update commission", func(ctx context.Context, b store.Backend) (domain.Commission, error) {
		if err := ensureCustomer(ctx, b, input.CustomerID); err != nil {
			return domain.Commission{}, err
		}
		var before domain.Commission
		updated, err := b.Commissions().Update(ctx, input.ID, func(c *domain.Commission) error {
			before = *c
			input.apply(c)
			return nil
		})
		if err != nil {
			return domain.Commission{}, fmt.Errorf("update commission: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindCommission, updated.ID, before, updated); err != nil {
			return domain.Commission{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Commission{}, err
	}

	s.log.InfoContext(ctx, "commission updated",
		slog.String("commission_id", updated.ID.String()),
		slog.String("amount", updated.Amount.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return updated, nil
}

// DeleteCommission deletes a commission.
func (s *Service) DeleteCommission(ctx context.Context, id uuid.UUID) error {
	_, err := selector.Write(ctx, s.exec, "delete commission", func(ctx context.Context, b store.Backend) (struct{}, error) {
		removed, err := b.Commissions().Delete(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete commission: %w", err)
		}
		return struct{}{}, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindCommission, id, removed, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "commission deleted",
		slog.String("commission_id", id.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return nil
}
