package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// ListBonuses returns bonuses matching input, most recent first.
func (s *Service) ListBonuses(ctx context.Context, input ListInput) ([]domain.Bonus, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	q := input.query()
	return selector.ReadList(ctx, s.exec, "list bonuses", func(ctx context.Context, b store.Backend) ([]domain.Bonus, error) {
		return b.Bonuses().List(ctx, q)
	})
}

// GetBonus returns a single bonus.
func (s *Service) GetBonus(ctx context.Context, id uuid.UUID) (domain.Bonus, error) {
	return selector.Read(ctx, s.exec, "get bonus", func(ctx context.Context, b store.Backend) (domain.Bonus, error) {
		return b.Bonuses().Get(ctx, id)
	})
}

// CreateBonus records a bonus.
func (s *Service) CreateBonus(ctx context.Context, input CreateBonusInput) (domain.Bonus, error) {
	if err := input.Validate(); err != nil {
		return domain.Bonus{}, err
	}

	bonus := domain.Bonus{
		MemberID: input.MemberID,
		Amount:   input.Amount,
		Reason:   strings.TrimSpace(input.Reason),
		Date:     input.Date.UTC(),
		Status:   input.Status,
	}
	if input.Date.IsZero() {
		bonus.Date = s.now().UTC()
	}
	if bonus.Status == "" {
		bonus.Status = domain.PayStatusPending
	}

	created, err := selector.Write(ctx, s.exec, "create bonus", func(ctx context.Context, b store.Backend) (domain.Bonus, error) {
		if err := ensureMember(ctx, b, bonus.MemberID); err != nil {
			return domain.Bonus{}, err
		}
		created, err := b.Bonuses().Create(ctx, bonus)
		if err != nil {
			return domain.Bonus{}, fmt.Errorf("create bonus: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindBonus, created.ID, nil, created); err != nil {
			return domain.Bonus{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Bonus{}, err
	}

	s.log.InfoContext(ctx, "bonus created",
		slog.String("bonus_id", created.ID.String()),
		slog.String("member_id", created.MemberID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return created, nil
}

// UpdateBonus applies a partial update to a bonus.
func (s *Service) UpdateBonus(ctx context.Context, input UpdateBonusInput) (domain.Bonus, error) {
	if err := input.Validate(); err != nil {
		return domain.Bonus{}, err
	}

	updated, err := selector.Write(ctx, s.exec, "update bonus", func(ctx context.Context, b store.Backend) (domain.Bonus, error) {
		var before domain.Bonus
		updated, err := b.Bonuses().Update(ctx, input.ID, func(bonus *domain.Bonus) error {
			before = *bonus
			input.apply(bonus)
			return nil
		})
		if err != nil {
			return domain.Bonus{}, fmt.Errorf("update bonus: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindBonus, updated.ID, before, updated); err != nil {
			return domain.Bonus{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Bonus{}, err
	}

	s.log.InfoContext(ctx, "bonus updated",
		slog.String("bonus_id", updated.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return updated, nil
}

// DeleteBonus deletes a bonus.
func (s *Service) DeleteBonus(ctx context.Context, id uuid.UUID) error {
	_, err := selector.Write(ctx, s.exec, "delete bonus", func(ctx context.Context, b store.Backend) (struct{}, error) {
		removed, err := b.Bonuses().Delete(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete bonus: %w", err)
		}
		return struct{}{}, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindBonus, id, removed, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "bonus deleted",
		slog.String("bonus_id", id.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return nil
}
