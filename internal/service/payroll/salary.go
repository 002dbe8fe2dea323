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

// ListSalaries returns salaries matching input, most recent first.
func (s *Service) ListSalaries(ctx context.Context, input ListInput) ([]domain.Salary, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	q := input.query()
	if input.Month != 0 {
		q = q.And("month", input.Month)
	}
	if input.Year != 0 {
		q = q.And("year", input.Year)
	}
	return selector.ReadList(ctx, s.exec, "list salaries", func(ctx context.Context, b store.Backend) ([]domain.Salary, error) {
		return b.Salaries().List(ctx, q)
	})
}

// GetSalary returns a single salary.
func (s *Service) GetSalary(ctx context.Context, id uuid.UUID) (domain.Salary, error) {
	return selector.Read(ctx, s.exec, "get salary", func(ctx context.Context, b store.Backend) (domain.Salary, error) {
		return b.Salaries().Get(ctx, id)
	})
}

// CreateSalary records a monthly salary. A paid salary without PaidAt is
// stamped with the current time.
func (s *Service) CreateSalary(ctx context.Context, input CreateSalaryInput) (domain.Salary, error) {
	if err := input.Validate(); err != nil {
		return domain.Salary{}, err
	}

	sal := domain.Salary{
		MemberID: input.MemberID,
		Amount:   input.Amount,
		Month:    input.Month,
		Year:     input.Year,
		Status:   input.Status,
		PaidAt:   input.PaidAt,
	}
	if sal.Status == "" {
		sal.Status = domain.PayStatusPending
	}
	s.settlePaidAt(&sal)

	created, err := selector.Write(ctx, s.exec, "create salary", func(ctx context.Context, b store.Backend) (domain.Salary, error) {
		if err := ensureMember(ctx, b, sal.MemberID); err != nil {
			return domain.Salary{}, err
		}
		created, err := b.Salaries().Create(ctx, sal)
		if err != nil {
			return domain.Salary{}, fmt.Errorf("create salary: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindSalary, created.ID, nil, created); err != nil {
			return domain.Salary{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Salary{}, err
	}

	s.log.InfoContext(ctx, "salary created",
		slog.String("salary_id", created.ID.String()),
		slog.String("member_id", created.MemberID.String()),
		slog.String("status", created.Status.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return created, nil
}

// UpdateSalary applies a partial update to a salary.
func (s *Service) UpdateSalary(ctx context.Context, input UpdateSalaryInput) (domain.Salary, error) {
	if err := input.Validate(); err != nil {
		return domain.Salary{}, err
	}

	updated, err := selector.Write(ctx, s.exec, "update salary", func(ctx context.Context, b store.Backend) (domain.Salary, error) {
		var before domain.Salary
		updated, err := b.Salaries().Update(ctx, input.ID, func(sal *domain.Salary) error {
			before = *sal
			if input.Amount != nil {
				sal.Amount = *input.Amount
			}
			if input.Month != nil {
				sal.Month = *input.Month
			}
			if input.Year != nil {
				sal.Year = *input.Year
			}
			if input.Status != nil {
				sal.Status = *input.Status
			}
			if input.PaidAt != nil {
				paidAt := input.PaidAt.UTC()
				sal.PaidAt = &paidAt
			}
			s.settlePaidAt(sal)
			return nil
		})
		if err != nil {
			return domain.Salary{}, fmt.Errorf("update salary: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindSalary, updated.ID, before, updated); err != nil {
			return domain.Salary{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Salary{}, err
	}

	s.log.InfoContext(ctx, "salary updated",
		slog.String("salary_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return updated, nil
}

// DeleteSalary deletes a salary.
func (s *Service) DeleteSalary(ctx context.Context, id uuid.UUID) error {
	_, err := selector.Write(ctx, s.exec, "delete salary", func(ctx context.Context, b store.Backend) (struct{}, error) {
		removed, err := b.Salaries().Delete(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete salary: %w", err)
		}
		return struct{}{}, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindSalary, id, removed, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "salary deleted",
		slog.String("salary_id", id.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return nil
}

// settlePaidAt keeps PaidAt in line with Status: paid salaries carry a
// payment time, pending ones carry none.
func (s *Service) settlePaidAt(sal *domain.Salary) {
	switch sal.Status {
	case domain.PayStatusPaid:
		if sal.PaidAt == nil {
			now := s.now().UTC()
			sal.PaidAt = &now
		}
	default:
		sal.PaidAt = nil
	}
}
