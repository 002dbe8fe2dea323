// Package payroll manages member compensation: salaries, bonuses and
// commissions.
package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
)

type auditor interface {
	Record(ctx context.Context, b store.Backend, action domain.AuditAction, kind domain.Kind, id uuid.UUID, before, after any) error
}

// Service provides compensation operations.
type Service struct {
	exec  *selector.Executor
	audit auditor
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new payroll service.
func NewService(log *slog.Logger, exec *selector.Executor, audit auditor) *Service {
	return &Service{
		exec:  exec,
		audit: audit,
		now:   time.Now,
		log:   log.With("service", "payroll"),
	}
}

func ensureMember(ctx context.Context, b store.Backend, id uuid.UUID) error {
	if _, err := b.Members().Get(ctx, id); err != nil {
		return fmt.Errorf("member: %w", err)
	}
	return nil
}

func ensureCustomer(ctx context.Context, b store.Backend, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := b.Customers().Get(ctx, *id); err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	return nil
}

// ListInput filters any compensation list. Month and Year only apply to
// salaries.
type ListInput struct {
	MemberID *uuid.UUID
	Status   domain.PayStatus
	Month    int
	Year     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be pending or paid"})
	}
	if i.Month < 0 || i.Month > 12 {
		errs = append(errs, domain.FieldError{Field: "month", Message: "must be between 1 and 12"})
	}
	if i.Year < 0 {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must not be negative"})
	}
	return asValidation(errs)
}

func (i ListInput) query() store.Query {
	q := store.Query{}
	if i.MemberID != nil {
		q = q.And("member_id", *i.MemberID)
	}
	if i.Status != "" {
		q = q.And("status", i.Status)
	}
	return q
}
