// Package audit records and lists the append-only audit trail.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Service provides audit trail operations.
type Service struct {
	exec *selector.Executor
	log  *slog.Logger
}

// NewService creates a new audit service.
func NewService(log *slog.Logger, exec *selector.Executor) *Service {
	return &Service{
		exec: exec,
		log:  log.With("service", "audit"),
	}
}

// Record appends an audit entry through b, so that it lands in the same
// backend and the same logical operation as the change it describes.
// before and after are stored as JSON; nil is stored as an empty string.
func (s *Service) Record(ctx context.Context, b store.Backend, action domain.AuditAction, kind domain.Kind, id uuid.UUID, before, after any) error {
	oldValue, err := encode(before)
	if err != nil {
		return fmt.Errorf("encode old value: %w", err)
	}
	newValue, err := encode(after)
	if err != nil {
		return fmt.Errorf("encode new value: %w", err)
	}

	entry := domain.AuditLog{
		Action:     action,
		Resource:   kind,
		ResourceID: id,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		entry.UserID = &userID
	}
	entry.IPAddress, entry.UserAgent = ctxutil.ClientFromCtx(ctx)

	if _, err := b.AuditLogs().Create(ctx, entry); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

func encode(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ListInput filters the audit trail.
type ListInput struct {
	Resource   domain.Kind
	ResourceID uuid.UUID
	Action     domain.AuditAction
	Limit      int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Action != "" && !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "must be CREATE, UPDATE or DELETE"})
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxListLimit)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// List returns audit entries, most recent first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	q := store.Query{Limit: input.Limit}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}
	if input.Resource != "" {
		q = q.And("resource", input.Resource)
	}
	if input.ResourceID != uuid.Nil {
		q = q.And("resource_id", input.ResourceID)
	}
	if input.Action != "" {
		q = q.And("action", input.Action)
	}

	return selector.ReadList(ctx, s.exec, "list audit logs", func(ctx context.Context, b store.Backend) ([]domain.AuditLog, error) {
		return b.AuditLogs().List(ctx, q)
	})
}
