// Package org manages teams and members.
package org

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
)

type auditor interface {
	Record(ctx context.Context, b store.Backend, action domain.AuditAction, kind domain.Kind, id uuid.UUID, before, after any) error
}

// Service provides team and member operations.
type Service struct {
	exec  *selector.Executor
	audit auditor
	log   *slog.Logger
}

// NewService creates a new org service.
func NewService(log *slog.Logger, exec *selector.Executor, audit auditor) *Service {
	return &Service{
		exec:  exec,
		audit: audit,
		log:   log.With("service", "org"),
	}
}
