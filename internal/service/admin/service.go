// Package admin holds the operator operations that act on both backends at
// once: reset and seed, mirror sync and the fallback journal.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/adapter/memory"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

type mirror interface {
	store.Backend
	ResetWith(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) (map[domain.Kind]int, error)
	Snapshot(key string) memory.Snapshot
	RestoreWith(ctx context.Context, snap memory.Snapshot, key string, check func(ctx context.Context, b store.Backend) error) error
	FallbackEvents() []domain.FallbackEvent
}

type maintainer interface {
	ApplyTransactionCreate(ctx context.Context, b store.Backend, tx domain.Transaction) error
	RecomputeCategorySpent(ctx context.Context, b store.Backend, categoryID uuid.UUID) error
	RecomputeCustomerTotal(ctx context.Context, b store.Backend, customerID uuid.UUID) error
}

// Service provides the admin operations. durable may be nil.
type Service struct {
	durable     store.Backend
	mirror      mirror
	aggregates  maintainer
	snapshotKey string
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new admin service.
func NewService(log *slog.Logger, durable store.Backend, m mirror, aggregates maintainer, snapshotKey string) *Service {
	return &Service{
		durable:     durable,
		mirror:      m,
		aggregates:  aggregates,
		snapshotKey: snapshotKey,
		now:         time.Now,
		log:         log.With("service", "admin"),
	}
}
