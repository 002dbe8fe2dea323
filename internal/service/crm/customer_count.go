package crm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// ListCustomerCounts returns count snapshots, most recent first.
func (s *Service) ListCustomerCounts(ctx context.Context, input ListCustomerCountsInput) ([]domain.CustomerCountSnapshot, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	q := store.Query{Limit: input.Limit}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}
	if input.TeamID != nil {
		q = q.And("team_id", *input.TeamID)
	}

	return selector.ReadList(ctx, s.exec, "list customer counts", func(ctx context.Context, b store.Backend) ([]domain.CustomerCountSnapshot, error) {
		return b.CustomerCounts().List(ctx, q)
	})
}

// RecordCustomerCount appends a snapshot to the customer-count series.
// Snapshots are never edited.
func (s *Service) RecordCustomerCount(ctx context.Context, input CreateCustomerCountInput) (domain.CustomerCountSnapshot, error) {
	if err := input.Validate(); err != nil {
		return domain.CustomerCountSnapshot{}, err
	}

	snap := domain.CustomerCountSnapshot{
		NewCount:       input.NewCount,
		DepositCount:   input.DepositCount,
		ExtensionCount: input.ExtensionCount,
		TotalCount:     input.TotalCount,
		TeamID:         input.TeamID,
		Date:           input.Date.UTC(),
	}
	if snap.TotalCount == 0 {
		snap.TotalCount = snap.NewCount + snap.DepositCount + snap.ExtensionCount
	}
	if input.Date.IsZero() {
		snap.Date = time.Now().UTC()
	}

	created, err := selector.Write(ctx, s.exec, "record customer count", func(ctx context.Context, b store.Backend) (domain.CustomerCountSnapshot, error) {
		if err := ensureRefs(ctx, b, snap.TeamID, nil); err != nil {
			return domain.CustomerCountSnapshot{}, err
		}
		created, err := b.CustomerCounts().Create(ctx, snap)
		if err != nil {
			return domain.CustomerCountSnapshot{}, fmt.Errorf("create customer count: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindCustomerCount, created.ID, nil, created); err != nil {
			return domain.CustomerCountSnapshot{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.CustomerCountSnapshot{}, err
	}

	s.log.InfoContext(ctx, "customer count recorded",
		slog.String("snapshot_id", created.ID.String()),
		slog.Int("total", created.TotalCount),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return created, nil
}
