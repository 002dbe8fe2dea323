// Package dashboard computes read-only summary views over one consistent
// snapshot of the store.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// Service provides the dashboard view.
type Service struct {
	exec *selector.Executor
	now  func() time.Time
	log  *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(log *slog.Logger, exec *selector.Executor) *Service {
	return &Service{
		exec: exec,
		now:  time.Now,
		log:  log.With("service", "dashboard"),
	}
}

// Get loads a snapshot from the backend chosen by the executor and reduces
// it. A collection that cannot be read for a reason other than backend
// availability is treated as empty and reported as a warning.
func (s *Service) Get(ctx context.Context) (domain.Dashboard, error) {
	snap, err := selector.Read(ctx, s.exec, "dashboard", s.load)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return Build(snap, s.now()), nil
}

func (s *Service) load(ctx context.Context, b store.Backend) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Teams, err = collect(ctx, s.log, domain.KindTeam, b.Teams()); err != nil {
		return Snapshot{}, err
	}
	if snap.Members, err = collect(ctx, s.log, domain.KindMember, b.Members()); err != nil {
		return Snapshot{}, err
	}
	if snap.Categories, err = collect(ctx, s.log, domain.KindCategory, b.Categories()); err != nil {
		return Snapshot{}, err
	}
	if snap.Transactions, err = collect(ctx, s.log, domain.KindTransaction, b.Transactions()); err != nil {
		return Snapshot{}, err
	}
	if snap.Customers, err = collect(ctx, s.log, domain.KindCustomer, b.Customers()); err != nil {
		return Snapshot{}, err
	}
	if snap.CustomerTransactions, err = collect(ctx, s.log, domain.KindCustomerTransaction, b.CustomerTransactions()); err != nil {
		return Snapshot{}, err
	}
	if snap.Salaries, err = collect(ctx, s.log, domain.KindSalary, b.Salaries()); err != nil {
		return Snapshot{}, err
	}
	if snap.Bonuses, err = collect(ctx, s.log, domain.KindBonus, b.Bonuses()); err != nil {
		return Snapshot{}, err
	}
	if snap.Commissions, err = collect(ctx, s.log, domain.KindCommission, b.Commissions()); err != nil {
		return Snapshot{}, err
	}
	if snap.CustomerCounts, err = collect(ctx, s.log, domain.KindCustomerCount, b.CustomerCounts()); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// collect lists every record of r. Availability failures are returned so
// the executor can fall back; anything else degrades to an empty list.
func collect[T any](ctx context.Context, log *slog.Logger, kind domain.Kind, r store.Repo[T]) ([]T, error) {
	rows, err := r.List(ctx, store.Query{})
	if err == nil {
		return rows, nil
	}
	if errors.Is(err, domain.ErrBackendUnavailable) || ctx.Err() != nil {
		return nil, err
	}

	log.WarnContext(ctx, "dashboard collection skipped",
		slog.String("kind", kind.String()),
		slog.String("error", err.Error()),
	)
	ctxutil.Warn(ctx, fmt.Sprintf("dashboard: %s unavailable", kind))
	return []T{}, nil
}
