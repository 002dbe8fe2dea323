package admin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/adapter/memory"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

// Export returns the whole mirror as one snapshot blob.
func (s *Service) Export(ctx context.Context) memory.Snapshot {
	snap := s.mirror.Snapshot(s.snapshotKey)
	s.log.InfoContext(ctx, "mirror exported", slog.Time("saved_at", snap.SavedAt))
	return snap
}

// Import replaces the mirror with snap and returns the resulting counts. The
// snapshot must carry the configured key and every reference in it must
// resolve. Category spent and customer totals are re-derived from the
// imported records; the stored values in snap are not trusted.
func (s *Service) Import(ctx context.Context, snap memory.Snapshot) (map[domain.Kind]int, error) {
	var counts map[domain.Kind]int
	err := s.mirror.RestoreWith(ctx, snap, s.snapshotKey, func(ctx context.Context, b store.Backend) error {
		if err := checkReferences(snap.Collections); err != nil {
			return err
		}
		for _, c := range snap.Categories {
			if err := s.aggregates.RecomputeCategorySpent(ctx, b, c.ID); err != nil {
				return err
			}
		}
		for _, c := range snap.Customers {
			if err := s.aggregates.RecomputeCustomerTotal(ctx, b, c.ID); err != nil {
				return err
			}
		}
		var err error
		counts, err = store.Counts(ctx, b)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "mirror imported",
		slog.Int("teams", counts[domain.KindTeam]),
		slog.Int("transactions", counts[domain.KindTransaction]),
		slog.Int("customers", counts[domain.KindCustomer]),
	)
	return counts, nil
}

// checkReferences reports every reference in c that points at a record c
// does not hold.
func checkReferences(c memory.Collections) error {
	teams := idSet(c.Teams, func(t domain.Team) uuid.UUID { return t.ID })
	members := idSet(c.Members, func(m domain.Member) uuid.UUID { return m.ID })
	categories := idSet(c.Categories, func(cat domain.Category) uuid.UUID { return cat.ID })
	customers := idSet(c.Customers, func(cu domain.Customer) uuid.UUID { return cu.ID })

	var errs []domain.FieldError
	check := func(set map[uuid.UUID]bool, kind domain.Kind, owner uuid.UUID, field string, ref *uuid.UUID) {
		if ref == nil || set[*ref] {
			return
		}
		errs = append(errs, domain.FieldError{
			Field:   fmt.Sprintf("%s[%s].%s", kind, owner, field),
			Message: fmt.Sprintf("unknown id %s", ref),
		})
	}

	for _, m := range c.Members {
		check(teams, domain.KindMember, m.ID, "teamId", m.TeamID)
	}
	for _, tx := range c.Transactions {
		check(categories, domain.KindTransaction, tx.ID, "categoryId", &tx.CategoryID)
		check(teams, domain.KindTransaction, tx.ID, "teamId", tx.TeamID)
		check(members, domain.KindTransaction, tx.ID, "memberId", tx.MemberID)
	}
	for _, cu := range c.Customers {
		check(teams, domain.KindCustomer, cu.ID, "teamId", cu.TeamID)
		check(members, domain.KindCustomer, cu.ID, "memberId", cu.MemberID)
	}
	for _, tx := range c.CustomerTransactions {
		check(customers, domain.KindCustomerTransaction, tx.ID, "customerId", &tx.CustomerID)
	}
	for _, sal := range c.Salaries {
		check(members, domain.KindSalary, sal.ID, "memberId", &sal.MemberID)
	}
	for _, b := range c.Bonuses {
		check(members, domain.KindBonus, b.ID, "memberId", &b.MemberID)
	}
	for _, cm := range c.Commissions {
		check(members, domain.KindCommission, cm.ID, "memberId", &cm.MemberID)
		check(customers, domain.KindCommission, cm.ID, "customerId", cm.CustomerID)
	}
	for _, cc := range c.CustomerCounts {
		check(teams, domain.KindCustomerCount, cc.ID, "teamId", cc.TeamID)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func idSet[T any](rows []T, id func(T) uuid.UUID) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		out[id(r)] = true
	}
	return out
}

// Fallbacks returns the writes the mirror served in place of the durable
// store, most recent first.
func (s *Service) Fallbacks(context.Context) []domain.FallbackEvent {
	events := s.mirror.FallbackEvents()
	slices.Reverse(events)
	return events
}
