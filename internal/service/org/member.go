package org

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

// ListMembers returns members matching input, most recent first.
func (s *Service) ListMembers(ctx context.Context, input ListMembersInput) ([]domain.Member, error) {
	if input.Status != "" && !input.Status.IsValid() {
		return nil, domain.NewValidationError("status", "must be active, inactive or terminated")
	}

	q := store.Query{}
	if input.TeamID != nil {
		q = q.And("team_id", *input.TeamID)
	}
	if input.Status != "" {
		q = q.And("status", input.Status)
	}

	return selector.ReadList(ctx, s.exec, "list members", func(ctx context.Context, b store.Backend) ([]domain.Member, error) {
		return b.Members().List(ctx, q)
	})
}

// GetMember returns a single member.
func (s *Service) GetMember(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	return selector.Read(ctx, s.exec, "get member", func(ctx context.Context, b store.Backend) (domain.Member, error) {
		return b.Members().Get(ctx, id)
	})
}

// CreateMember creates a member. The team, when given, must exist in the
// backend that serves the write.
func (s *Service) CreateMember(ctx context.Context, input CreateMemberInput) (domain.Member, error) {
	if err := input.Validate(); err != nil {
		return domain.Member{}, err
	}

	status := input.Status
	if status == "" {
		status = domain.MemberStatusActive
	}
	m := domain.Member{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		BankName:    strings.TrimSpace(input.BankName),
		BankAccount: strings.TrimSpace(input.BankAccount),
		Role:        strings.TrimSpace(input.Role),
		Position:    strings.TrimSpace(input.Position),
		Department:  strings.TrimSpace(input.Department),
		Salary:      input.Salary,
		Status:      status,
		TeamID:      input.TeamID,
	}
	if input.HireDate != nil {
		m.HireDate = input.HireDate.UTC()
	}

	member, err := selector.Write(ctx, s.exec, "create member", func(ctx context.Context, b store.Backend) (domain.Member, error) {
		if err := ensureTeam(ctx, b, m.TeamID); err != nil {
			return domain.Member{}, err
		}
		created, err := b.Members().Create(ctx, m)
		if err != nil {
			return domain.Member{}, fmt.Errorf("create member: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindMember, created.ID, nil, created); err != nil {
			return domain.Member{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Member{}, err
	}

	s.log.InfoContext(ctx, "member created",
		slog.String("member_id", member.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return member, nil
}

// UpdateMember applies a partial update to a member.
func (s *Service) UpdateMember(ctx context.Context, input UpdateMemberInput) (domain.Member, error) {
	if err := input.Validate(); err != nil {
		return domain.Member{}, err
	}

	member, err := selector.Write(ctx, s.exec, "update member", func(ctx context.Context, b store.Backend) (domain.Member, error) {
		if err := ensureTeam(ctx, b, input.TeamID); err != nil {
			return domain.Member{}, err
		}
		var before domain.Member
		updated, err := b.Members().Update(ctx, input.ID, func(m *domain.Member) error {
			before = *m
			input.apply(m)
			return nil
		})
		if err != nil {
			return domain.Member{}, fmt.Errorf("update member: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindMember, updated.ID, before, updated); err != nil {
			return domain.Member{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Member{}, err
	}

	s.log.InfoContext(ctx, "member updated",
		slog.String("member_id", member.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return member, nil
}

// MemberDeletion reports what a member delete removed or detached.
type MemberDeletion struct {
	Salaries             int `json:"salaries"`
	Bonuses              int `json:"bonuses"`
	Commissions          int `json:"commissions"`
	DetachedTransactions int `json:"detachedTransactions"`
	DetachedCustomers    int `json:"detachedCustomers"`
}

// DeleteMember deletes a member together with their salaries, bonuses and
// commissions. Transactions and customers that pointed at the member keep
// existing with member_id cleared.
func (s *Service) DeleteMember(ctx context.Context, id uuid.UUID) (MemberDeletion, error) {
	byMember := store.Where("member_id", id)

	res, err := selector.Write(ctx, s.exec, "delete member", func(ctx context.Context, b store.Backend) (MemberDeletion, error) {
		var res MemberDeletion
		if _, err := b.Members().Get(ctx, id); err != nil {
			return res, err
		}

		salaries, err := store.DeleteWhere(ctx, b.Salaries(), byMember)
		if err != nil {
			return res, fmt.Errorf("delete salaries: %w", err)
		}
		bonuses, err := store.DeleteWhere(ctx, b.Bonuses(), byMember)
		if err != nil {
			return res, fmt.Errorf("delete bonuses: %w", err)
		}
		commissions, err := store.DeleteWhere(ctx, b.Commissions(), byMember)
		if err != nil {
			return res, fmt.Errorf("delete commissions: %w", err)
		}
		res.Salaries, res.Bonuses, res.Commissions = len(salaries), len(bonuses), len(commissions)

		res.DetachedTransactions, err = store.UpdateWhere(ctx, b.Transactions(), byMember, func(t *domain.Transaction) error {
			t.MemberID = nil
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("detach transactions: %w", err)
		}
		res.DetachedCustomers, err = store.UpdateWhere(ctx, b.Customers(), byMember, func(c *domain.Customer) error {
			c.MemberID = nil
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("detach customers: %w", err)
		}

		removed, err := b.Members().Delete(ctx, id)
		if err != nil {
			return res, fmt.Errorf("delete member: %w", err)
		}
		return res, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindMember, id, removed, nil)
	})
	if err != nil {
		return MemberDeletion{}, err
	}

	s.log.InfoContext(ctx, "member deleted",
		slog.String("member_id", id.String()),
		slog.Int("salaries", res.Salaries),
		slog.Int("bonuses", res.Bonuses),
		slog.Int("commissions", res.Commissions),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return res, nil
}
