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

// ListTeams returns all teams, most recent first.
func (s *Service) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return selector.ReadList(ctx, s.exec, "list teams", func(ctx context.Context, b store.Backend) ([]domain.Team, error) {
		return b.Teams().List(ctx, store.Query{})
	})
}

// GetTeam returns a single team.
func (s *Service) GetTeam(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	return selector.Read(ctx, s.exec, "get team", func(ctx context.Context, b store.Backend) (domain.Team, error) {
		return b.Teams().Get(ctx, id)
	})
}

// CreateTeam creates a team. Team names are unique ignoring case and
// surrounding whitespace.
func (s *Service) CreateTeam(ctx context.Context, input CreateTeamInput) (domain.Team, error) {
	if err := input.Validate(); err != nil {
		return domain.Team{}, err
	}

	team, err := selector.Write(ctx, s.exec, "create team", func(ctx context.Context, b store.Backend) (domain.Team, error) {
		created, err := b.Teams().Create(ctx, domain.Team{
			Name:        strings.TrimSpace(input.Name),
			Description: strings.TrimSpace(input.Description),
			Leader:      strings.TrimSpace(input.Leader),
			Budget:      input.Budget,
			Color:       input.Color,
		})
		if err != nil {
			return domain.Team{}, fmt.Errorf("create team: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindTeam, created.ID, nil, created); err != nil {
			return domain.Team{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Team{}, err
	}

	s.log.InfoContext(ctx, "team created",
		slog.String("team_id", team.ID.String()),
		slog.String("name", team.Name),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return team, nil
}

// UpdateTeam applies a partial update to a team.
func (s *Service) UpdateTeam(ctx context.Context, input UpdateTeamInput) (domain.Team, error) {
	if err := input.Validate(); err != nil {
		return domain.Team{}, err
	}

	team, err := selector.Write(ctx, s.exec, "update team", func(ctx context.Context, b store.Backend) (domain.Team, error) {
		var before domain.Team
		updated, err := b.Teams().Update(ctx, input.ID, func(t *domain.Team) error {
			before = *t
			input.apply(t)
			return nil
		})
		if err != nil {
			return domain.Team{}, fmt.Errorf("update team: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindTeam, updated.ID, before, updated); err != nil {
			return domain.Team{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Team{}, err
	}

	s.log.InfoContext(ctx, "team updated",
		slog.String("team_id", team.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return team, nil
}

// teamReferences lists the collections whose team_id must not point at a
// deleted team.
var teamReferences = []domain.Kind{
	domain.KindMember,
	domain.KindCustomer,
	domain.KindTransaction,
	domain.KindCustomerCount,
}

// DeleteTeam deletes a team. It fails with domain.ErrConflict while any
// member, customer, transaction or customer count still references it.
func (s *Service) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	_, err := selector.Write(ctx, s.exec, "delete team", func(ctx context.Context, b store.Backend) (struct{}, error) {
		if _, err := b.Teams().Get(ctx, id); err != nil {
			return struct{}{}, err
		}

		for _, kind := range teamReferences {
			c, err := store.CollectionOf(b, kind)
			if err != nil {
				return struct{}{}, err
			}
			used, err := store.Exists(ctx, c, store.Where("team_id", id))
			if err != nil {
				return struct{}{}, fmt.Errorf("check %s: %w", kind, err)
			}
			if used {
				return struct{}{}, fmt.Errorf("team %s is referenced by %s: %w", id, kind, domain.ErrConflict)
			}
		}

		removed, err := b.Teams().Delete(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete team: %w", err)
		}
		return struct{}{}, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindTeam, id, removed, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "team deleted",
		slog.String("team_id", id.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return nil
}

// ensureTeam checks that id, when set, names a team in b.
func ensureTeam(ctx context.Context, b store.Backend, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := b.Teams().Get(ctx, *id); err != nil {
		return fmt.Errorf("team: %w", err)
	}
	return nil
}
