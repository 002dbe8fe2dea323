package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

// ResetInput is the body of a reset request.
type ResetInput struct {
	Confirm bool `json:"confirm"`
	Seed    bool `json:"seed"`
}

// Validate requires an explicit confirmation.
func (in ResetInput) Validate() error {
	if !in.Confirm {
		return domain.NewValidationError("confirm", "must be true")
	}
	return nil
}

// BackendReport is the outcome of a reset on one backend.
type BackendReport struct {
	Backend   string              `json:"backend"`
	Attempted bool                `json:"attempted"`
	Error     string              `json:"error,omitempty"`
	Deleted   map[domain.Kind]int `json:"deleted,omitempty"`
	Seeded    map[domain.Kind]int `json:"seeded,omitempty"`
	Counts    map[domain.Kind]int `json:"counts,omitempty"`
}

// ResetReport is the outcome of a reset on both backends.
type ResetReport struct {
	Durable BackendReport `json:"durable"`
	Mirror  BackendReport `json:"mirror"`
}

// Failed reports whether any attempted backend failed.
func (r ResetReport) Failed() bool {
	return r.Durable.Error != "" || r.Mirror.Error != ""
}

// Reset wipes both backends concurrently in dependency order and optionally
// reseeds them with the same fixtures. A failure on one backend does not
// stop the other; both outcomes are in the report. No audit entry is
// written since the audit trail is wiped too.
func (s *Service) Reset(ctx context.Context, in ResetInput) (ResetReport, error) {
	if err := in.Validate(); err != nil {
		return ResetReport{}, err
	}

	now := s.now()
	report := ResetReport{
		Durable: BackendReport{Backend: store.NameDurable},
		Mirror:  BackendReport{Backend: store.NameMirror},
	}

	var g errgroup.Group
	if s.durable != nil {
		g.Go(func() error {
			report.Durable = s.resetDurable(ctx, in.Seed, now)
			return nil
		})
	}
	g.Go(func() error {
		report.Mirror = s.resetMirror(ctx, in.Seed, now)
		return nil
	})
	_ = g.Wait()

	s.log.InfoContext(ctx, "reset finished",
		slog.Bool("seed", in.Seed),
		slog.Bool("durable_attempted", report.Durable.Attempted),
		slog.String("durable_error", report.Durable.Error),
		slog.String("mirror_error", report.Mirror.Error),
	)
	return report, nil
}

func (s *Service) resetDurable(ctx context.Context, seed bool, now time.Time) BackendReport {
	rep := BackendReport{Backend: store.NameDurable, Attempted: true}

	err := s.durable.RunInTx(ctx, func(ctx context.Context, b store.Backend) error {
		deleted, err := store.Wipe(ctx, b)
		if err != nil {
			return err
		}
		rep.Deleted = deleted
		if !seed {
			return nil
		}
		rep.Seeded, err = s.seed(ctx, b, now)
		return err
	})
	if err != nil {
		rep.Deleted, rep.Seeded = nil, nil
		s.fail(ctx, &rep, err)
	}

	s.verify(ctx, s.durable, &rep)
	return rep
}

// resetMirror clears the mirror including its fallback journal and seeds it
// afresh under one write lock. A failed seed leaves the mirror as it was.
func (s *Service) resetMirror(ctx context.Context, seed bool, now time.Time) BackendReport {
	rep := BackendReport{Backend: store.NameMirror, Attempted: true}

	var fill func(ctx context.Context, b store.Backend) error
	if seed {
		fill = func(ctx context.Context, b store.Backend) error {
			var err error
			rep.Seeded, err = s.seed(ctx, b, now)
			return err
		}
	}

	deleted, err := s.mirror.ResetWith(ctx, fill)
	if err != nil {
		rep.Seeded = nil
		s.fail(ctx, &rep, err)
	}
	rep.Deleted = deleted

	s.verify(ctx, s.mirror, &rep)
	return rep
}

// verify reads back the per-kind counts after the reset.
func (s *Service) verify(ctx context.Context, b store.Backend, rep *BackendReport) {
	err := b.View(ctx, func(ctx context.Context, v store.Backend) error {
		var err error
		rep.Counts, err = store.Counts(ctx, v)
		return err
	})
	if err != nil && rep.Error == "" {
		s.fail(ctx, rep, fmt.Errorf("verify counts: %w", err))
	}
}

func (s *Service) fail(ctx context.Context, rep *BackendReport, err error) {
	rep.Error = err.Error()
	s.log.ErrorContext(ctx, "reset failed",
		slog.String("backend", rep.Backend),
		slog.String("error", rep.Error),
	)
}

// SeedEmpty seeds every backend that holds no records at all and leaves the
// others alone. It is used for seed-on-start.
func (s *Service) SeedEmpty(ctx context.Context) ResetReport {
	now := s.now()
	report := ResetReport{
		Durable: BackendReport{Backend: store.NameDurable},
		Mirror:  BackendReport{Backend: store.NameMirror},
	}

	var g errgroup.Group
	if s.durable != nil {
		g.Go(func() error {
			report.Durable = s.seedIfEmpty(ctx, s.durable, store.NameDurable, now)
			return nil
		})
	}
	g.Go(func() error {
		report.Mirror = s.seedIfEmpty(ctx, s.mirror, store.NameMirror, now)
		return nil
	})
	_ = g.Wait()
	return report
}

func (s *Service) seedIfEmpty(ctx context.Context, b store.Backend, name string, now time.Time) BackendReport {
	rep := BackendReport{Backend: name}

	err := b.RunInTx(ctx, func(ctx context.Context, tx store.Backend) error {
		counts, err := store.Counts(ctx, tx)
		if err != nil {
			return err
		}
		for _, n := range counts {
			if n > 0 {
				return nil
			}
		}
		rep.Attempted = true
		rep.Seeded, err = s.seed(ctx, tx, now)
		return err
	})
	if err != nil {
		rep.Attempted = true
		rep.Seeded = nil
		s.fail(ctx, &rep, err)
		return rep
	}

	if rep.Attempted {
		s.log.InfoContext(ctx, "backend seeded", slog.String("backend", name))
	}
	s.verify(ctx, b, &rep)
	return rep
}
