package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
)

// mapError converts pgx/pgconn errors to domain errors. what names the
// failed operation and ends up as the message prefix.
//
// Constraint violations become NotFound, Conflict or Validation. Anything
// that says the store itself is unusable (connection loss, timeouts, missing
// tables or columns, aborted transactions) becomes ErrBackendUnavailable.
// context.Canceled passes through unchanged.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", what, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %s: %w", what, pgErr.ConstraintName, domain.ErrConflict)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %s: %w", what, pgErr.ConstraintName, domain.ErrNotFound)
		case "23514", "23502", "22P02", "22003", "22007", "22008": // check, not null, bad input, range, datetime
			return fmt.Errorf("%s: %s: %w", what, pgErr.Message, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s: %w: %w", what, domain.ErrBackendUnavailable, err)
}
