package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

var teamColumns = []string{"id", "created_at", "updated_at", "name", "description", "leader", "budget", "color"}

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestTable_Create(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "inserted",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(teamColumns).
					AddRow(id, now, now, "Sales", "", "", decimal.NewFromInt(1000), "blue")
				mock.ExpectQuery(`INSERT INTO teams \(.+\) VALUES \(.+\) RETURNING \*`).
					WithArgs(anyArgs(len(teamColumns))...).
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate name",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO teams`).
					WithArgs(anyArgs(len(teamColumns))...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "teams_name_key"})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "connection refused",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO teams`).
					WithArgs(anyArgs(len(teamColumns))...).
					WillReturnError(errors.New("dial tcp: connection refused"))
			},
			wantErr: domain.ErrBackendUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, mock := newMockStore(t)
			tt.setup(mock)

			got, err := s.Teams().Create(context.Background(), domain.Team{Name: "Sales", Budget: decimal.NewFromInt(1000), Color: "blue"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)
				assert.Equal(t, "Sales", got.Name)
				assert.True(t, got.Budget.Equal(decimal.NewFromInt(1000)))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTable_GetNotFound(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM teams WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.Teams().Get(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_ListBuildsFilter(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM teams WHERE name = \$1 ORDER BY created_at DESC, id DESC LIMIT 5`).
		WithArgs("Sales").
		WillReturnRows(pgxmock.NewRows(teamColumns).
			AddRow(id, now, now, "Sales", "", "", decimal.Zero, ""))

	got, err := s.Teams().List(context.Background(), store.Where("name", "Sales").WithLimit(5))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_ListUndefinedTableIsUnavailable(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM teams`).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "teams" does not exist`})

	_, err := s.Teams().List(context.Background(), store.Query{})

	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_UpdateInTx(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)
	id := uuid.New()
	created := time.Now().UTC().Add(-time.Hour)
	now := time.Now().UTC()

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectQuery(`SELECT \* FROM teams WHERE id = \$1 FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(teamColumns).
			AddRow(id, created, created, "Sales", "", "", decimal.Zero, "blue"))
	mock.ExpectQuery(`UPDATE teams SET .+ WHERE id = \$\d+ RETURNING \*`).
		WithArgs(anyArgs(len(teamColumns) - 1)...).
		WillReturnRows(pgxmock.NewRows(teamColumns).
			AddRow(id, created, now, "Sales", "", "Ann", decimal.Zero, "blue"))
	mock.ExpectCommit()

	var got domain.Team
	err := s.RunInTx(context.Background(), func(ctx context.Context, b store.Backend) error {
		var err error
		got, err = b.Teams().Update(ctx, id, func(tm *domain.Team) error {
			tm.Leader = "Ann"
			return nil
		})
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Leader)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RunInTxRollsBack(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)
	sentinel := errors.New("business rule")

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectRollback()

	err := s.RunInTx(context.Background(), func(context.Context, store.Backend) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_BeginFailureIsUnavailable(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectBeginTx(pgx.TxOptions{}).WillReturnError(errors.New("too many connections"))

	err := s.RunInTx(context.Background(), func(context.Context, store.Backend) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ViewIsReadOnlySnapshot(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM teams`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectCommit()

	var n int
	err := s.View(context.Background(), func(ctx context.Context, b store.Backend) error {
		var err error
		n, err = b.Teams().Count(ctx, store.Query{})
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_DeleteAll(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM audit_logs`).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	n, err := s.AuditLogs().DeleteAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
