package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/adapter/memory"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
)

//go:generate moq -out auditor_mock_test.go -pkg payroll . auditor

var fixedNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc    *Service
	mirror *memory.Store
	audit  *auditorMock
	member domain.Member
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mirror := memory.New()
	exec := selector.New(log, nil, mirror, selector.Options{})
	audit := &auditorMock{
		RecordFunc: func(context.Context, store.Backend, domain.AuditAction, domain.Kind, uuid.UUID, any, any) error {
			return nil
		},
	}
	svc := NewService(log, exec, audit)
	svc.now = func() time.Time { return fixedNow }

	member, err := mirror.Members().Create(context.Background(), domain.Member{Name: "Ann", Status: domain.MemberStatusActive})
	require.NoError(t, err)

	return testEnv{svc: svc, mirror: mirror, audit: audit, member: member}
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func statusPtr(s domain.PayStatus) *domain.PayStatus { return &s }

// ---------------------------------------------------------------------------
// Salaries
// ---------------------------------------------------------------------------

func TestCreateSalary_PaidGetsPaidAt(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	sal, err := env.svc.CreateSalary(context.Background(), CreateSalaryInput{
		MemberID: env.member.ID,
		Amount:   dec("3000"),
		Month:    4,
		Year:     2026,
		Status:   domain.PayStatusPaid,
	})

	require.NoError(t, err)
	require.NotNil(t, sal.PaidAt)
	assert.Equal(t, fixedNow, *sal.PaidAt)
	assert.Len(t, env.audit.RecordCalls(), 1)
}

func TestCreateSalary_PendingHasNoPaidAt(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	paidAt := fixedNow.Add(-time.Hour)

	sal, err := env.svc.CreateSalary(context.Background(), CreateSalaryInput{
		MemberID: env.member.ID,
		Amount:   dec("3000"),
		Month:    4,
		Year:     2026,
		PaidAt:   &paidAt,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PayStatusPending, sal.Status)
	assert.Nil(t, sal.PaidAt)
}

func TestCreateSalary_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CreateSalaryInput
		field string
	}{
		{"missing member", CreateSalaryInput{Amount: dec("1"), Month: 1, Year: 2026}, "memberId"},
		{"month zero", CreateSalaryInput{MemberID: uuid.New(), Month: 0, Year: 2026}, "month"},
		{"month 13", CreateSalaryInput{MemberID: uuid.New(), Month: 13, Year: 2026}, "month"},
		{"year", CreateSalaryInput{MemberID: uuid.New(), Month: 1, Year: 12}, "year"},
		{"negative", CreateSalaryInput{MemberID: uuid.New(), Amount: dec("-1"), Month: 1, Year: 2026}, "amount"},
		{"status", CreateSalaryInput{MemberID: uuid.New(), Month: 1, Year: 2026, Status: "late"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			_, err := env.svc.CreateSalary(context.Background(), tt.input)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestCreateSalary_UnknownMember(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.svc.CreateSalary(context.Background(), CreateSalaryInput{MemberID: uuid.New(), Month: 1, Year: 2026})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.audit.RecordCalls())
}

func TestUpdateSalary_StatusTransitions(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	sal, err := env.svc.CreateSalary(ctx, CreateSalaryInput{MemberID: env.member.ID, Amount: dec("100"), Month: 1, Year: 2026})
	require.NoError(t, err)

	paid, err := env.svc.UpdateSalary(ctx, UpdateSalaryInput{ID: sal.ID, Status: statusPtr(domain.PayStatusPaid)})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.True(t, paid.Amount.Equal(dec("100")))

	pending, err := env.svc.UpdateSalary(ctx, UpdateSalaryInput{ID: sal.ID, Status: statusPtr(domain.PayStatusPending)})
	require.NoError(t, err)
	assert.Nil(t, pending.PaidAt)
}

func TestListSalaries_ByPeriod(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	for _, m := range []int{1, 2, 2} {
		_, err := env.svc.CreateSalary(ctx, CreateSalaryInput{MemberID: env.member.ID, Amount: dec("1"), Month: m, Year: 2026})
		require.NoError(t, err)
	}

	got, err := env.svc.ListSalaries(ctx, ListInput{Month: 2, Year: 2026})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = env.svc.ListSalaries(ctx, ListInput{MemberID: &env.member.ID})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDeleteSalary(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	sal, err := env.svc.CreateSalary(ctx, CreateSalaryInput{MemberID: env.member.ID, Month: 1, Year: 2026})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteSalary(ctx, sal.ID))
	assert.ErrorIs(t, env.svc.DeleteSalary(ctx, sal.ID), domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Bonuses
// ---------------------------------------------------------------------------

func TestCreateBonus_DefaultsDateAndStatus(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	bonus, err := env.svc.CreateBonus(context.Background(), CreateBonusInput{
		MemberID: env.member.ID,
		Amount:   dec("500"),
		Reason:   " Q1 target ",
	})

	require.NoError(t, err)
	assert.Equal(t, fixedNow, bonus.Date)
	assert.Equal(t, domain.PayStatusPending, bonus.Status)
	assert.Equal(t, "Q1 target", bonus.Reason)
}

func TestUpdateBonus_MarkPaid(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	bonus, err := env.svc.CreateBonus(ctx, CreateBonusInput{MemberID: env.member.ID, Amount: dec("500")})
	require.NoError(t, err)

	updated, err := env.svc.UpdateBonus(ctx, UpdateBonusInput{ID: bonus.ID, Status: statusPtr(domain.PayStatusPaid)})

	require.NoError(t, err)
	assert.Equal(t, domain.PayStatusPaid, updated.Status)
	assert.True(t, updated.Amount.Equal(dec("500")))

	got, err := env.svc.ListBonuses(ctx, ListInput{Status: domain.PayStatusPaid})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// ---------------------------------------------------------------------------
// Commissions
// ---------------------------------------------------------------------------

func TestCreateCommission_DerivesAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount *decimal.Decimal
		want   string
	}{
		{"derived", nil, "125.5"},
		{"explicit", decPtr("99"), "99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			com, err := env.svc.CreateCommission(context.Background(), CreateCommissionInput{
				MemberID:    env.member.ID,
				Amount:      tt.amount,
				SalesAmount: dec("2510"),
				Percentage:  dec("5"),
			})

			require.NoError(t, err)
			assert.True(t, com.Amount.Equal(dec(tt.want)), "got %s", com.Amount)
		})
	}
}

func TestCreateCommission_UnknownCustomer(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	missing := uuid.New()

	_, err := env.svc.CreateCommission(context.Background(), CreateCommissionInput{
		MemberID:   env.member.ID,
		CustomerID: &missing,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCommission_PercentageRange(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.svc.CreateCommission(context.Background(), CreateCommissionInput{
		MemberID:   env.member.ID,
		Percentage: dec("101"),
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "percentage", verr.Errors[0].Field)
}

func TestUpdateCommission_RederivesOnSalesChange(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	com, err := env.svc.CreateCommission(ctx, CreateCommissionInput{
		MemberID:    env.member.ID,
		SalesAmount: dec("1000"),
		Percentage:  dec("10"),
	})
	require.NoError(t, err)
	require.True(t, com.Amount.Equal(dec("100")))

	updated, err := env.svc.UpdateCommission(ctx, UpdateCommissionInput{ID: com.ID, SalesAmount: decPtr("3000")})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("300")), "got %s", updated.Amount)

	updated, err = env.svc.UpdateCommission(ctx, UpdateCommissionInput{ID: com.ID, Status: statusPtr(domain.PayStatusPaid)})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("300")), "status change keeps amount")
}

func TestDeleteCommission_NotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	err := env.svc.DeleteCommission(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
