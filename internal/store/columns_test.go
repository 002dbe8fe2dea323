package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
)

func TestColumns_FlattensMeta(t *testing.T) {
	t.Parallel()

	teamID := uuid.New()
	m := domain.Member{Name: "Ann", Status: domain.MemberStatusActive, TeamID: &teamID}
	m.ID = uuid.New()

	cols := Columns(m)

	assert.Equal(t, m.ID, cols[ColID])
	assert.Equal(t, "Ann", cols["name"])
	assert.Equal(t, teamID, *(cols["team_id"].(*uuid.UUID)))
	assert.Contains(t, cols, ColCreatedAt)
	assert.Contains(t, cols, ColUpdatedAt)
}

func TestColumns_NilPointerIsNil(t *testing.T) {
	t.Parallel()

	cols := Columns(&domain.Transaction{})

	require.Contains(t, cols, "team_id")
	assert.Nil(t, cols["team_id"])
}

func TestColumnNames_DeclarationOrder(t *testing.T) {
	t.Parallel()

	names := ColumnNames[domain.Team]()

	assert.Equal(t, []string{"id", "created_at", "updated_at", "name", "description", "leader", "budget", "color"}, names)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	catID := uuid.New()
	teamID := uuid.New()
	tx := domain.Transaction{Type: domain.FlowExpense, CategoryID: catID, TeamID: &teamID}

	tests := []struct {
		name string
		q    Query
		want bool
	}{
		{name: "empty query", q: Query{}, want: true},
		{name: "typed enum", q: Where("type", domain.FlowExpense), want: true},
		{name: "plain string enum", q: Where("type", "expense"), want: true},
		{name: "wrong enum", q: Where("type", "income"), want: false},
		{name: "uuid value", q: Where("category_id", catID), want: true},
		{name: "pointer field by value", q: Where("team_id", teamID), want: true},
		{name: "null filter on set field", q: Where("team_id", nil), want: false},
		{name: "null filter on null field", q: Where("member_id", nil), want: true},
		{name: "unknown column", q: Where("nope", 1), want: false},
		{name: "conjunction", q: Where("type", "expense").And("category_id", uuid.New()), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Matches(tx, tt.q))
		})
	}
}

func TestQuery_AndDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := Where("a", 1)
	derived := base.And("b", 2).WithLimit(5)

	assert.Len(t, base.Eq, 1)
	assert.Equal(t, 0, base.Limit)
	assert.Len(t, derived.Eq, 2)
	assert.Equal(t, 5, derived.Limit)
}

func TestDeleteWhereAndUpdateWhere(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &sliceRepo{}

	member := uuid.New()
	for i := 0; i < 3; i++ {
		b := domain.Bonus{MemberID: member}
		b.ID = uuid.New()
		repo.rows = append(repo.rows, b)
	}
	other := domain.Bonus{MemberID: uuid.New()}
	other.ID = uuid.New()
	repo.rows = append(repo.rows, other)

	n, err := UpdateWhere(ctx, Repo[domain.Bonus](repo), Where("member_id", member), func(b *domain.Bonus) error {
		b.Reason = "x"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	removed, err := DeleteWhere(ctx, Repo[domain.Bonus](repo), Where("member_id", member))
	require.NoError(t, err)
	assert.Len(t, removed, 3)
	for _, b := range removed {
		assert.Equal(t, "x", b.Reason)
	}
	require.Len(t, repo.rows, 1)
	assert.Equal(t, other.ID, repo.rows[0].ID)

	ok, err := Exists(ctx, repo, Where("member_id", member))
	require.NoError(t, err)
	assert.False(t, ok)
}

// sliceRepo is a minimal Repo used to exercise the generic helpers without
// importing a backend.
type sliceRepo struct {
	rows []domain.Bonus
}

func (r *sliceRepo) find(id uuid.UUID) int {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *sliceRepo) Create(_ context.Context, v domain.Bonus) (domain.Bonus, error) {
	r.rows = append(r.rows, v)
	return v, nil
}

func (r *sliceRepo) Get(_ context.Context, id uuid.UUID) (domain.Bonus, error) {
	if i := r.find(id); i >= 0 {
		return r.rows[i], nil
	}
	return domain.Bonus{}, domain.ErrNotFound
}

func (r *sliceRepo) List(_ context.Context, q Query) ([]domain.Bonus, error) {
	var out []domain.Bonus
	for _, b := range r.rows {
		if Matches(b, q) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *sliceRepo) Update(_ context.Context, id uuid.UUID, mutate func(*domain.Bonus) error) (domain.Bonus, error) {
	i := r.find(id)
	if i < 0 {
		return domain.Bonus{}, domain.ErrNotFound
	}
	if err := mutate(&r.rows[i]); err != nil {
		return domain.Bonus{}, err
	}
	return r.rows[i], nil
}

func (r *sliceRepo) Delete(_ context.Context, id uuid.UUID) (domain.Bonus, error) {
	i := r.find(id)
	if i < 0 {
		return domain.Bonus{}, domain.ErrNotFound
	}
	b := r.rows[i]
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return b, nil
}

func (r *sliceRepo) Count(ctx context.Context, q Query) (int, error) {
	rows, _ := r.List(ctx, q)
	return len(rows), nil
}

func (r *sliceRepo) DeleteAll(_ context.Context) (int, error) {
	n := len(r.rows)
	r.rows = nil
	return n, nil
}
