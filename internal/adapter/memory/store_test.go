package memory

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestStore() *Store {
	return New(WithClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
}

func TestCreate_AssignsIDAndPrepends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	first, err := s.Teams().Create(ctx, domain.Team{Name: "Alpha"})
	require.NoError(t, err)
	second, err := s.Teams().Create(ctx, domain.Team{Name: "Beta"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	list, err := s.Teams().List(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "most recent first")
	assert.Equal(t, first.ID, list[1].ID)
}

func TestCreate_UniqueName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Teams().Create(ctx, domain.Team{Name: "Sales"})
	require.NoError(t, err)

	_, err = s.Teams().Create(ctx, domain.Team{Name: "  sales "})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_EmptyEmailNotUnique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Members().Create(ctx, domain.Member{Name: "A"})
	require.NoError(t, err)
	_, err = s.Members().Create(ctx, domain.Member{Name: "B"})
	require.NoError(t, err)

	_, err = s.Members().Create(ctx, domain.Member{Name: "C", Email: "c@example.com"})
	require.NoError(t, err)
	_, err = s.Members().Create(ctx, domain.Member{Name: "D", Email: "C@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_KeepsIdentityAndStampsUpdatedAt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	created, err := s.Categories().Create(ctx, domain.Category{Name: "Rent", Type: domain.FlowExpense, Color: "red"})
	require.NoError(t, err)

	updated, err := s.Categories().Update(ctx, created.ID, func(c *domain.Category) error {
		c.ID = uuid.New()
		c.CreatedAt = time.Time{}
		c.Budget = decimal.NewFromInt(500)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.Budget.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "red", updated.Color, "untouched fields survive")
}

func TestUpdate_MutateErrorLeavesRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	created, err := s.Teams().Create(ctx, domain.Team{Name: "Ops"})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.Teams().Update(ctx, created.ID, func(tm *domain.Team) error {
		tm.Name = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Teams().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ops", got.Name)
}

func TestMissingRecord_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()
	id := uuid.New()

	_, err := s.Bonuses().Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Bonuses().Update(ctx, id, func(*domain.Bonus) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Bonuses().Delete(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ReturnsRemoved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	a, _ := s.Teams().Create(ctx, domain.Team{Name: "A"})
	b, _ := s.Teams().Create(ctx, domain.Team{Name: "B"})

	removed, err := s.Teams().Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, removed.ID)

	list, err := s.Teams().List(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestListAndCount_EmptyAndFiltered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	list, err := s.Transactions().List(ctx, store.Query{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	n, err := s.Transactions().Count(ctx, store.Query{})
	require.NoError(t, err)
	assert.Zero(t, n)

	cat := uuid.New()
	for i := 0; i < 3; i++ {
		_, err := s.Transactions().Create(ctx, domain.Transaction{Title: "t", Amount: 10, Type: domain.FlowExpense, CategoryID: cat})
		require.NoError(t, err)
	}
	_, err = s.Transactions().Create(ctx, domain.Transaction{Title: "i", Amount: 5, Type: domain.FlowIncome, CategoryID: uuid.New()})
	require.NoError(t, err)

	n, err = s.Transactions().Count(ctx, store.Where("category_id", cat))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	list, err = s.Transactions().List(ctx, store.Where("type", domain.FlowExpense).WithLimit(2))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	keep, err := s.Teams().Create(ctx, domain.Team{Name: "Keep"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.RunInTx(ctx, func(ctx context.Context, b store.Backend) error {
		if _, err := b.Teams().Create(ctx, domain.Team{Name: "Temp"}); err != nil {
			return err
		}
		if _, err := b.Teams().Update(ctx, keep.ID, func(t *domain.Team) error {
			t.Leader = "someone"
			return nil
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := s.Teams().List(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Keep", list[0].Name)
	assert.Empty(t, list[0].Leader)
}

func TestRunInTx_RollsBackOnPanic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	assert.Panics(t, func() {
		_ = s.RunInTx(ctx, func(ctx context.Context, b store.Backend) error {
			_, _ = b.Teams().Create(ctx, domain.Team{Name: "Temp"})
			panic("boom")
		})
	})

	n, err := s.Teams().Count(ctx, store.Query{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestView_IsReadOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	err := s.View(ctx, func(ctx context.Context, b store.Backend) error {
		_, err := b.Teams().Create(ctx, domain.Team{Name: "X"})
		return err
	})
	assert.Error(t, err)
}

func TestConcurrentWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunInTx(ctx, func(ctx context.Context, b store.Backend) error {
				_, err := b.Transactions().Create(ctx, domain.Transaction{Amount: 1, Type: domain.FlowIncome})
				return err
			})
		}()
	}
	wg.Wait()

	n, err := s.Transactions().Count(ctx, store.Query{})
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}

func TestResetAllData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, _ = s.Teams().Create(ctx, domain.Team{Name: "A"})
	_, _ = s.Customers().Create(ctx, domain.Customer{Name: "C"})
	s.AppendFallback(domain.FallbackEvent{Operation: "create team"})

	s.ResetAllData()

	counts, err := store.Counts(ctx, s)
	require.NoError(t, err)
	for k, n := range counts {
		assert.Zero(t, n, k)
	}
	assert.Empty(t, s.FallbackEvents())
}

func TestReplace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, _ = s.Teams().Create(ctx, domain.Team{Name: "Old"})

	rows := []domain.Team{{Name: "N1"}, {Name: "N2"}}
	rows[0].ID, rows[1].ID = uuid.New(), uuid.New()
	require.NoError(t, Replace(s, rows))

	list, err := s.Teams().List(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "N1", list[0].Name)

	rows[0].Name = "mutated"
	got, err := s.Teams().Get(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "N1", got.Name, "Replace copies its input")
}

func TestFallbackJournal(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	s.AppendFallback(domain.FallbackEvent{Operation: "create transaction", Reason: "dial tcp"})
	events := s.FallbackEvents()

	require.Len(t, events, 1)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.False(t, events[0].At.IsZero())
	assert.Equal(t, "create transaction", events[0].Operation)
}

func TestSnapshotFile_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	team, err := s.Teams().Create(ctx, domain.Team{Name: "Alpha", Budget: decimal.RequireFromString("1200.50")})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data", "mirror.json")
	require.NoError(t, s.SaveFile(path, "fms"))

	restored := newTestStore()
	ok, err := restored.LoadFile(path, "fms")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := restored.Teams().Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
	assert.True(t, got.Budget.Equal(team.Budget))
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	ok, err := s.LoadFile(filepath.Join(t.TempDir(), "absent.json"), "fms")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestore_KeyMismatch(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	err := s.Restore(s.Snapshot("other"), "fms")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRestoreWith_FailedCheckKeepsPreviousData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()
	_, err := s.Teams().Create(ctx, domain.Team{Name: "Kept"})
	require.NoError(t, err)

	other := newTestStore()
	_, err = other.Teams().Create(ctx, domain.Team{Name: "Incoming"})
	require.NoError(t, err)
	errCheck := errors.New("check failed")

	var seen []domain.Team
	err = s.RestoreWith(ctx, other.Snapshot("fms"), "fms", func(ctx context.Context, b store.Backend) error {
		var err error
		seen, err = b.Teams().List(ctx, store.Query{})
		require.NoError(t, err)
		return errCheck
	})

	require.ErrorIs(t, err, errCheck)
	require.Len(t, seen, 1)
	assert.Equal(t, "Incoming", seen[0].Name)
	list, err := s.Teams().List(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kept", list[0].Name)
}

func TestResetWith(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("counts cleared records and runs fn on the empty store", func(t *testing.T) {
		t.Parallel()
		s := newTestStore()
		_, _ = s.Teams().Create(ctx, domain.Team{Name: "Old"})
		s.AppendFallback(domain.FallbackEvent{Operation: "create team"})

		deleted, err := s.ResetWith(ctx, func(ctx context.Context, b store.Backend) error {
			n, err := b.Teams().Count(ctx, store.Query{})
			require.NoError(t, err)
			assert.Zero(t, n)
			_, err = b.Teams().Create(ctx, domain.Team{Name: "New"})
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 1, deleted[domain.KindTeam])
		assert.Empty(t, s.FallbackEvents())
		list, err := s.Teams().List(ctx, store.Query{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "New", list[0].Name)
	})

	t.Run("failed fn restores data and journal", func(t *testing.T) {
		t.Parallel()
		s := newTestStore()
		_, _ = s.Teams().Create(ctx, domain.Team{Name: "Old"})
		s.AppendFallback(domain.FallbackEvent{Operation: "create team"})
		errSeed := errors.New("seed failed")

		deleted, err := s.ResetWith(ctx, func(ctx context.Context, b store.Backend) error {
			_, _ = b.Teams().Create(ctx, domain.Team{Name: "Partial"})
			return errSeed
		})

		require.ErrorIs(t, err, errSeed)
		assert.Nil(t, deleted)
		assert.Len(t, s.FallbackEvents(), 1)
		list, err := s.Teams().List(ctx, store.Query{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Old", list[0].Name)
	})
}
