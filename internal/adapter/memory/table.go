package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

var errReadOnly = errors.New("memory: write in read-only view")

// uniqueKey returns the name and normalized value of a unique field. An empty
// key means the record does not take part in the constraint.
type uniqueKey[T any] func(v *T) (field, key string)

// table is an unlocked collection. Callers hold the Store lock.
type table[T any, P store.Record[T]] struct {
	kind     domain.Kind
	rows     *[]T
	unique   uniqueKey[T]
	now      func() time.Time
	readOnly bool
}

func (t *table[T, P]) find(id uuid.UUID) int {
	for i := range *t.rows {
		if P(&(*t.rows)[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (t *table[T, P]) checkUnique(v *T) error {
	if t.unique == nil {
		return nil
	}
	field, key := t.unique(v)
	if key == "" {
		return nil
	}
	id := P(v).GetID()
	for i := range *t.rows {
		row := &(*t.rows)[i]
		if P(row).GetID() == id {
			continue
		}
		if _, other := t.unique(row); other == key {
			return fmt.Errorf("%s %s %q: %w", t.kind, field, key, domain.ErrConflict)
		}
	}
	return nil
}

func (t *table[T, P]) Create(_ context.Context, v T) (T, error) {
	var zero T
	if t.readOnly {
		return zero, errReadOnly
	}
	P(&v).Stamp(t.now())
	if t.find(P(&v).GetID()) >= 0 {
		return zero, fmt.Errorf("%s %s: %w", t.kind, P(&v).GetID(), domain.ErrConflict)
	}
	if err := t.checkUnique(&v); err != nil {
		return zero, err
	}
	*t.rows = append([]T{v}, *t.rows...)
	return v, nil
}

func (t *table[T, P]) Get(_ context.Context, id uuid.UUID) (T, error) {
	i := t.find(id)
	if i < 0 {
		var zero T
		return zero, domain.NotFoundError(string(t.kind), id)
	}
	return (*t.rows)[i], nil
}

func (t *table[T, P]) List(_ context.Context, q store.Query) ([]T, error) {
	out := make([]T, 0)
	for _, row := range *t.rows {
		if !store.Matches(row, q) {
			continue
		}
		out = append(out, row)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (t *table[T, P]) Update(_ context.Context, id uuid.UUID, mutate func(*T) error) (T, error) {
	var zero T
	if t.readOnly {
		return zero, errReadOnly
	}
	i := t.find(id)
	if i < 0 {
		return zero, domain.NotFoundError(string(t.kind), id)
	}
	orig := (*t.rows)[i]
	next := orig
	if err := mutate(&next); err != nil {
		return zero, err
	}

	// Identity and creation time survive any patch.
	P(&next).Base().Keep(*P(&orig).Base())
	P(&next).Touch(t.now())
	if err := t.checkUnique(&next); err != nil {
		return zero, err
	}
	(*t.rows)[i] = next
	return next, nil
}

func (t *table[T, P]) Delete(_ context.Context, id uuid.UUID) (T, error) {
	var zero T
	if t.readOnly {
		return zero, errReadOnly
	}
	i := t.find(id)
	if i < 0 {
		return zero, domain.NotFoundError(string(t.kind), id)
	}
	removed := (*t.rows)[i]
	*t.rows = append((*t.rows)[:i:i], (*t.rows)[i+1:]...)
	return removed, nil
}

func (t *table[T, P]) Count(_ context.Context, q store.Query) (int, error) {
	if len(q.Eq) == 0 {
		if q.Limit > 0 && q.Limit < len(*t.rows) {
			return q.Limit, nil
		}
		return len(*t.rows), nil
	}
	n := 0
	for _, row := range *t.rows {
		if store.Matches(row, q) {
			n++
		}
	}
	if q.Limit > 0 && n > q.Limit {
		n = q.Limit
	}
	return n, nil
}

func (t *table[T, P]) DeleteAll(_ context.Context) (int, error) {
	if t.readOnly {
		return 0, errReadOnly
	}
	n := len(*t.rows)
	*t.rows = nil
	return n, nil
}
