package store

import (
	"context"
	"fmt"
)

// DeleteWhere deletes every record of r matching q and returns them.
func DeleteWhere[T any, P Record[T]](ctx context.Context, r Repo[T], q Query) ([]T, error) {
	rows, err := r.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i := range rows {
		removed, err := r.Delete(ctx, P(&rows[i]).GetID())
		if err != nil {
			return out, fmt.Errorf("delete %s: %w", P(&rows[i]).GetID(), err)
		}
		out = append(out, removed)
	}
	return out, nil
}

// UpdateWhere applies mutate to every record of r matching q and returns
// the number of updated records.
func UpdateWhere[T any, P Record[T]](ctx context.Context, r Repo[T], q Query, mutate func(*T) error) (int, error) {
	rows, err := r.List(ctx, q)
	if err != nil {
		return 0, err
	}
	for i := range rows {
		if _, err := r.Update(ctx, P(&rows[i]).GetID(), mutate); err != nil {
			return i, fmt.Errorf("update %s: %w", P(&rows[i]).GetID(), err)
		}
	}
	return len(rows), nil
}

// Exists reports whether any record of c matches q.
func Exists(ctx context.Context, c Collection, q Query) (bool, error) {
	n, err := c.Count(ctx, q.WithLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
