package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// table maps one domain record type onto the table named after its kind.
// Column names come from the db tags of T.
type table[T any, P store.Record[T]] struct {
	kind domain.Kind
	db   DB
	now  func() time.Time
}

func (t *table[T, P]) q(ctx context.Context) Querier {
	return QuerierFromCtx(ctx, t.db)
}

func (t *table[T, P]) name() string { return string(t.kind) }

func (t *table[T, P]) what(id uuid.UUID) string {
	return fmt.Sprintf("%s %s", t.kind, id)
}

func (t *table[T, P]) Create(ctx context.Context, v T) (T, error) {
	var out T
	P(&v).Stamp(t.now())

	query, args, err := psql.Insert(t.name()).
		SetMap(store.Columns(v)).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return out, fmt.Errorf("build insert %s: %w", t.kind, err)
	}

	if err := pgxscan.Get(ctx, t.q(ctx), &out, query, args...); err != nil {
		return out, mapError(err, "insert "+t.what(P(&v).GetID()))
	}
	return out, nil
}

func (t *table[T, P]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return t.get(ctx, id, false)
}

func (t *table[T, P]) get(ctx context.Context, id uuid.UUID, forUpdate bool) (T, error) {
	var out T
	b := psql.Select("*").From(t.name()).Where(sq.Eq{store.ColID: id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return out, fmt.Errorf("build select %s: %w", t.kind, err)
	}

	if err := pgxscan.Get(ctx, t.q(ctx), &out, query, args...); err != nil {
		return out, mapError(err, t.what(id))
	}
	return out, nil
}

func (t *table[T, P]) List(ctx context.Context, q store.Query) ([]T, error) {
	b := psql.Select("*").From(t.name()).
		OrderBy(store.ColCreatedAt+" DESC", store.ColID+" DESC")
	if len(q.Eq) > 0 {
		b = b.Where(sq.Eq(q.Eq))
	}
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", t.kind, err)
	}

	out := make([]T, 0)
	if err := pgxscan.Select(ctx, t.q(ctx), &out, query, args...); err != nil {
		return nil, mapError(err, "list "+t.name())
	}
	return out, nil
}

// Update locks the row, applies mutate and writes every column back.
// It must run inside a transaction for the lock to hold.
func (t *table[T, P]) Update(ctx context.Context, id uuid.UUID, mutate func(*T) error) (T, error) {
	var out T
	cur, err := t.get(ctx, id, true)
	if err != nil {
		return out, err
	}

	next := cur
	if err := mutate(&next); err != nil {
		return out, err
	}
	P(&next).Base().Keep(*P(&cur).Base())
	P(&next).Touch(t.now())

	cols := store.Columns(next)
	delete(cols, store.ColID)
	delete(cols, store.ColCreatedAt)

	query, args, err := psql.Update(t.name()).
		SetMap(cols).
		Where(sq.Eq{store.ColID: id}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return out, fmt.Errorf("build update %s: %w", t.kind, err)
	}

	if err := pgxscan.Get(ctx, t.q(ctx), &out, query, args...); err != nil {
		return out, mapError(err, "update "+t.what(id))
	}
	return out, nil
}

func (t *table[T, P]) Delete(ctx context.Context, id uuid.UUID) (T, error) {
	var out T
	query, args, err := psql.Delete(t.name()).
		Where(sq.Eq{store.ColID: id}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return out, fmt.Errorf("build delete %s: %w", t.kind, err)
	}

	if err := pgxscan.Get(ctx, t.q(ctx), &out, query, args...); err != nil {
		return out, mapError(err, "delete "+t.what(id))
	}
	return out, nil
}

func (t *table[T, P]) Count(ctx context.Context, q store.Query) (int, error) {
	b := psql.Select("COUNT(*)").From(t.name())
	if len(q.Eq) > 0 {
		b = b.Where(sq.Eq(q.Eq))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", t.kind, err)
	}

	var n int
	if err := t.q(ctx).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, "count "+t.name())
	}
	if q.Limit > 0 && n > q.Limit {
		n = q.Limit
	}
	return n, nil
}

func (t *table[T, P]) DeleteAll(ctx context.Context) (int, error) {
	query, args, err := psql.Delete(t.name()).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete all %s: %w", t.kind, err)
	}

	tag, err := t.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "delete all "+t.name())
	}
	return int(tag.RowsAffected()), nil
}
