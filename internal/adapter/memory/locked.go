package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

// lockedRepo takes the store lock around every call of inner.
type lockedRepo[T any] struct {
	mu    *sync.RWMutex
	inner store.Repo[T]
}

func locked[T any](mu *sync.RWMutex, inner store.Repo[T]) store.Repo[T] {
	return &lockedRepo[T]{mu: mu, inner: inner}
}

func (r *lockedRepo[T]) Create(ctx context.Context, v T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Create(ctx, v)
}

func (r *lockedRepo[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inner.Get(ctx, id)
}

func (r *lockedRepo[T]) List(ctx context.Context, q store.Query) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inner.List(ctx, q)
}

func (r *lockedRepo[T]) Update(ctx context.Context, id uuid.UUID, mutate func(*T) error) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Update(ctx, id, mutate)
}

func (r *lockedRepo[T]) Delete(ctx context.Context, id uuid.UUID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Delete(ctx, id)
}

func (r *lockedRepo[T]) Count(ctx context.Context, q store.Query) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inner.Count(ctx, q)
}

func (r *lockedRepo[T]) DeleteAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.DeleteAll(ctx)
}
