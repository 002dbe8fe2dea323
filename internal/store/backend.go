// Package store defines the persistence contract shared by the durable and
// mirror backends.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
)

// Backend names reported to clients.
const (
	NameDurable = "durable"
	NameMirror  = "mirror"
)

// Record is the constraint every stored entity satisfies through its
// embedded domain.Meta.
type Record[T any] interface {
	*T
	Base() *domain.Meta
	GetID() uuid.UUID
	Stamp(now time.Time)
	Touch(now time.Time)
}

// Repo is the per-kind CRUD contract. List results are ordered most recent
// first. Update loads the current record, applies mutate and persists the
// result; id and created_at are never changed by an update.
type Repo[T any] interface {
	Create(ctx context.Context, v T) (T, error)
	Get(ctx context.Context, id uuid.UUID) (T, error)
	List(ctx context.Context, q Query) ([]T, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*T) error) (T, error)
	Delete(ctx context.Context, id uuid.UUID) (T, error)
	Count(ctx context.Context, q Query) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// Backend is one complete persistence target.
//
// RunInTx runs fn as one logical operation: either every change made through
// the Backend passed to fn is kept, or none is. View runs fn against a
// consistent read-only snapshot.
type Backend interface {
	Name() string

	Teams() Repo[domain.Team]
	Members() Repo[domain.Member]
	Categories() Repo[domain.Category]
	Transactions() Repo[domain.Transaction]
	Customers() Repo[domain.Customer]
	CustomerTransactions() Repo[domain.CustomerTransaction]
	Salaries() Repo[domain.Salary]
	Bonuses() Repo[domain.Bonus]
	Commissions() Repo[domain.Commission]
	AuditLogs() Repo[domain.AuditLog]
	CustomerCounts() Repo[domain.CustomerCountSnapshot]

	RunInTx(ctx context.Context, fn func(ctx context.Context, b Backend) error) error
	View(ctx context.Context, fn func(ctx context.Context, b Backend) error) error
	Ping(ctx context.Context) error
}

// Collection is the kind-agnostic part of a Repo.
type Collection interface {
	Count(ctx context.Context, q Query) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// CollectionOf returns the collection of b that stores kind k.
func CollectionOf(b Backend, k domain.Kind) (Collection, error) {
	switch k {
	case domain.KindTeam:
		return b.Teams(), nil
	case domain.KindMember:
		return b.Members(), nil
	case domain.KindCategory:
		return b.Categories(), nil
	case domain.KindTransaction:
		return b.Transactions(), nil
	case domain.KindCustomer:
		return b.Customers(), nil
	case domain.KindCustomerTransaction:
		return b.CustomerTransactions(), nil
	case domain.KindSalary:
		return b.Salaries(), nil
	case domain.KindBonus:
		return b.Bonuses(), nil
	case domain.KindCommission:
		return b.Commissions(), nil
	case domain.KindAuditLog:
		return b.AuditLogs(), nil
	case domain.KindCustomerCount:
		return b.CustomerCounts(), nil
	}
	return nil, fmt.Errorf("unknown kind %q", k)
}

// Counts returns the number of records per kind.
func Counts(ctx context.Context, b Backend) (map[domain.Kind]int, error) {
	out := make(map[domain.Kind]int, len(domain.DeletionOrder()))
	for _, k := range domain.DeletionOrder() {
		c, err := CollectionOf(b, k)
		if err != nil {
			return nil, err
		}
		n, err := c.Count(ctx, Query{})
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// Wipe deletes every record of b, children before parents, and returns the
// number of deleted records per kind. It stops at the first failure and
// returns the counts gathered so far.
func Wipe(ctx context.Context, b Backend) (map[domain.Kind]int, error) {
	out := make(map[domain.Kind]int, len(domain.DeletionOrder()))
	for _, k := range domain.DeletionOrder() {
		c, err := CollectionOf(b, k)
		if err != nil {
			return out, err
		}
		n, err := c.DeleteAll(ctx)
		if err != nil {
			return out, fmt.Errorf("delete %s: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}
