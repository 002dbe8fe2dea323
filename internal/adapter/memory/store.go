// Package memory implements the process-local mirror backend.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

// maxJournal bounds the fallback journal; the oldest entries are dropped.
const maxJournal = 1000

// Collections holds every collection, most recent record first.
type Collections struct {
	Teams                []domain.Team                  `json:"teams"`
	Members              []domain.Member                `json:"members"`
	Categories           []domain.Category              `json:"categories"`
	Transactions         []domain.Transaction           `json:"transactions"`
	Customers            []domain.Customer              `json:"customers"`
	CustomerTransactions []domain.CustomerTransaction   `json:"customerTransactions"`
	Salaries             []domain.Salary                `json:"salaries"`
	Bonuses              []domain.Bonus                 `json:"bonuses"`
	Commissions          []domain.Commission            `json:"commissions"`
	AuditLogs            []domain.AuditLog              `json:"auditLogs"`
	CustomerCounts       []domain.CustomerCountSnapshot `json:"customerCounts"`
}

func (s *Collections) clone() Collections {
	return Collections{
		Teams:                cloneSlice(s.Teams),
		Members:              cloneSlice(s.Members),
		Categories:           cloneSlice(s.Categories),
		Transactions:         cloneSlice(s.Transactions),
		Customers:            cloneSlice(s.Customers),
		CustomerTransactions: cloneSlice(s.CustomerTransactions),
		Salaries:             cloneSlice(s.Salaries),
		Bonuses:              cloneSlice(s.Bonuses),
		Commissions:          cloneSlice(s.Commissions),
		AuditLogs:            cloneSlice(s.AuditLogs),
		CustomerCounts:       cloneSlice(s.CustomerCounts),
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Store is the mirror backend. One RWMutex guards all collections.
//
// The Store itself can be used as a store.Backend: each repository call then
// takes the lock on its own. RunInTx and View hold the lock for the whole
// callback and hand it an unlocked backend.
type Store struct {
	mu      sync.RWMutex
	data    Collections
	journal []domain.FallbackEvent
	now     func() time.Time

	rw *txBackend
	ro *txBackend
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(s)
	}
	s.rw = newTxBackend(&s.data, s.now, false)
	s.ro = newTxBackend(&s.data, s.now, true)
	return s
}

var _ store.Backend = (*Store)(nil)

func (s *Store) Name() string { return store.NameMirror }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Teams() store.Repo[domain.Team] {
	return locked(&s.mu, s.rw.teams)
}

func (s *Store) Members() store.Repo[domain.Member] {
	return locked(&s.mu, s.rw.members)
}

func (s *Store) Categories() store.Repo[domain.Category] {
	return locked(&s.mu, s.rw.categories)
}

func (s *Store) Transactions() store.Repo[domain.Transaction] {
	return locked(&s.mu, s.rw.transactions)
}

func (s *Store) Customers() store.Repo[domain.Customer] {
	return locked(&s.mu, s.rw.customers)
}

func (s *Store) CustomerTransactions() store.Repo[domain.CustomerTransaction] {
	return locked(&s.mu, s.rw.customerTransactions)
}

func (s *Store) Salaries() store.Repo[domain.Salary] {
	return locked(&s.mu, s.rw.salaries)
}

func (s *Store) Bonuses() store.Repo[domain.Bonus] {
	return locked(&s.mu, s.rw.bonuses)
}

func (s *Store) Commissions() store.Repo[domain.Commission] {
	return locked(&s.mu, s.rw.commissions)
}

func (s *Store) AuditLogs() store.Repo[domain.AuditLog] {
	return locked(&s.mu, s.rw.auditLogs)
}

func (s *Store) CustomerCounts() store.Repo[domain.CustomerCountSnapshot] {
	return locked(&s.mu, s.rw.customerCounts)
}

// RunInTx runs fn under the write lock. If fn fails or panics, every
// collection is restored to its state before the call.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.data.clone()
	defer func() {
		if r := recover(); r != nil {
			s.data = saved
			panic(r)
		}
	}()

	if err := fn(ctx, s.rw); err != nil {
		s.data = saved
		return err
	}
	return nil
}

// View runs fn under the read lock against a read-only backend.
func (s *Store) View(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, s.ro)
}

// ResetAllData clears every collection and the fallback journal.
func (s *Store) ResetAllData() {
	_, _ = s.ResetWith(context.Background(), nil)
}

// ResetWith clears every collection and the fallback journal and then runs
// fn against the empty store, all under one write lock. It returns the
// per-kind counts that were cleared. If fn fails or panics the previous
// content, journal included, is restored.
func (s *Store) ResetWith(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) (map[domain.Kind]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := store.Counts(ctx, s.rw)
	if err != nil {
		return nil, err
	}

	saved, savedJournal := s.data.clone(), s.journal
	restore := func() { s.data, s.journal = saved, savedJournal }
	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()

	s.data = Collections{}
	s.journal = nil
	if fn == nil {
		return deleted, nil
	}
	if err := fn(ctx, s.rw); err != nil {
		restore()
		return nil, err
	}
	return deleted, nil
}

// Replace atomically swaps the whole collection of T for rows.
func Replace[T any](s *Store, rows []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setCollection(&s.data, rows)
}

func setCollection[T any](d *Collections, rows []T) error {
	slot, err := slotOf[T](d)
	if err != nil {
		return err
	}
	*slot = cloneSlice(rows)
	return nil
}

// replaceAll swaps every collection of d for the one in src.
func (d *Collections) replaceAll(src Collections) error {
	return errors.Join(
		setCollection(d, src.Teams),
		setCollection(d, src.Members),
		setCollection(d, src.Categories),
		setCollection(d, src.Transactions),
		setCollection(d, src.Customers),
		setCollection(d, src.CustomerTransactions),
		setCollection(d, src.Salaries),
		setCollection(d, src.Bonuses),
		setCollection(d, src.Commissions),
		setCollection(d, src.AuditLogs),
		setCollection(d, src.CustomerCounts),
	)
}

func slotOf[T any](d *Collections) (*[]T, error) {
	var p any
	switch any((*T)(nil)).(type) {
	case *domain.Team:
		p = &d.Teams
	case *domain.Member:
		p = &d.Members
	case *domain.Category:
		p = &d.Categories
	case *domain.Transaction:
		p = &d.Transactions
	case *domain.Customer:
		p = &d.Customers
	case *domain.CustomerTransaction:
		p = &d.CustomerTransactions
	case *domain.Salary:
		p = &d.Salaries
	case *domain.Bonus:
		p = &d.Bonuses
	case *domain.Commission:
		p = &d.Commissions
	case *domain.AuditLog:
		p = &d.AuditLogs
	case *domain.CustomerCountSnapshot:
		p = &d.CustomerCounts
	default:
		var zero T
		return nil, fmt.Errorf("memory: no collection for %T", zero)
	}
	return p.(*[]T), nil
}

// AppendFallback records a write that the mirror served in place of the
// durable store.
func (s *Store) AppendFallback(ev domain.FallbackEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID == uuid.Nil {
		ev.ID = domain.NewID()
	}
	if ev.At.IsZero() {
		ev.At = s.now()
	}
	s.journal = append(s.journal, ev)
	if over := len(s.journal) - maxJournal; over > 0 {
		s.journal = append([]domain.FallbackEvent(nil), s.journal[over:]...)
	}
}

// FallbackEvents returns the journal, oldest first.
func (s *Store) FallbackEvents() []domain.FallbackEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.journal)
}

// txBackend is the unlocked view handed to RunInTx and View callbacks.
type txBackend struct {
	teams                *table[domain.Team, *domain.Team]
	members              *table[domain.Member, *domain.Member]
	categories           *table[domain.Category, *domain.Category]
	transactions         *table[domain.Transaction, *domain.Transaction]
	customers            *table[domain.Customer, *domain.Customer]
	customerTransactions *table[domain.CustomerTransaction, *domain.CustomerTransaction]
	salaries             *table[domain.Salary, *domain.Salary]
	bonuses              *table[domain.Bonus, *domain.Bonus]
	commissions          *table[domain.Commission, *domain.Commission]
	auditLogs            *table[domain.AuditLog, *domain.AuditLog]
	customerCounts       *table[domain.CustomerCountSnapshot, *domain.CustomerCountSnapshot]
}

func newTxBackend(d *Collections, now func() time.Time, readOnly bool) *txBackend {
	return &txBackend{
		teams: &table[domain.Team, *domain.Team]{
			kind: domain.KindTeam, rows: &d.Teams, now: now, readOnly: readOnly,
			unique: func(t *domain.Team) (string, string) { return "name", domain.NormalizeKey(t.Name) },
		},
		members: &table[domain.Member, *domain.Member]{
			kind: domain.KindMember, rows: &d.Members, now: now, readOnly: readOnly,
			unique: func(m *domain.Member) (string, string) { return "email", domain.NormalizeKey(m.Email) },
		},
		categories:           &table[domain.Category, *domain.Category]{kind: domain.KindCategory, rows: &d.Categories, now: now, readOnly: readOnly},
		transactions:         &table[domain.Transaction, *domain.Transaction]{kind: domain.KindTransaction, rows: &d.Transactions, now: now, readOnly: readOnly},
		customers:            &table[domain.Customer, *domain.Customer]{kind: domain.KindCustomer, rows: &d.Customers, now: now, readOnly: readOnly},
		customerTransactions: &table[domain.CustomerTransaction, *domain.CustomerTransaction]{kind: domain.KindCustomerTransaction, rows: &d.CustomerTransactions, now: now, readOnly: readOnly},
		salaries:             &table[domain.Salary, *domain.Salary]{kind: domain.KindSalary, rows: &d.Salaries, now: now, readOnly: readOnly},
		bonuses:              &table[domain.Bonus, *domain.Bonus]{kind: domain.KindBonus, rows: &d.Bonuses, now: now, readOnly: readOnly},
		commissions:          &table[domain.Commission, *domain.Commission]{kind: domain.KindCommission, rows: &d.Commissions, now: now, readOnly: readOnly},
		auditLogs:            &table[domain.AuditLog, *domain.AuditLog]{kind: domain.KindAuditLog, rows: &d.AuditLogs, now: now, readOnly: readOnly},
		customerCounts:       &table[domain.CustomerCountSnapshot, *domain.CustomerCountSnapshot]{kind: domain.KindCustomerCount, rows: &d.CustomerCounts, now: now, readOnly: readOnly},
	}
}

func (b *txBackend) Name() string { return store.NameMirror }
func (b *txBackend) Ping(context.Context) error { return nil }
func (b *txBackend) Teams() store.Repo[domain.Team] { return b.teams }
func (b *txBackend) Members() store.Repo[domain.Member] { return b.members }
func (b *txBackend) Categories() store.Repo[domain.Category] { return b.categories }
func (b *txBackend) Transactions() store.Repo[domain.Transaction] { return b.transactions }
func (b *txBackend) Customers() store.Repo[domain.Customer] { return b.customers }
func (b *txBackend) Salaries() store.Repo[domain.Salary] { return b.salaries }
func (b *txBackend) Bonuses() store.Repo[domain.Bonus] { return b.bonuses }
func (b *txBackend) Commissions() store.Repo[domain.Commission] { return b.commissions }
func (b *txBackend) AuditLogs() store.Repo[domain.AuditLog] { return b.auditLogs }
func (b *txBackend) CustomerTransactions() store.Repo[domain.CustomerTransaction] {
	return b.customerTransactions
}
func (b *txBackend) CustomerCounts() store.Repo[domain.CustomerCountSnapshot] {
	return b.customerCounts
}

// RunInTx on an unlocked backend joins the enclosing operation.
func (b *txBackend) RunInTx(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) error {
	return fn(ctx, b)
}

func (b *txBackend) View(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) error {
	return fn(ctx, b)
}
