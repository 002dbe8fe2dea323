package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

// Store is the durable backend.
type Store struct {
	db  DB
	tx  *TxManager
	now func() time.Time

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

var _ store.Backend = (*Store)(nil)

// New creates a Store on top of db (normally a *pgxpool.Pool).
func New(db DB) *Store {
	s := &Store{
		db:  db,
		tx:  NewTxManager(db),
		now: func() time.Time { return time.Now().UTC() },
	}
	s.teams = &table[domain.Team, *domain.Team]{kind: domain.KindTeam, db: db, now: s.clock}
	s.members = &table[domain.Member, *domain.Member]{kind: domain.KindMember, db: db, now: s.clock}
	s.categories = &table[domain.Category, *domain.Category]{kind: domain.KindCategory, db: db, now: s.clock}
	s.transactions = &table[domain.Transaction, *domain.Transaction]{kind: domain.KindTransaction, db: db, now: s.clock}
	s.customers = &table[domain.Customer, *domain.Customer]{kind: domain.KindCustomer, db: db, now: s.clock}
	s.customerTransactions = &table[domain.CustomerTransaction, *domain.CustomerTransaction]{kind: domain.KindCustomerTransaction, db: db, now: s.clock}
	s.salaries = &table[domain.Salary, *domain.Salary]{kind: domain.KindSalary, db: db, now: s.clock}
	s.bonuses = &table[domain.Bonus, *domain.Bonus]{kind: domain.KindBonus, db: db, now: s.clock}
	s.commissions = &table[domain.Commission, *domain.Commission]{kind: domain.KindCommission, db: db, now: s.clock}
	s.auditLogs = &table[domain.AuditLog, *domain.AuditLog]{kind: domain.KindAuditLog, db: db, now: s.clock}
	s.customerCounts = &table[domain.CustomerCountSnapshot, *domain.CustomerCountSnapshot]{kind: domain.KindCustomerCount, db: db, now: s.clock}
	return s
}

// clock truncates to microseconds, the precision of timestamptz.
func (s *Store) clock() time.Time { return s.now().Truncate(time.Microsecond) }

func (s *Store) Name() string { return store.NameDurable }

func (s *Store) Ping(ctx context.Context) error {
	return mapError(s.db.Ping(ctx), "ping")
}

func (s *Store) Teams() store.Repo[domain.Team] { return s.teams }
func (s *Store) Members() store.Repo[domain.Member] { return s.members }
func (s *Store) Categories() store.Repo[domain.Category] { return s.categories }
func (s *Store) Transactions() store.Repo[domain.Transaction] {
	return s.transactions
}
func (s *Store) Customers() store.Repo[domain.Customer] { return s.customers }
func (s *Store) CustomerTransactions() store.Repo[domain.CustomerTransaction] {
	return s.customerTransactions
}
func (s *Store) Salaries() store.Repo[domain.Salary] { return s.salaries }
func (s *Store) Bonuses() store.Repo[domain.Bonus] { return s.bonuses }
func (s *Store) Commissions() store.Repo[domain.Commission] { return s.commissions }
func (s *Store) AuditLogs() store.Repo[domain.AuditLog] { return s.auditLogs }
func (s *Store) CustomerCounts() store.Repo[domain.CustomerCountSnapshot] {
	return s.customerCounts
}

// RunInTx runs fn in a read-committed transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) error {
	return s.tx.RunInTx(ctx, pgx.TxOptions{}, func(ctx context.Context) error {
		return fn(ctx, s)
	})
}

// View runs fn in a read-only repeatable-read transaction so that every
// collection it loads comes from the same snapshot.
func (s *Store) View(ctx context.Context, fn func(ctx context.Context, b store.Backend) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	return s.tx.RunInTx(ctx, opts, func(ctx context.Context) error {
		return fn(ctx, s)
	})
}
