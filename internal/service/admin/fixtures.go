package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

var fixtureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("fms:fixtures"))

// FixtureID returns the stable id of the named fixture, identical in every
// backend and every run.
func FixtureID(name string) uuid.UUID {
	return uuid.NewSHA1(fixtureNamespace, []byte(name))
}

// Fixtures is the demo data set written by a seeding reset.
type Fixtures struct {
	Teams                []domain.Team
	Members              []domain.Member
	Categories           []domain.Category
	Transactions         []domain.Transaction
	Customers            []domain.Customer
	CustomerTransactions []domain.CustomerTransaction
	Salaries             []domain.Salary
	Bonuses              []domain.Bonus
	Commissions          []domain.Commission
	CustomerCounts       []domain.CustomerCountSnapshot
}

func meta(name string, at time.Time) domain.Meta {
	return domain.Meta{ID: FixtureID(name), CreatedAt: at, UpdatedAt: at}
}

func ref(name string) *uuid.UUID {
	id := FixtureID(name)
	return &id
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// BuildFixtures returns the fixtures with dates relative to now. Derived
// fields (category spent, customer total) are left at zero.
func BuildFixtures(now time.Time) Fixtures {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthsAgo := func(n int) time.Time { return day.AddDate(0, -n, 0) }
	daysAgo := func(n int) time.Time { return day.AddDate(0, 0, -n) }

	f := Fixtures{
		Teams: []domain.Team{
			{Meta: meta("team:sales", daysAgo(400)), Name: "Sales", Leader: "Niran", Budget: money(150000), Color: "#2563eb"},
			{Meta: meta("team:operations", daysAgo(400)), Name: "Operations", Leader: "Pim", Budget: money(90000), Color: "#16a34a"},
		},
		Members: []domain.Member{
			{
				Meta: meta("member:niran", daysAgo(390)), Name: "Niran", Email: "niran@example.com",
				Role: "lead", Position: "Sales lead", Department: "Sales", Salary: money(45000),
				HireDate: daysAgo(390), Status: domain.MemberStatusActive, TeamID: ref("team:sales"),
			},
			{
				Meta: meta("member:ploy", daysAgo(200)), Name: "Ploy", Email: "ploy@example.com",
				Role: "agent", Position: "Sales agent", Department: "Sales", Salary: money(28000),
				HireDate: daysAgo(200), Status: domain.MemberStatusActive, TeamID: ref("team:sales"),
			},
			{
				Meta: meta("member:pim", daysAgo(380)), Name: "Pim", Email: "pim@example.com",
				Role: "lead", Position: "Operations lead", Department: "Operations", Salary: money(40000),
				HireDate: daysAgo(380), Status: domain.MemberStatusActive, TeamID: ref("team:operations"),
			},
		},
		Categories: []domain.Category{
			{Meta: meta("category:revenue", daysAgo(400)), Name: "Revenue", Type: domain.FlowIncome, Color: "#22c55e", Icon: "trending-up"},
			{Meta: meta("category:marketing", daysAgo(400)), Name: "Marketing", Type: domain.FlowExpense, Budget: money(60000), Color: "#f97316", Icon: "megaphone"},
			{Meta: meta("category:office", daysAgo(400)), Name: "Office", Type: domain.FlowExpense, Budget: money(30000), Color: "#64748b", Icon: "building"},
		},
		Customers: []domain.Customer{
			{
				Meta: meta("customer:somchai", daysAgo(10)), Name: "Somchai", Phone: "0810000001",
				Type: domain.CustomerTypeDeposit, InitialAmount: money(1000), Status: domain.CustomerStatusActive,
				TeamID: ref("team:sales"), MemberID: ref("member:ploy"),
			},
			{
				Meta: meta("customer:malee", daysAgo(90)), Name: "Malee", Phone: "0810000002",
				Type: domain.CustomerTypeExtension, InitialAmount: money(5000), ExtensionAmount: money(500),
				Status: domain.CustomerStatusActive, TeamID: ref("team:sales"), MemberID: ref("member:niran"),
			},
		},
	}

	for i := range 6 {
		n := fmt.Sprintf("%d", i)
		f.Transactions = append(f.Transactions,
			domain.Transaction{
				Meta: meta("transaction:revenue:"+n, monthsAgo(i)), Title: "Monthly revenue",
				Amount: 80000 + int64(i)*5000, Type: domain.FlowIncome, Date: monthsAgo(i),
				CategoryID: FixtureID("category:revenue"), TeamID: ref("team:sales"),
			},
			domain.Transaction{
				Meta: meta("transaction:marketing:"+n, monthsAgo(i)), Title: "Ads",
				Amount: 12000 + int64(i)*1000, Type: domain.FlowExpense, Date: monthsAgo(i),
				CategoryID: FixtureID("category:marketing"), TeamID: ref("team:sales"), MemberID: ref("member:niran"),
			},
		)
	}
	f.Transactions = append(f.Transactions, domain.Transaction{
		Meta: meta("transaction:office:rent", monthsAgo(1)), Title: "Office rent",
		Amount: 25000, Type: domain.FlowExpense, Date: monthsAgo(1),
		CategoryID: FixtureID("category:office"), TeamID: ref("team:operations"),
	})

	f.CustomerTransactions = []domain.CustomerTransaction{
		{Meta: meta("customer-tx:somchai:deposit", daysAgo(9)), CustomerID: FixtureID("customer:somchai"), Amount: money(200), Type: domain.CustomerTxDeposit, Date: daysAgo(9)},
		{Meta: meta("customer-tx:somchai:withdrawal", daysAgo(3)), CustomerID: FixtureID("customer:somchai"), Amount: money(300), Type: domain.CustomerTxWithdrawal, Date: daysAgo(3)},
		{Meta: meta("customer-tx:malee:deposit", daysAgo(60)), CustomerID: FixtureID("customer:malee"), Amount: money(2500), Type: domain.CustomerTxDeposit, Date: daysAgo(60)},
	}

	paidAt := daysAgo(5)
	prev := monthsAgo(1)
	f.Salaries = []domain.Salary{
		{Meta: meta("salary:niran:prev", prev), MemberID: FixtureID("member:niran"), Amount: money(45000), Month: int(prev.Month()), Year: prev.Year(), Status: domain.PayStatusPaid, PaidAt: &paidAt},
		{Meta: meta("salary:pim:prev", prev), MemberID: FixtureID("member:pim"), Amount: money(40000), Month: int(prev.Month()), Year: prev.Year(), Status: domain.PayStatusPaid, PaidAt: &paidAt},
		{Meta: meta("salary:ploy:current", day), MemberID: FixtureID("member:ploy"), Amount: money(28000), Month: int(day.Month()), Year: day.Year(), Status: domain.PayStatusPending},
	}
	f.Bonuses = []domain.Bonus{
		{Meta: meta("bonus:ploy", daysAgo(7)), MemberID: FixtureID("member:ploy"), Amount: money(3000), Reason: "Quarter target", Date: daysAgo(7), Status: domain.PayStatusPaid},
	}
	f.Commissions = []domain.Commission{
		{
			Meta: meta("commission:ploy:somchai", daysAgo(9)), MemberID: FixtureID("member:ploy"), CustomerID: ref("customer:somchai"),
			SalesAmount: money(20000), Percentage: money(5), Amount: domain.CommissionAmount(money(20000), money(5)),
			Date: daysAgo(9), Status: domain.PayStatusPending,
		},
	}
	f.CustomerCounts = []domain.CustomerCountSnapshot{
		{Meta: meta("customer-count:latest", daysAgo(1)), NewCount: 1, DepositCount: 1, ExtensionCount: 1, TotalCount: 3, TeamID: ref("team:sales"), Date: daysAgo(1)},
	}
	return f
}

// seed writes the fixtures through b, parents before children, and applies
// the derived aggregates.
func (s *Service) seed(ctx context.Context, b store.Backend, now time.Time) (map[domain.Kind]int, error) {
	f := BuildFixtures(now)
	out := make(map[domain.Kind]int)

	steps := []struct {
		kind domain.Kind
		run  func() (int, error)
	}{
		{domain.KindTeam, func() (int, error) { return insertAll(ctx, b.Teams(), f.Teams) }},
		{domain.KindCategory, func() (int, error) { return insertAll(ctx, b.Categories(), f.Categories) }},
		{domain.KindMember, func() (int, error) { return insertAll(ctx, b.Members(), f.Members) }},
		{domain.KindCustomer, func() (int, error) { return insertAll(ctx, b.Customers(), f.Customers) }},
		{domain.KindCustomerCount, func() (int, error) { return insertAll(ctx, b.CustomerCounts(), f.CustomerCounts) }},
		{domain.KindTransaction, func() (int, error) {
			for _, tx := range f.Transactions {
				created, err := b.Transactions().Create(ctx, tx)
				if err != nil {
					return 0, err
				}
				if err := s.aggregates.ApplyTransactionCreate(ctx, b, created); err != nil {
					return 0, err
				}
			}
			return len(f.Transactions), nil
		}},
		{domain.KindCustomerTransaction, func() (int, error) {
			n, err := insertAll(ctx, b.CustomerTransactions(), f.CustomerTransactions)
			if err != nil {
				return 0, err
			}
			for _, c := range f.Customers {
				if err := s.aggregates.RecomputeCustomerTotal(ctx, b, c.ID); err != nil {
					return 0, err
				}
			}
			return n, nil
		}},
		{domain.KindSalary, func() (int, error) { return insertAll(ctx, b.Salaries(), f.Salaries) }},
		{domain.KindBonus, func() (int, error) { return insertAll(ctx, b.Bonuses(), f.Bonuses) }},
		{domain.KindCommission, func() (int, error) { return insertAll(ctx, b.Commissions(), f.Commissions) }},
	}

	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return out, fmt.Errorf("seed %s: %w", step.kind, err)
		}
		out[step.kind] = n
	}
	return out, nil
}

func insertAll[T any](ctx context.Context, r store.Repo[T], rows []T) (int, error) {
	for _, row := range rows {
		if _, err := r.Create(ctx, row); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}
