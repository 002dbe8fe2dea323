package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
)

const (
	monthlyWindow   = 12
	newCustomerDays = 30
)

// Snapshot is a consistent copy of every collection the dashboard reads.
type Snapshot struct {
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

// Build reduces a snapshot to the dashboard view as of now.
func Build(snap Snapshot, now time.Time) domain.Dashboard {
	income, expense := FlowTotals(snap.Transactions)
	paid := PaidCompensation(snap.Salaries, snap.Bonuses, snap.Commissions)

	return domain.Dashboard{
		Summary: domain.Summary{
			TotalIncome:      income,
			TotalExpense:     expense,
			PaidCompensation: paid,
			NetProfit:        income.Sub(expense.Add(paid)),
			TransactionCount: len(snap.Transactions),
			TeamCount:        len(snap.Teams),
			MemberCount:      len(snap.Members),
			CustomerCount:    len(snap.Customers),
		},
		Monthly:      MonthlySeries(snap.Transactions),
		Categories:   CategoryBreakdown(snap.Categories, snap.Transactions),
		Compensation: CompensationTrend(snap.Salaries, snap.Bonuses, snap.Commissions, now.Year()),
		Customers:    CustomerStatistics(snap, expense, now),
		Teams:        TeamBreakdown(snap.Teams, snap.Members, snap.Transactions),
	}
}

// FlowTotals sums income and expense amounts.
func FlowTotals(txs []domain.Transaction) (income, expense decimal.Decimal) {
	for _, tx := range txs {
		switch tx.Type {
		case domain.FlowIncome:
			income = income.Add(tx.Money())
		case domain.FlowExpense:
			expense = expense.Add(tx.Money())
		}
	}
	return income, expense
}

// MonthlySeries groups transactions by (year, month) of their date and
// returns the most recent buckets that contain data, oldest first.
func MonthlySeries(txs []domain.Transaction) []domain.MonthBucket {
	type key struct{ year, month int }
	buckets := make(map[key]*domain.MonthBucket)

	for _, tx := range txs {
		d := tx.Date.UTC()
		k := key{d.Year(), int(d.Month())}
		b, ok := buckets[k]
		if !ok {
			b = &domain.MonthBucket{Year: k.year, Month: k.month}
			buckets[k] = b
		}
		switch tx.Type {
		case domain.FlowIncome:
			b.Income = b.Income.Add(tx.Money())
		case domain.FlowExpense:
			b.Expense = b.Expense.Add(tx.Money())
		}
	}

	out := make([]domain.MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b domain.MonthBucket) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	if len(out) > monthlyWindow {
		out = out[len(out)-monthlyWindow:]
	}
	return out
}

// CategoryBreakdown sums the transactions of each category, drops
// categories with a zero total and orders the rest by total, largest first.
func CategoryBreakdown(cats []domain.Category, txs []domain.Transaction) []domain.CategoryTotal {
	sums := make(map[uuid.UUID]decimal.Decimal, len(cats))
	for _, tx := range txs {
		sums[tx.CategoryID] = sums[tx.CategoryID].Add(tx.Money())
	}

	out := make([]domain.CategoryTotal, 0, len(cats))
	for _, c := range cats {
		total := sums[c.ID]
		if total.IsZero() {
			continue
		}
		out = append(out, domain.CategoryTotal{
			CategoryID: c.ID,
			Name:       c.Name,
			Type:       c.Type,
			Color:      c.Color,
			Total:      total,
		})
	}
	slices.SortStableFunc(out, func(a, b domain.CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// CompensationTrend returns one entry per month of year with the salary,
// bonus and commission amounts falling in that month, whatever their status.
func CompensationTrend(sal []domain.Salary, bon []domain.Bonus, com []domain.Commission, year int) []domain.CompensationMonth {
	out := make([]domain.CompensationMonth, 12)
	for i := range out {
		out[i].Month = i + 1
	}

	for _, s := range sal {
		if y, m := s.Period(); y == year && m >= time.January && m <= time.December {
			out[m-1].Salary = out[m-1].Salary.Add(s.Amount)
		}
	}
	for _, b := range bon {
		if y, m := b.Period(); y == year {
			out[m-1].Bonus = out[m-1].Bonus.Add(b.Amount)
		}
	}
	for _, c := range com {
		if y, m := c.Period(); y == year {
			out[m-1].Commission = out[m-1].Commission.Add(c.Amount)
		}
	}

	for i := range out {
		out[i].Total = out[i].Salary.Add(out[i].Bonus).Add(out[i].Commission)
	}
	return out
}

// PaidCompensation sums every salary, bonus and commission with status paid.
func PaidCompensation(sal []domain.Salary, bon []domain.Bonus, com []domain.Commission) decimal.Decimal {
	var total decimal.Decimal
	for _, s := range sal {
		if s.Status == domain.PayStatusPaid {
			total = total.Add(s.Amount)
		}
	}
	for _, b := range bon {
		if b.Status == domain.PayStatusPaid {
			total = total.Add(b.Amount)
		}
	}
	for _, c := range com {
		if c.Status == domain.PayStatusPaid {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// CustomerStatistics summarises customers. totalExpense is spread over
// customers and teams; an empty divisor yields zero.
func CustomerStatistics(snap Snapshot, totalExpense decimal.Decimal, now time.Time) domain.CustomerStats {
	stats := domain.CustomerStats{TotalCustomers: len(snap.Customers)}

	cutoff := now.AddDate(0, 0, -newCustomerDays)
	for _, c := range snap.Customers {
		if !c.CreatedAt.Before(cutoff) {
			stats.NewCustomers++
		}
		stats.TotalAmount = stats.TotalAmount.Add(c.TotalAmount)
	}

	depositors := make(map[uuid.UUID]struct{})
	for _, tx := range snap.CustomerTransactions {
		if tx.Type == domain.CustomerTxDeposit && tx.Amount.IsPositive() {
			depositors[tx.CustomerID] = struct{}{}
		}
	}
	stats.DepositCustomers = len(depositors)

	stats.ExpensePerCustomer = ratio(totalExpense, len(snap.Customers))
	stats.ExpensePerTeam = ratio(totalExpense, len(snap.Teams))

	for i := range snap.CustomerCounts {
		c := &snap.CustomerCounts[i]
		latest := stats.LatestCountSnapshot
		if latest == nil || c.Date.After(latest.Date) || (c.Date.Equal(latest.Date) && c.CreatedAt.After(latest.CreatedAt)) {
			cp := *c
			stats.LatestCountSnapshot = &cp
		}
	}
	return stats
}

// TeamBreakdown rolls transactions and members up per team, ordered by
// team name.
func TeamBreakdown(teams []domain.Team, members []domain.Member, txs []domain.Transaction) []domain.TeamTotal {
	idx := make(map[uuid.UUID]int, len(teams))
	out := make([]domain.TeamTotal, len(teams))
	for i, t := range teams {
		idx[t.ID] = i
		out[i] = domain.TeamTotal{TeamID: t.ID, Name: t.Name, Budget: t.Budget}
	}

	for _, m := range members {
		if m.TeamID == nil {
			continue
		}
		if i, ok := idx[*m.TeamID]; ok {
			out[i].MemberCount++
		}
	}
	for _, tx := range txs {
		if tx.TeamID == nil {
			continue
		}
		i, ok := idx[*tx.TeamID]
		if !ok {
			continue
		}
		switch tx.Type {
		case domain.FlowIncome:
			out[i].Income = out[i].Income.Add(tx.Money())
		case domain.FlowExpense:
			out[i].Expense = out[i].Expense.Add(tx.Money())
		}
	}

	slices.SortStableFunc(out, func(a, b domain.TeamTotal) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func ratio(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}
