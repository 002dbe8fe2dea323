package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dashboard is the composite read-only view served by the dashboard endpoint.
type Dashboard struct {
	Summary      Summary             `json:"summary"`
	Monthly      []MonthBucket       `json:"monthly"`
	Categories   []CategoryTotal     `json:"categories"`
	Compensation []CompensationMonth `json:"compensation"`
	Customers    CustomerStats       `json:"customers"`
	Teams        []TeamTotal         `json:"teams"`
}

// Summary holds the headline totals.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	PaidCompensation decimal.Decimal `json:"paidCompensation"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	TransactionCount int             `json:"transactionCount"`
	TeamCount        int             `json:"teamCount"`
	MemberCount      int             `json:"memberCount"`
	CustomerCount    int             `json:"customerCount"`
}

// MonthBucket is one (year, month) point of the income/expense series.
type MonthBucket struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"name"`
	Type       FlowType        `json:"type"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
}

// CompensationMonth is one month of the compensation trend.
type CompensationMonth struct {
	Month      int             `json:"month"`
	Salary     decimal.Decimal `json:"salary"`
	Bonus      decimal.Decimal `json:"bonus"`
	Commission decimal.Decimal `json:"commission"`
	Total      decimal.Decimal `json:"total"`
}

// CustomerStats summarises the customer book.
type CustomerStats struct {
	TotalCustomers      int                    `json:"totalCustomers"`
	NewCustomers        int                    `json:"newCustomers"`
	DepositCustomers    int                    `json:"depositCustomers"`
	TotalAmount         decimal.Decimal        `json:"totalAmount"`
	ExpensePerCustomer  decimal.Decimal        `json:"expensePerCustomer"`
	ExpensePerTeam      decimal.Decimal        `json:"expensePerTeam"`
	LatestCountSnapshot *CustomerCountSnapshot `json:"latestCountSnapshot"`
}

// TeamTotal is the per-team income/expense rollup.
type TeamTotal struct {
	TeamID      uuid.UUID       `json:"teamId"`
	Name        string          `json:"name"`
	Budget      decimal.Decimal `json:"budget"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	MemberCount int             `json:"memberCount"`
}
