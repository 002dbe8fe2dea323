package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Salary is a monthly salary payment for a member.
type Salary struct {
	Meta
	MemberID uuid.UUID       `json:"memberId" db:"member_id"`
	Amount   decimal.Decimal `json:"amount"   db:"amount"`
	Month    int             `json:"month"    db:"month"`
	Year     int             `json:"year"     db:"year"`
	Status   PayStatus       `json:"status"   db:"status"`
	PaidAt   *time.Time      `json:"paidAt"   db:"paid_at"`
}

// Period returns the year and month the salary belongs to.
func (s Salary) Period() (int, time.Month) { return s.Year, time.Month(s.Month) }

// Bonus is a one-off payment to a member.
type Bonus struct {
	Meta
	MemberID uuid.UUID       `json:"memberId" db:"member_id"`
	Amount   decimal.Decimal `json:"amount"   db:"amount"`
	Reason   string          `json:"reason"   db:"reason"`
	Date     time.Time       `json:"date"     db:"date"`
	Status   PayStatus       `json:"status"   db:"status"`
}

// Period returns the year and month of the bonus date.
func (b Bonus) Period() (int, time.Month) { return b.Date.Year(), b.Date.Month() }

// Commission is a sales-based payment to a member, optionally tied to the
// customer that generated the sale.
type Commission struct {
	Meta
	MemberID    uuid.UUID       `json:"memberId"    db:"member_id"`
	CustomerID  *uuid.UUID      `json:"customerId"  db:"customer_id"`
	Amount      decimal.Decimal `json:"amount"      db:"amount"`
	Percentage  decimal.Decimal `json:"percentage"  db:"percentage"`
	SalesAmount decimal.Decimal `json:"salesAmount" db:"sales_amount"`
	Date        time.Time       `json:"date"        db:"date"`
	Status      PayStatus       `json:"status"      db:"status"`
}

// Period returns the year and month of the commission date.
func (c Commission) Period() (int, time.Month) { return c.Date.Year(), c.Date.Month() }

// CommissionAmount computes salesAmount × percentage / 100.
func CommissionAmount(sales, percentage decimal.Decimal) decimal.Decimal {
	return sales.Mul(percentage).Div(decimal.NewFromInt(100)).Round(2)
}
