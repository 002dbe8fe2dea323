package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups transactions. Spent is derived from the expense
// transactions that reference the category and is never written by clients.
type Category struct {
	Meta
	Name   string          `json:"name"   db:"name"`
	Type   FlowType        `json:"type"   db:"type"`
	Budget decimal.Decimal `json:"budget" db:"budget"`
	Spent  decimal.Decimal `json:"spent"  db:"spent"`
	Color  string          `json:"color"  db:"color"`
	Icon   string          `json:"icon"   db:"icon"`
}

// Transaction is a single income or expense movement in integer currency
// units.
type Transaction struct {
	Meta
	Title       string     `json:"title"       db:"title"`
	Description string     `json:"description" db:"description"`
	Amount      int64      `json:"amount"      db:"amount"`
	Type        FlowType   `json:"type"        db:"type"`
	Date        time.Time  `json:"date"        db:"date"`
	CategoryID  uuid.UUID  `json:"categoryId"  db:"category_id"`
	TeamID      *uuid.UUID `json:"teamId"      db:"team_id"`
	MemberID    *uuid.UUID `json:"memberId"    db:"member_id"`
}

// IsExpense reports whether the transaction counts against its category.
func (t Transaction) IsExpense() bool { return t.Type == FlowExpense }

// Money returns the amount as a decimal.
func (t Transaction) Money() decimal.Decimal { return decimal.NewFromInt(t.Amount) }
