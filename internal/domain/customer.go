package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a client account. TotalAmount is derived from the opening
// amounts and the customer's transactions.
type Customer struct {
	Meta
	Name            string          `json:"name"            db:"name"`
	Email           string          `json:"email"           db:"email"`
	Phone           string          `json:"phone"           db:"phone"`
	Type            CustomerType    `json:"type"            db:"type"`
	InitialAmount   decimal.Decimal `json:"initialAmount"   db:"initial_amount"`
	ExtensionAmount decimal.Decimal `json:"extensionAmount" db:"extension_amount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"     db:"total_amount"`
	TeamID          *uuid.UUID      `json:"teamId"          db:"team_id"`
	MemberID        *uuid.UUID      `json:"memberId"        db:"member_id"`
	Status          CustomerStatus  `json:"status"          db:"status"`
	Notes           string          `json:"notes"           db:"notes"`
}

// CustomerTransaction is a movement on a customer's account.
type CustomerTransaction struct {
	Meta
	CustomerID  uuid.UUID       `json:"customerId"  db:"customer_id"`
	Amount      decimal.Decimal `json:"amount"      db:"amount"`
	Type        CustomerTxType  `json:"type"        db:"type"`
	Description string          `json:"description" db:"description"`
	Date        time.Time       `json:"date"        db:"date"`
}

// CustomerCountSnapshot is one point of the customer-count time series.
type CustomerCountSnapshot struct {
	Meta
	NewCount       int        `json:"newCount"       db:"new_count"`
	DepositCount   int        `json:"depositCount"   db:"deposit_count"`
	ExtensionCount int        `json:"extensionCount" db:"extension_count"`
	TotalCount     int        `json:"totalCount"     db:"total_count"`
	TeamID         *uuid.UUID `json:"teamId"         db:"team_id"`
	Date           time.Time  `json:"date"           db:"date"`
}
