package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Team is an organisational unit referenced by members, customers and
// transactions.
type Team struct {
	Meta
	Name        string          `json:"name"        db:"name"`
	Description string          `json:"description" db:"description"`
	Leader      string          `json:"leader"      db:"leader"`
	Budget      decimal.Decimal `json:"budget"      db:"budget"`
	Color       string          `json:"color"       db:"color"`
}

// Member is a person on the payroll.
type Member struct {
	Meta
	Name        string          `json:"name"        db:"name"`
	Email       string          `json:"email"       db:"email"`
	Phone       string          `json:"phone"       db:"phone"`
	BankName    string          `json:"bankName"    db:"bank_name"`
	BankAccount string          `json:"bankAccount" db:"bank_account"`
	Role        string          `json:"role"        db:"role"`
	Position    string          `json:"position"    db:"position"`
	Department  string          `json:"department"  db:"department"`
	Salary      decimal.Decimal `json:"salary"      db:"salary"`
	HireDate    time.Time       `json:"hireDate"    db:"hire_date"`
	Status      MemberStatus    `json:"status"      db:"status"`
	TeamID      *uuid.UUID      `json:"teamId"      db:"team_id"`
}
