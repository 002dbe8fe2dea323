package payroll

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
)

const (
	minYear         = 1970
	maxYear         = 2200
	maxReasonLength = 2000
)

var hundred = decimal.NewFromInt(100)

// CreateSalaryInput holds the parameters for a monthly salary.
type CreateSalaryInput struct {
	MemberID uuid.UUID        `json:"memberId"`
	Amount   decimal.Decimal  `json:"amount"`
	Month    int              `json:"month"`
	Year     int              `json:"year"`
	Status   domain.PayStatus `json:"status"`
	PaidAt   *time.Time       `json:"paidAt"`
}

// Validate checks all fields and collects all errors.
func (i CreateSalaryInput) Validate() error {
	var errs []domain.FieldError
	errs = checkMember(errs, i.MemberID)
	errs = checkAmount(errs, "amount", i.Amount)
	errs = checkPeriod(errs, i.Month, i.Year)
	errs = checkStatus(errs, i.Status)
	return asValidation(errs)
}

// UpdateSalaryInput holds the parameters for editing a salary. Nil fields
// are left unchanged.
type UpdateSalaryInput struct {
	ID     uuid.UUID         `json:"-"`
	Amount *decimal.Decimal  `json:"amount"`
	Month  *int              `json:"month"`
	Year   *int              `json:"year"`
	Status *domain.PayStatus `json:"status"`
	PaidAt *time.Time        `json:"paidAt"`
}

// Validate checks all fields and collects all errors.
func (i UpdateSalaryInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Amount != nil {
		errs = checkAmount(errs, "amount", *i.Amount)
	}
	if i.Month != nil && (*i.Month < 1 || *i.Month > 12) {
		errs = append(errs, domain.FieldError{Field: "month", Message: "must be between 1 and 12"})
	}
	if i.Year != nil && (*i.Year < minYear || *i.Year > maxYear) {
		errs = append(errs, domain.FieldError{Field: "year", Message: "out of range"})
	}
	if i.Status != nil {
		errs = checkStatus(errs, *i.Status)
	}
	return asValidation(errs)
}

// CreateBonusInput holds the parameters for a bonus. A zero Date means now.
type CreateBonusInput struct {
	MemberID uuid.UUID        `json:"memberId"`
	Amount   decimal.Decimal  `json:"amount"`
	Reason   string           `json:"reason"`
	Date     time.Time        `json:"date"`
	Status   domain.PayStatus `json:"status"`
}

// Validate checks all fields and collects all errors.
func (i CreateBonusInput) Validate() error {
	var errs []domain.FieldError
	errs = checkMember(errs, i.MemberID)
	errs = checkAmount(errs, "amount", i.Amount)
	if len(i.Reason) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 2000 characters"})
	}
	errs = checkStatus(errs, i.Status)
	return asValidation(errs)
}

// UpdateBonusInput holds the parameters for editing a bonus.
type UpdateBonusInput struct {
	ID     uuid.UUID         `json:"-"`
	Amount *decimal.Decimal  `json:"amount"`
	Reason *string           `json:"reason"`
	Date   *time.Time        `json:"date"`
	Status *domain.PayStatus `json:"status"`
}

// Validate checks all fields and collects all errors.
func (i UpdateBonusInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Amount != nil {
		errs = checkAmount(errs, "amount", *i.Amount)
	}
	if i.Reason != nil && len(*i.Reason) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 2000 characters"})
	}
	if i.Status != nil {
		errs = checkStatus(errs, *i.Status)
	}
	return asValidation(errs)
}

func (i UpdateBonusInput) apply(b *domain.Bonus) {
	if i.Amount != nil {
		b.Amount = *i.Amount
	}
	if i.Reason != nil {
		b.Reason = strings.TrimSpace(*i.Reason)
	}
	if i.Date != nil {
		b.Date = i.Date.UTC()
	}
	if i.Status != nil {
		b.Status = *i.Status
	}
}

// CreateCommissionInput holds the parameters for a commission. When Amount
// is nil it is derived as SalesAmount × Percentage / 100.
type CreateCommissionInput struct {
	MemberID    uuid.UUID        `json:"memberId"`
	CustomerID  *uuid.UUID       `json:"customerId"`
	Amount      *decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal  `json:"percentage"`
	SalesAmount decimal.Decimal  `json:"salesAmount"`
	Date        time.Time        `json:"date"`
	Status      domain.PayStatus `json:"status"`
}

// Validate checks all fields and collects all errors.
func (i CreateCommissionInput) Validate() error {
	var errs []domain.FieldError
	errs = checkMember(errs, i.MemberID)
	if i.Amount != nil {
		errs = checkAmount(errs, "amount", *i.Amount)
	}
	errs = checkPercentage(errs, i.Percentage)
	if i.SalesAmount.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "salesAmount", Message: "must not be negative"})
	}
	errs = checkStatus(errs, i.Status)
	return asValidation(errs)
}

// UpdateCommissionInput holds the parameters for editing a commission. When
// the sales amount or percentage change without an explicit Amount, the
// amount is derived again.
type UpdateCommissionInput struct {
	ID            uuid.UUID         `json:"-"`
	CustomerID    *uuid.UUID        `json:"customerId"`
	ClearCustomer bool              `json:"clearCustomer"`
	Amount        *decimal.Decimal  `json:"amount"`
	Percentage    *decimal.Decimal  `json:"percentage"`
	SalesAmount   *decimal.Decimal  `json:"salesAmount"`
	Date          *time.Time        `json:"date"`
	Status        *domain.PayStatus `json:"status"`
}

// Validate checks all fields and collects all errors.
func (i UpdateCommissionInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Amount != nil {
		errs = checkAmount(errs, "amount", *i.Amount)
	}
	if i.Percentage != nil {
		errs = checkPercentage(errs, *i.Percentage)
	}
	if i.SalesAmount != nil && i.SalesAmount.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "salesAmount", Message: "must not be negative"})
	}
	if i.Status != nil {
		errs = checkStatus(errs, *i.Status)
	}
	if i.ClearCustomer && i.CustomerID != nil {
		errs = append(errs, domain.FieldError{Field: "customerId", Message: "cannot set and clear at the same time"})
	}
	return asValidation(errs)
}

func (i UpdateCommissionInput) apply(c *domain.Commission) {
	if i.CustomerID != nil {
		id := *i.CustomerID
		c.CustomerID = &id
	}
	if i.ClearCustomer {
		c.CustomerID = nil
	}
	if i.Percentage != nil {
		c.Percentage = *i.Percentage
	}
	if i.SalesAmount != nil {
		c.SalesAmount = *i.SalesAmount
	}
	switch {
	case i.Amount != nil:
		c.Amount = *i.Amount
	case i.Percentage != nil || i.SalesAmount != nil:
		c.Amount = domain.CommissionAmount(c.SalesAmount, c.Percentage)
	}
	if i.Date != nil {
		c.Date = i.Date.UTC()
	}
	if i.Status != nil {
		c.Status = *i.Status
	}
}

func checkMember(errs []domain.FieldError, id uuid.UUID) []domain.FieldError {
	if id == uuid.Nil {
		return append(errs, domain.FieldError{Field: "memberId", Message: "required"})
	}
	return errs
}

func checkAmount(errs []domain.FieldError, field string, v decimal.Decimal) []domain.FieldError {
	if v.IsNegative() {
		return append(errs, domain.FieldError{Field: field, Message: "must not be negative"})
	}
	return errs
}

func checkPercentage(errs []domain.FieldError, v decimal.Decimal) []domain.FieldError {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return append(errs, domain.FieldError{Field: "percentage", Message: "must be between 0 and 100"})
	}
	return errs
}

func checkPeriod(errs []domain.FieldError, month, year int) []domain.FieldError {
	if month < 1 || month > 12 {
		errs = append(errs, domain.FieldError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < minYear || year > maxYear {
		errs = append(errs, domain.FieldError{Field: "year", Message: "out of range"})
	}
	return errs
}

func checkStatus(errs []domain.FieldError, s domain.PayStatus) []domain.FieldError {
	if s != "" && !s.IsValid() {
		return append(errs, domain.FieldError{Field: "status", Message: "must be pending or paid"})
	}
	return errs
}

func asValidation(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
