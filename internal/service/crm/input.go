package crm

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
)

const (
	maxNameLength    = 200
	maxTextLength    = 2000
	defaultListLimit = 500
	maxListLimit     = 5000
)

// CreateCustomerInput holds the parameters for creating a customer.
type CreateCustomerInput struct {
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Type            domain.CustomerType   `json:"type"`
	InitialAmount   decimal.Decimal       `json:"initialAmount"`
	ExtensionAmount decimal.Decimal       `json:"extensionAmount"`
	TeamID          *uuid.UUID            `json:"teamId"`
	MemberID        *uuid.UUID            `json:"memberId"`
	Status          domain.CustomerStatus `json:"status"`
	Notes           string                `json:"notes"`
}

// Validate checks all fields and collects all errors.
func (i CreateCustomerInput) Validate() error {
	var errs []domain.FieldError
	errs = checkName(errs, "name", i.Name)
	errs = checkEmail(errs, "email", i.Email)
	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be new, deposit or extension"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or inactive"})
	}
	errs = checkMoney(errs, "initialAmount", i.InitialAmount)
	errs = checkMoney(errs, "extensionAmount", i.ExtensionAmount)
	if len(i.Notes) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}
	return asValidation(errs)
}

// UpdateCustomerInput holds the parameters for updating a customer. Nil
// fields are left unchanged; the Clear flags remove optional references.
type UpdateCustomerInput struct {
	ID              uuid.UUID              `json:"-"`
	Name            *string                `json:"name"`
	Email           *string                `json:"email"`
	Phone           *string                `json:"phone"`
	Type            *domain.CustomerType   `json:"type"`
	InitialAmount   *decimal.Decimal       `json:"initialAmount"`
	ExtensionAmount *decimal.Decimal       `json:"extensionAmount"`
	TeamID          *uuid.UUID             `json:"teamId"`
	MemberID        *uuid.UUID             `json:"memberId"`
	ClearTeam       bool                   `json:"clearTeam"`
	ClearMember     bool                   `json:"clearMember"`
	Status          *domain.CustomerStatus `json:"status"`
	Notes           *string                `json:"notes"`
}

// Validate checks all fields and collects all errors.
func (i UpdateCustomerInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil {
		errs = checkName(errs, "name", *i.Name)
	}
	if i.Email != nil {
		errs = checkEmail(errs, "email", *i.Email)
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be new, deposit or extension"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or inactive"})
	}
	if i.InitialAmount != nil {
		errs = checkMoney(errs, "initialAmount", *i.InitialAmount)
	}
	if i.ExtensionAmount != nil {
		errs = checkMoney(errs, "extensionAmount", *i.ExtensionAmount)
	}
	if i.Notes != nil && len(*i.Notes) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}
	if i.ClearTeam && i.TeamID != nil {
		errs = append(errs, domain.FieldError{Field: "teamId", Message: "cannot set and clear at the same time"})
	}
	if i.ClearMember && i.MemberID != nil {
		errs = append(errs, domain.FieldError{Field: "memberId", Message: "cannot set and clear at the same time"})
	}
	return asValidation(errs)
}

// changesTotal reports whether the update touches an input of TotalAmount.
func (i UpdateCustomerInput) changesTotal() bool {
	return i.InitialAmount != nil || i.ExtensionAmount != nil
}

func (i UpdateCustomerInput) apply(c *domain.Customer) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Name, i.Name)
	set(&c.Email, i.Email)
	set(&c.Phone, i.Phone)
	set(&c.Notes, i.Notes)
	if i.Type != nil {
		c.Type = *i.Type
	}
	if i.Status != nil {
		c.Status = *i.Status
	}
	if i.InitialAmount != nil {
		c.InitialAmount = *i.InitialAmount
	}
	if i.ExtensionAmount != nil {
		c.ExtensionAmount = *i.ExtensionAmount
	}
	if i.TeamID != nil {
		id := *i.TeamID
		c.TeamID = &id
	}
	if i.ClearTeam {
		c.TeamID = nil
	}
	if i.MemberID != nil {
		id := *i.MemberID
		c.MemberID = &id
	}
	if i.ClearMember {
		c.MemberID = nil
	}
}

// ListCustomersInput filters the customer list.
type ListCustomersInput struct {
	Type     domain.CustomerType
	Status   domain.CustomerStatus
	TeamID   *uuid.UUID
	MemberID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ListCustomersInput) Validate() error {
	var errs []domain.FieldError
	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be new, deposit or extension"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or inactive"})
	}
	return asValidation(errs)
}

// CreateCustomerTransactionInput holds the parameters for a movement on a
// customer's account. A zero Date means now.
type CreateCustomerTransactionInput struct {
	CustomerID  uuid.UUID             `json:"-"`
	Amount      decimal.Decimal       `json:"amount"`
	Type        domain.CustomerTxType `json:"type"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
}

// Validate checks all fields and collects all errors.
func (i CreateCustomerTransactionInput) Validate() error {
	var errs []domain.FieldError
	if i.CustomerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "customerId", Message: "required"})
	}
	if !i.Amount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be deposit, withdrawal, extension or payment"})
	}
	if len(i.Description) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	return asValidation(errs)
}

// UpdateCustomerTransactionInput holds the parameters for editing a
// customer transaction. Nil fields are left unchanged.
type UpdateCustomerTransactionInput struct {
	CustomerID  uuid.UUID              `json:"-"`
	ID          uuid.UUID              `json:"-"`
	Amount      *decimal.Decimal       `json:"amount"`
	Type        *domain.CustomerTxType `json:"type"`
	Description *string                `json:"description"`
	Date        *time.Time             `json:"date"`
}

// Validate checks all fields and collects all errors.
func (i UpdateCustomerTransactionInput) Validate() error {
	var errs []domain.FieldError
	if i.CustomerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "customerId", Message: "required"})
	}
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Amount != nil && !i.Amount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be deposit, withdrawal, extension or payment"})
	}
	if i.Description != nil && len(*i.Description) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	return asValidation(errs)
}

func (i UpdateCustomerTransactionInput) apply(t *domain.CustomerTransaction) {
	if i.Amount != nil {
		t.Amount = *i.Amount
	}
	if i.Type != nil {
		t.Type = *i.Type
	}
	if i.Description != nil {
		t.Description = strings.TrimSpace(*i.Description)
	}
	if i.Date != nil {
		t.Date = i.Date.UTC()
	}
}

// CreateCustomerCountInput holds one point of the customer-count series.
// A zero TotalCount is derived as the sum of the other counts; a zero Date
// means now.
type CreateCustomerCountInput struct {
	NewCount       int        `json:"newCount"`
	DepositCount   int        `json:"depositCount"`
	ExtensionCount int        `json:"extensionCount"`
	TotalCount     int        `json:"totalCount"`
	TeamID         *uuid.UUID `json:"teamId"`
	Date           time.Time  `json:"date"`
}

// Validate checks all fields and collects all errors.
func (i CreateCustomerCountInput) Validate() error {
	var errs []domain.FieldError
	for _, f := range []struct {
		name string
		v    int
	}{
		{"newCount", i.NewCount},
		{"depositCount", i.DepositCount},
		{"extensionCount", i.ExtensionCount},
		{"totalCount", i.TotalCount},
	} {
		if f.v < 0 {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "must not be negative"})
		}
	}
	return asValidation(errs)
}

// ListCustomerCountsInput filters the customer-count series.
type ListCustomerCountsInput struct {
	TeamID *uuid.UUID
	Limit  int
}

// Validate checks all fields and collects all errors.
func (i ListCustomerCountsInput) Validate() error {
	if i.Limit < 0 || i.Limit > maxListLimit {
		return domain.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", maxListLimit))
	}
	return nil
}

func checkName(errs []domain.FieldError, field, v string) []domain.FieldError {
	v = strings.TrimSpace(v)
	if v == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len(v) > maxNameLength {
		return append(errs, domain.FieldError{Field: field, Message: "max 200 characters"})
	}
	return errs
}

func checkEmail(errs []domain.FieldError, field, v string) []domain.FieldError {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs
	}
	if _, err := mail.ParseAddress(v); err != nil {
		return append(errs, domain.FieldError{Field: field, Message: "invalid email"})
	}
	return errs
}

func checkMoney(errs []domain.FieldError, field string, v decimal.Decimal) []domain.FieldError {
	if v.IsNegative() {
		return append(errs, domain.FieldError{Field: field, Message: "must not be negative"})
	}
	return errs
}

func asValidation(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
