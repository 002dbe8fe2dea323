package ledger

import (
	"fmt"
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

// CreateCategoryInput holds the parameters for creating a category. Spent is
// derived and cannot be set.
type CreateCategoryInput struct {
	Name   string          `json:"name"`
	Type   domain.FlowType `json:"type"`
	Budget decimal.Decimal `json:"budget"`
	Color  string          `json:"color"`
	Icon   string          `json:"icon"`
}

// Validate checks all fields and collects all errors.
func (i CreateCategoryInput) Validate() error {
	var errs []domain.FieldError
	errs = checkName(errs, "name", i.Name)
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be income or expense"})
	}
	if i.Budget.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "budget", Message: "must not be negative"})
	}
	return asValidation(errs)
}

// UpdateCategoryInput holds the parameters for updating a category. Nil
// fields are left unchanged.
type UpdateCategoryInput struct {
	ID     uuid.UUID        `json:"-"`
	Name   *string          `json:"name"`
	Type   *domain.FlowType `json:"type"`
	Budget *decimal.Decimal `json:"budget"`
	Color  *string          `json:"color"`
	Icon   *string          `json:"icon"`
}

// Validate checks all fields and collects all errors.
func (i UpdateCategoryInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil {
		errs = checkName(errs, "name", *i.Name)
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be income or expense"})
	}
	if i.Budget != nil && i.Budget.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "budget", Message: "must not be negative"})
	}
	return asValidation(errs)
}

func (i UpdateCategoryInput) apply(c *domain.Category) {
	if i.Name != nil {
		c.Name = strings.TrimSpace(*i.Name)
	}
	if i.Type != nil {
		c.Type = *i.Type
	}
	if i.Budget != nil {
		c.Budget = *i.Budget
	}
	if i.Color != nil {
		c.Color = *i.Color
	}
	if i.Icon != nil {
		c.Icon = *i.Icon
	}
}

// CreateTransactionInput holds the parameters for booking a transaction.
// A zero Date means now.
type CreateTransactionInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      int64           `json:"amount"`
	Type        domain.FlowType `json:"type"`
	Date        time.Time       `json:"date"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	TeamID      *uuid.UUID      `json:"teamId"`
	MemberID    *uuid.UUID      `json:"memberId"`
}

// Validate checks all fields and collects all errors.
func (i CreateTransactionInput) Validate() error {
	var errs []domain.FieldError
	errs = checkName(errs, "title", i.Title)
	if len(i.Description) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be income or expense"})
	}
	if i.CategoryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "categoryId", Message: "required"})
	}
	return asValidation(errs)
}

// UpdateTransactionInput holds the parameters for editing a transaction.
// Nil fields are left unchanged; the Clear flags remove optional references.
type UpdateTransactionInput struct {
	ID          uuid.UUID        `json:"-"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *int64           `json:"amount"`
	Type        *domain.FlowType `json:"type"`
	Date        *time.Time       `json:"date"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
	TeamID      *uuid.UUID       `json:"teamId"`
	MemberID    *uuid.UUID       `json:"memberId"`
	ClearTeam   bool             `json:"clearTeam"`
	ClearMember bool             `json:"clearMember"`
}

// Validate checks all fields and collects all errors.
func (i UpdateTransactionInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title != nil {
		errs = checkName(errs, "title", *i.Title)
	}
	if i.Description != nil && len(*i.Description) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if i.Amount != nil && *i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be income or expense"})
	}
	if i.CategoryID != nil && *i.CategoryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "categoryId", Message: "must not be empty"})
	}
	if i.ClearTeam && i.TeamID != nil {
		errs = append(errs, domain.FieldError{Field: "teamId", Message: "cannot set and clear at the same time"})
	}
	if i.ClearMember && i.MemberID != nil {
		errs = append(errs, domain.FieldError{Field: "memberId", Message: "cannot set and clear at the same time"})
	}
	return asValidation(errs)
}

func (i UpdateTransactionInput) apply(t *domain.Transaction) {
	if i.Title != nil {
		t.Title = strings.TrimSpace(*i.Title)
	}
	if i.Description != nil {
		t.Description = strings.TrimSpace(*i.Description)
	}
	if i.Amount != nil {
		t.Amount = *i.Amount
	}
	if i.Type != nil {
		t.Type = *i.Type
	}
	if i.Date != nil {
		t.Date = i.Date.UTC()
	}
	if i.CategoryID != nil {
		t.CategoryID = *i.CategoryID
	}
	if i.TeamID != nil {
		id := *i.TeamID
		t.TeamID = &id
	}
	if i.ClearTeam {
		t.TeamID = nil
	}
	if i.MemberID != nil {
		id := *i.MemberID
		t.MemberID = &id
	}
	if i.ClearMember {
		t.MemberID = nil
	}
}

// ListTransactionsInput filters the transaction list.
type ListTransactionsInput struct {
	Type       domain.FlowType
	CategoryID *uuid.UUID
	TeamID     *uuid.UUID
	MemberID   *uuid.UUID
	Limit      int
}

// Validate checks all fields and collects all errors.
func (i ListTransactionsInput) Validate() error {
	var errs []domain.FieldError
	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be income or expense"})
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxListLimit)})
	}
	return asValidation(errs)
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

func asValidation(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
