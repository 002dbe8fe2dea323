package org

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
)

const (
	maxNameLength = 200
	maxTextLength = 2000
)

// CreateTeamInput holds the parameters for creating a team.
type CreateTeamInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Leader      string          `json:"leader"`
	Budget      decimal.Decimal `json:"budget"`
	Color       string          `json:"color"`
}

// Validate checks all fields and collects all errors.
func (i CreateTeamInput) Validate() error {
	var errs []domain.FieldError
	errs = checkName(errs, "name", i.Name)
	errs = checkText(errs, "description", i.Description)
	errs = checkMoney(errs, "budget", i.Budget)
	return asValidation(errs)
}

// UpdateTeamInput holds the parameters for updating a team. Nil fields are
// left unchanged.
type UpdateTeamInput struct {
	ID          uuid.UUID        `json:"-"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Leader      *string          `json:"leader"`
	Budget      *decimal.Decimal `json:"budget"`
	Color       *string          `json:"color"`
}

// Validate checks all fields and collects all errors.
func (i UpdateTeamInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil {
		errs = checkName(errs, "name", *i.Name)
	}
	if i.Description != nil {
		errs = checkText(errs, "description", *i.Description)
	}
	if i.Budget != nil {
		errs = checkMoney(errs, "budget", *i.Budget)
	}
	return asValidation(errs)
}

func (i UpdateTeamInput) apply(t *domain.Team) {
	if i.Name != nil {
		t.Name = strings.TrimSpace(*i.Name)
	}
	if i.Description != nil {
		t.Description = strings.TrimSpace(*i.Description)
	}
	if i.Leader != nil {
		t.Leader = strings.TrimSpace(*i.Leader)
	}
	if i.Budget != nil {
		t.Budget = *i.Budget
	}
	if i.Color != nil {
		t.Color = *i.Color
	}
}

// CreateMemberInput holds the parameters for creating a member.
type CreateMemberInput struct {
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	BankName    string              `json:"bankName"`
	BankAccount string              `json:"bankAccount"`
	Role        string              `json:"role"`
	Position    string              `json:"position"`
	Department  string              `json:"department"`
	Salary      decimal.Decimal     `json:"salary"`
	HireDate    *time.Time          `json:"hireDate"`
	Status      domain.MemberStatus `json:"status"`
	TeamID      *uuid.UUID          `json:"teamId"`
}

// Validate checks all fields and collects all errors.
func (i CreateMemberInput) Validate() error {
	var errs []domain.FieldError
	errs = checkName(errs, "name", i.Name)
	errs = checkEmail(errs, "email", i.Email)
	errs = checkMoney(errs, "salary", i.Salary)
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active, inactive or terminated"})
	}
	return asValidation(errs)
}

// UpdateMemberInput holds the parameters for updating a member. Nil fields
// are left unchanged; ClearTeam removes the team assignment.
type UpdateMemberInput struct {
	ID          uuid.UUID            `json:"-"`
	Name        *string              `json:"name"`
	Email       *string              `json:"email"`
	Phone       *string              `json:"phone"`
	BankName    *string              `json:"bankName"`
	BankAccount *string              `json:"bankAccount"`
	Role        *string              `json:"role"`
	Position    *string              `json:"position"`
	Department  *string              `json:"department"`
	Salary      *decimal.Decimal     `json:"salary"`
	HireDate    *time.Time           `json:"hireDate"`
	Status      *domain.MemberStatus `json:"status"`
	TeamID      *uuid.UUID           `json:"teamId"`
	ClearTeam   bool                 `json:"clearTeam"`
}

// Validate checks all fields and collects all errors.
func (i UpdateMemberInput) Validate() error {
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
	if i.Salary != nil {
		errs = checkMoney(errs, "salary", *i.Salary)
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active, inactive or terminated"})
	}
	if i.ClearTeam && i.TeamID != nil {
		errs = append(errs, domain.FieldError{Field: "teamId", Message: "cannot set and clear at the same time"})
	}
	return asValidation(errs)
}

func (i UpdateMemberInput) apply(m *domain.Member) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&m.Name, i.Name)
	set(&m.Email, i.Email)
	set(&m.Phone, i.Phone)
	set(&m.BankName, i.BankName)
	set(&m.BankAccount, i.BankAccount)
	set(&m.Role, i.Role)
	set(&m.Position, i.Position)
	set(&m.Department, i.Department)
	if i.Salary != nil {
		m.Salary = *i.Salary
	}
	if i.HireDate != nil {
		m.HireDate = i.HireDate.UTC()
	}
	if i.Status != nil {
		m.Status = *i.Status
	}
	if i.TeamID != nil {
		id := *i.TeamID
		m.TeamID = &id
	}
	if i.ClearTeam {
		m.TeamID = nil
	}
}

// ListMembersInput filters the member list.
type ListMembersInput struct {
	TeamID *uuid.UUID
	Status domain.MemberStatus
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

func checkText(errs []domain.FieldError, field, v string) []domain.FieldError {
	if len(v) > maxTextLength {
		return append(errs, domain.FieldError{Field: field, Message: "max 2000 characters"})
	}
	return errs
}

func checkMoney(errs []domain.FieldError, field string, v decimal.Decimal) []domain.FieldError {
	if v.IsNegative() {
		return append(errs, domain.FieldError{Field: field, Message: "must not be negative"})
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

func asValidation(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
