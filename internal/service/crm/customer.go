package crm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// ListCustomers returns customers matching input, most recent first.
func (s *Service) ListCustomers(ctx context.Context, input ListCustomersInput) ([]domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	q := store.Query{}
	if input.Type != "" {
		q = q.And("type", input.Type)
	}
	if input.Status != "" {
		q = q.And("status", input.Status)
	}
	if input.TeamID != nil {
		q = q.And("team_id", *input.TeamID)
	}
	if input.MemberID != nil {
		q = q.And("member_id", *input.MemberID)
	}

	return selector.ReadList(ctx, s.exec, "list customers", func(ctx context.Context, b store.Backend) ([]domain.Customer, error) {
		return b.Customers().List(ctx, q)
	})
}

// GetCustomer returns a single customer.
func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	return selector.Read(ctx, s.exec, "get customer", func(ctx context.Context, b store.Backend) (domain.Customer, error) {
		return b.Customers().Get(ctx, id)
	})
}

// CreateCustomer creates a customer. TotalAmount starts at the sum of the
// opening amounts.
func (s *Service) CreateCustomer(ctx context.Context, input CreateCustomerInput) (domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return domain.Customer{}, err
	}

	c := domain.Customer{
		Name:            strings.TrimSpace(input.Name),
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		Type:            input.Type,
		InitialAmount:   input.InitialAmount,
		ExtensionAmount: input.ExtensionAmount,
		TeamID:          input.TeamID,
		MemberID:        input.MemberID,
		Status:          input.Status,
		Notes:           strings.TrimSpace(input.Notes),
	}
	if c.Type == "" {
		c.Type = domain.CustomerTypeNew
	}
	if c.Status == "" {
		c.Status = domain.CustomerStatusActive
	}

	customer, err := selector.Write(ctx, s.exec, "create customer", func(ctx context.Context, b store.Backend) (domain.Customer, error) {
		if err := ensureRefs(ctx, b, c.TeamID, c.MemberID); err != nil {
			return domain.Customer{}, err
		}
		created, err := b.Customers().Create(ctx, c)
		if err != nil {
			return domain.Customer{}, fmt.Errorf("create customer: %w", err)
		}
		if err := s.aggregates.RecomputeCustomerTotal(ctx, b, created.ID); err != nil {
			return domain.Customer{}, err
		}
		created, err = b.Customers().Get(ctx, created.ID)
		if err != nil {
			return domain.Customer{}, fmt.Errorf("reload customer: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindCustomer, created.ID, nil, created); err != nil {
			return domain.Customer{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.log.InfoContext(ctx, "customer created",
		slog.String("customer_id", customer.ID.String()),
		slog.String("type", customer.Type.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return customer, nil
}

// UpdateCustomer applies a partial update to a customer and re-derives its
// total when an opening amount changed.
func (s *Service) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) (domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return domain.Customer{}, err
	}

	customer, err := selector.Write(ctx, s.exec, "update customer", func(ctx context.Context, b store.Backend) (domain.Customer, error) {
		if err := ensureRefs(ctx, b, input.TeamID, input.MemberID); err != nil {
			return domain.Customer{}, err
		}
		var before domain.Customer
		updated, err := b.Customers().Update(ctx, input.ID, func(c *domain.Customer) error {
			before = *c
			input.apply(c)
			return nil
		})
		if err != nil {
			return domain.Customer{}, fmt.Errorf("update customer: %w", err)
		}
		if input.changesTotal() {
			if err := s.aggregates.RecomputeCustomerTotal(ctx, b, updated.ID); err != nil {
				return domain.Customer{}, err
			}
			if updated, err = b.Customers().Get(ctx, updated.ID); err != nil {
				return domain.Customer{}, fmt.Errorf("reload customer: %w", err)
			}
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindCustomer, updated.ID, before, updated); err != nil {
			return domain.Customer{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.log.InfoContext(ctx, "customer updated",
		slog.String("customer_id", customer.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return customer, nil
}

// CustomerDeletion reports what a customer delete removed or detached.
type CustomerDeletion struct {
	Transactions        int `json:"transactions"`
	DetachedCommissions int `json:"detachedCommissions"`
}

// DeleteCustomer deletes a customer with all of their transactions.
// Commissions that pointed at the customer keep existing with customer_id
// cleared.
func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) (CustomerDeletion, error) {
	byCustomer := store.Where("customer_id", id)

	res, err := selector.Write(ctx, s.exec, "delete customer", func(ctx context.Context, b store.Backend) (CustomerDeletion, error) {
		var res CustomerDeletion
		if _, err := b.Customers().Get(ctx, id); err != nil {
			return res, err
		}

		txs, err := store.DeleteWhere(ctx, b.CustomerTransactions(), byCustomer)
		if err != nil {
			return res, fmt.Errorf("delete customer transactions: %w", err)
		}
		res.Transactions = len(txs)

		res.DetachedCommissions, err = store.UpdateWhere(ctx, b.Commissions(), byCustomer, func(c *domain.Commission) error {
			c.CustomerID = nil
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("detach commissions: %w", err)
		}

		removed, err := b.Customers().Delete(ctx, id)
		if err != nil {
			return res, fmt.Errorf("delete customer: %w", err)
		}
		return res, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindCustomer, id, removed, nil)
	})
	if err != nil {
		return CustomerDeletion{}, err
	}

	s.log.InfoContext(ctx, "customer deleted",
		slog.String("customer_id", id.String()),
		slog.Int("transactions", res.Transactions),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return res, nil
}
