// Package aggregate keeps the derived fields (category spent, customer
// total) in step with the records they are computed from.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// Adjustment is a change to one category's spent total.
type Adjustment struct {
	CategoryID uuid.UUID
	Delta      decimal.Decimal
}

// SpentAdjustments returns the category adjustments needed when a
// transaction goes from old to next. Either may be nil for create and
// delete. Income transactions never touch spent. When both sides are
// expenses in the same category a single net adjustment is returned.
func SpentAdjustments(old, next *domain.Transaction) []Adjustment {
	oldExp := old != nil && old.IsExpense()
	newExp := next != nil && next.IsExpense()

	if oldExp && newExp && old.CategoryID == next.CategoryID {
		delta := next.Money().Sub(old.Money())
		if delta.IsZero() {
			return nil
		}
		return []Adjustment{{CategoryID: next.CategoryID, Delta: delta}}
	}

	var out []Adjustment
	if oldExp && !old.Money().IsZero() {
		out = append(out, Adjustment{CategoryID: old.CategoryID, Delta: old.Money().Neg()})
	}
	if newExp && !next.Money().IsZero() {
		out = append(out, Adjustment{CategoryID: next.CategoryID, Delta: next.Money()})
	}
	return out
}

// CategorySpent sums the expense transactions that reference categoryID.
func CategorySpent(txs []domain.Transaction, categoryID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() && tx.CategoryID == categoryID {
			total = total.Add(tx.Money())
		}
	}
	return total
}

// CustomerTotal computes initial + extension + Σdeposit − Σwithdrawal over
// the customer's own transactions.
func CustomerTotal(c domain.Customer, txs []domain.CustomerTransaction) decimal.Decimal {
	total := c.InitialAmount.Add(c.ExtensionAmount)
	for _, tx := range txs {
		if tx.CustomerID != c.ID {
			continue
		}
		switch tx.Type {
		case domain.CustomerTxDeposit:
			total = total.Add(tx.Amount)
		case domain.CustomerTxWithdrawal:
			total = total.Sub(tx.Amount)
		}
	}
	return total
}

// Maintainer applies the derived-field rules through a backend. Its methods
// are meant to run inside the logical operation that triggered them.
type Maintainer struct {
	strict bool
	log    *slog.Logger
}

// New creates a Maintainer. In strict mode a missing target record fails
// the triggering write with domain.ErrNotFound; otherwise the adjustment is
// skipped with a warning.
func New(log *slog.Logger, strict bool) *Maintainer {
	return &Maintainer{
		strict: strict,
		log:    log.With("component", "aggregate"),
	}
}

// ApplyTransactionCreate adds an expense to its category.
func (m *Maintainer) ApplyTransactionCreate(ctx context.Context, b store.Backend, tx domain.Transaction) error {
	return m.apply(ctx, b, SpentAdjustments(nil, &tx))
}

// ApplyTransactionUpdate moves an edited transaction's amount between
// categories as needed.
func (m *Maintainer) ApplyTransactionUpdate(ctx context.Context, b store.Backend, old, next domain.Transaction) error {
	return m.apply(ctx, b, SpentAdjustments(&old, &next))
}

// ApplyTransactionDelete removes an expense from its category.
func (m *Maintainer) ApplyTransactionDelete(ctx context.Context, b store.Backend, tx domain.Transaction) error {
	return m.apply(ctx, b, SpentAdjustments(&tx, nil))
}

func (m *Maintainer) apply(ctx context.Context, b store.Backend, adjs []Adjustment) error {
	for _, a := range adjs {
		_, err := b.Categories().Update(ctx, a.CategoryID, func(c *domain.Category) error {
			c.Spent = c.Spent.Add(a.Delta)
			return nil
		})
		if err := m.handle(ctx, err, domain.KindCategory, a.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeCategorySpent re-derives spent from every transaction of the
// category.
func (m *Maintainer) RecomputeCategorySpent(ctx context.Context, b store.Backend, categoryID uuid.UUID) error {
	txs, err := b.Transactions().List(ctx, store.Where("category_id", categoryID))
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	spent := CategorySpent(txs, categoryID)
	_, err = b.Categories().Update(ctx, categoryID, func(c *domain.Category) error {
		c.Spent = spent
		return nil
	})
	return m.handle(ctx, err, domain.KindCategory, categoryID)
}

// RecomputeCustomerTotal re-derives the customer's total from scratch.
func (m *Maintainer) RecomputeCustomerTotal(ctx context.Context, b store.Backend, customerID uuid.UUID) error {
	txs, err := b.CustomerTransactions().List(ctx, store.Where("customer_id", customerID))
	if err != nil {
		return fmt.Errorf("list customer transactions: %w", err)
	}
	_, err = b.Customers().Update(ctx, customerID, func(c *domain.Customer) error {
		c.TotalAmount = CustomerTotal(*c, txs)
		return nil
	})
	return m.handle(ctx, err, domain.KindCustomer, customerID)
}

func (m *Maintainer) handle(ctx context.Context, err error, kind domain.Kind, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) || m.strict {
		return fmt.Errorf("adjust %s %s: %w", kind, id, err)
	}

	m.log.WarnContext(ctx, "aggregate adjustment skipped",
		slog.String("kind", kind.String()),
		slog.String("id", id.String()),
		slog.String("error", err.Error()),
	)
	ctxutil.Warn(ctx, fmt.Sprintf("%s: %s %s", domain.ErrAggregateSkipped, kind, id))
	return nil
}
