package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// ListCategories returns categories, optionally of one flow type.
func (s *Service) ListCategories(ctx context.Context, flow domain.FlowType) ([]domain.Category, error) {
	q := store.Query{}
	if flow != "" {
		if !flow.IsValid() {
			return nil, domain.NewValidationError("type", "must be income or expense")
		}
		q = q.And("type", flow)
	}
	return selector.ReadList(ctx, s.exec, "list categories", func(ctx context.Context, b store.Backend) ([]domain.Category, error) {
		return b.Categories().List(ctx, q)
	})
}

// GetCategory returns a single category.
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	return selector.Read(ctx, s.exec, "get category", func(ctx context.Context, b store.Backend) (domain.Category, error) {
		return b.Categories().Get(ctx, id)
	})
}

// CreateCategory creates a category with zero spent.
func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (domain.Category, error) {
	if err := input.Validate(); err != nil {
		return domain.Category{}, err
	}

	category, err := selector.Write(ctx, s.exec, "create category", func(ctx context.Context, b store.Backend) (domain.Category, error) {
		created, err := b.Categories().Create(ctx, domain.Category{
			Name:   strings.TrimSpace(input.Name),
			Type:   input.Type,
			Budget: input.Budget,
			Spent:  decimal.Zero,
			Color:  input.Color,
			Icon:   input.Icon,
		})
		if err != nil {
			return domain.Category{}, fmt.Errorf("create category: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionCreate, domain.KindCategory, created.ID, nil, created); err != nil {
			return domain.Category{}, err
		}
		return created, nil
	})
	if err != nil {
		return domain.Category{}, err
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("type", category.Type.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return category, nil
}

// UpdateCategory applies a partial update to a category. Spent is never
// touched.
func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (domain.Category, error) {
	if err := input.Validate(); err != nil {
		return domain.Category{}, err
	}

	category, err := selector.Write(ctx, s.exec, "update category", func(ctx context.Context, b store.Backend) (domain.Category, error) {
		var before domain.Category
		updated, err := b.Categories().Update(ctx, input.ID, func(c *domain.Category) error {
			before = *c
			input.apply(c)
			return nil
		})
		if err != nil {
			return domain.Category{}, fmt.Errorf("update category: %w", err)
		}
		if err := s.audit.Record(ctx, b, domain.AuditActionUpdate, domain.KindCategory, updated.ID, before, updated); err != nil {
			return domain.Category{}, err
		}
		return updated, nil
	})
	if err != nil {
		return domain.Category{}, err
	}

	s.log.InfoContext(ctx, "category updated",
		slog.String("category_id", category.ID.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return category, nil
}

// DeleteCategory deletes a category that no transaction references.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := selector.Write(ctx, s.exec, "delete category", func(ctx context.Context, b store.Backend) (struct{}, error) {
		if _, err := b.Categories().Get(ctx, id); err != nil {
			return struct{}{}, err
		}
		used, err := store.Exists(ctx, b.Transactions(), store.Where("category_id", id))
		if err != nil {
			return struct{}{}, fmt.Errorf("check transactions: %w", err)
		}
		if used {
			return struct{}{}, fmt.Errorf("category %s has transactions: %w", id, domain.ErrConflict)
		}

		removed, err := b.Categories().Delete(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete category: %w", err)
		}
		return struct{}{}, s.audit.Record(ctx, b, domain.AuditActionDelete, domain.KindCategory, id, removed, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "category deleted",
		slog.String("category_id", id.String()),
		slog.String("backend", ctxutil.OutcomeFromCtx(ctx).Backend()),
	)

	return nil
}
