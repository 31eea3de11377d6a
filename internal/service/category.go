package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/errors"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/store"
)

// CategoryService handles category browsing.
type CategoryService struct {
	store  store.Store
	logger *logger.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(s store.Store, log *logger.Logger) *CategoryService {
	return &CategoryService{
		store:  s,
		logger: log.WithComponent("category-service"),
	}
}

// List returns all categories in display order.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// ListWithCounts returns categories annotated with item counts, most
// populated first, including categories with zero items. A positive
// limit truncates the sorted list; zero or negative means no limit.
func (s *CategoryService) ListWithCounts(ctx context.Context, limit int) ([]*domain.CategoryWithCount, error) {
	categories, err := s.store.ListCategoriesWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories with counts: %w", err)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].ItemCount > categories[j].ItemCount
	})

	if limit > 0 && limit < len(categories) {
		categories = categories[:limit]
	}
	return categories, nil
}

// GetBySlug returns a single category.
func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	category, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("category %q not found", categorySlug)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// Items returns the items linked to a category, newest first.
func (s *CategoryService) Items(ctx context.Context, categorySlug string) ([]*domain.Item, error) {
	items, err := s.store.ListItemsByCategory(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("category %q not found", categorySlug)
		}
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	return items, nil
}
