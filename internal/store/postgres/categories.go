package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/id"
	"github.com/altusecase/altuse-server/internal/store"
)

// categoryColumns is the ordered list of columns selected in category queries.
// Must match the scan order in scanCategory.
const categoryColumns = `id, name, slug, description, icon_name`

// scanCategory scans a pgx.Row (or pgx.Rows via its Scan method) into a domain.Category.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category

	var (
		description *string
		iconName    *string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&description,
		&iconName,
	)
	if err != nil {
		return nil, err
	}

	c.Description = deref(description)
	c.IconName = deref(iconName)

	return &c, nil
}

// EnsureDefaultCategories seeds the category table with the default set.
// Existing rows are left untouched.
func (s *Store) EnsureDefaultCategories(ctx context.Context) error {
	for i := range domain.DefaultCategories {
		c := &domain.DefaultCategories[i]

		catID, err := id.Generate("cat")
		if err != nil {
			return fmt.Errorf("generate category id: %w", err)
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO categories (id, name, slug, description, icon_name)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING`,
			catID,
			c.Name,
			c.Slug,
			nilIfEmpty(c.Description),
			nilIfEmpty(c.IconName),
		)
		if err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
	}
	return nil
}

// GetCategoryBySlug retrieves a category by its slug.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)

	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryByName retrieves a category by its exact name.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)

	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

// ListCategoriesWithCounts returns all categories with their item counts,
// including categories with zero items.
func (s *Store) ListCategoriesWithCounts(ctx context.Context) ([]*domain.CategoryWithCount, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, c.slug, c.description, c.icon_name, COUNT(ic.item_id)
		FROM categories c
		LEFT JOIN item_categories ic ON ic.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*domain.CategoryWithCount{}
	for rows.Next() {
		var cc domain.CategoryWithCount
		var (
			description *string
			iconName    *string
		)
		err := rows.Scan(
			&cc.ID,
			&cc.Name,
			&cc.Slug,
			&description,
			&iconName,
			&cc.ItemCount,
		)
		if err != nil {
			return nil, err
		}
		cc.Description = deref(description)
		cc.IconName = deref(iconName)
		result = append(result, &cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListCategoriesByItem returns the categories linked to an item.
func (s *Store) ListCategoriesByItem(ctx context.Context, itemID string) ([]*domain.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, c.slug, c.description, c.icon_name
		FROM categories c
		JOIN item_categories ic ON ic.category_id = c.id
		WHERE ic.item_id = $1
		ORDER BY c.name ASC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

// ListItemsByCategory returns the items in a category, newest first.
// Returns store.ErrNotFound if the category slug is unknown.
func (s *Store) ListItemsByCategory(ctx context.Context, categorySlug string) ([]*domain.Item, error) {
	c, err := s.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+prefixedItemColumns("i")+`
		FROM items i
		JOIN item_categories ic ON ic.item_id = i.id
		WHERE ic.category_id = $1
		ORDER BY i.created_at DESC`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

// LinkItemCategory associates an item with a category.
// Linking the same pair twice is a no-op.
func (s *Store) LinkItemCategory(ctx context.Context, itemID, categoryID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO item_categories (item_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		itemID,
		categoryID,
	)
	return err
}

// collectCategories drains rows into a non-nil category slice.
func collectCategories(rows pgx.Rows) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}
