package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/id"
	"github.com/altusecase/altuse-server/internal/store"
)

// categoryColumns is the ordered list of columns selected in category queries.
// Must match the scan order in scanCategory.
const categoryColumns = `id, name, slug, description, icon_name`

// scanCategory scans a sql.Row (or sql.Rows via its Scan method) into a domain.Category.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category

	var (
		description sql.NullString
		iconName    sql.NullString
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

	c.Description = stringOrEmpty(description)
	c.IconName = stringOrEmpty(iconName)

	return &c, nil
}

// EnsureDefaultCategories seeds the category table with the default set.
// Existing rows are left untouched, so renames or edits survive restarts.
func (s *Store) EnsureDefaultCategories(ctx context.Context) error {
	for i := range domain.DefaultCategories {
		c := &domain.DefaultCategories[i]

		exists, err := s.categoryExistsByName(ctx, c.Name)
		if err != nil {
			return fmt.Errorf("check category %q: %w", c.Name, err)
		}
		if exists {
			continue
		}

		catID, err := id.Generate("cat")
		if err != nil {
			return fmt.Errorf("generate category id: %w", err)
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO categories (id, name, slug, description, icon_name)
			VALUES (?, ?, ?, ?, ?)`,
			catID,
			c.Name,
			c.Slug,
			nullString(c.Description),
			nullString(c.IconName),
		)
		if err != nil {
			// Another instance may have seeded concurrently.
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				continue
			}
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
	}
	return nil
}

func (s *Store) categoryExistsByName(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM categories WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetCategoryBySlug retrieves a category by its slug.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
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
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ?`, name)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
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
	rows, err := s.db.QueryContext(ctx, `
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
			description sql.NullString
			iconName    sql.NullString
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
		cc.Description = stringOrEmpty(description)
		cc.IconName = stringOrEmpty(iconName)
		result = append(result, &cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListCategoriesByItem returns the categories linked to an item.
func (s *Store) ListCategoriesByItem(ctx context.Context, itemID string) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.description, c.icon_name
		FROM categories c
		JOIN item_categories ic ON ic.category_id = c.id
		WHERE ic.item_id = ?
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

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixedItemColumns("i")+`
		FROM items i
		JOIN item_categories ic ON ic.item_id = i.id
		WHERE ic.category_id = ?
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
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO item_categories (item_id, category_id)
		VALUES (?, ?)`,
		itemID,
		categoryID,
	)
	return err
}

// prefixedItemColumns qualifies itemColumns with a table alias for joins.
func prefixedItemColumns(alias string) string {
	cols := strings.Split(itemColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// collectCategories drains rows into a non-nil category slice.
func collectCategories(rows *sql.Rows) ([]*domain.Category, error) {
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
