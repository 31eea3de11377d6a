package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// itemColumns is the ordered list of columns selected in item queries.
// Must match the scan order in scanItem.
const itemColumns = `id, name, slug, image_url, attribution, affiliate_link, seo_title, seo_description, canonical_url, created_at`

// scanItem scans a sql.Row (or sql.Rows via its Scan method) into a domain.Item.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var it domain.Item

	var (
		imageURL       sql.NullString
		attribution    sql.NullString
		affiliateLink  sql.NullString
		seoTitle       sql.NullString
		seoDescription sql.NullString
		canonicalURL   sql.NullString
		createdAt      string
	)

	err := scanner.Scan(
		&it.ID,
		&it.Name,
		&it.Slug,
		&imageURL,
		&attribution,
		&affiliateLink,
		&seoTitle,
		&seoDescription,
		&canonicalURL,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	it.ImageURL = stringOrEmpty(imageURL)
	it.Attribution = stringOrEmpty(attribution)
	it.AffiliateLink = stringOrEmpty(affiliateLink)
	it.SEOTitle = stringOrEmpty(seoTitle)
	it.SEODescription = stringOrEmpty(seoDescription)
	it.CanonicalURL = stringOrEmpty(canonicalURL)

	it.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// CreateItem inserts a new item.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, name, slug, image_url, attribution, affiliate_link, seo_title, seo_description, canonical_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Slug,
		nullString(item.ImageURL),
		nullString(item.Attribution),
		nullString(item.AffiliateLink),
		nullString(item.SEOTitle),
		nullString(item.SEODescription),
		nullString(item.CanonicalURL),
		formatTime(item.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := s.searchIndexer.IndexItem(ctx, item); err != nil {
		s.logger.Warn("failed to index item", "item_id", item.ID, "error", err)
	}

	return nil
}

// GetItemBySlug retrieves an item by its slug.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE slug = ?`, slug)

	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// GetItemFull retrieves an item by slug with its uses, categories, and tags.
// Returns store.ErrNotFound if the item does not exist. The child slices
// are never nil; an item missing related rows hydrates with empty slices.
func (s *Store) GetItemFull(ctx context.Context, slug string) (*domain.ItemFull, error) {
	it, err := s.GetItemBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	uses, err := s.ListUsesByItem(ctx, it.ID)
	if err != nil {
		return nil, fmt.Errorf("list uses: %w", err)
	}

	categories, err := s.ListCategoriesByItem(ctx, it.ID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	tags, err := s.ListTagsByItem(ctx, it.ID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	full := &domain.ItemFull{
		Item:       *it,
		Uses:       make([]domain.Use, 0, len(uses)),
		Categories: make([]domain.Category, 0, len(categories)),
		Tags:       tags,
	}
	for _, u := range uses {
		full.Uses = append(full.Uses, *u)
	}
	for _, c := range categories {
		full.Categories = append(full.Categories, *c)
	}

	return full, nil
}

// ItemExistsBySlug reports whether an item with the slug exists.
func (s *Store) ItemExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM items WHERE slug = ?`, slug).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListRecentItems returns the newest items, most recent first.
func (s *Store) ListRecentItems(ctx context.Context, limit int) ([]*domain.Item, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListAllItems returns every item. Used for search index rebuilds.
func (s *Store) ListAllItems(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

// GetRandomItem returns a uniformly random item.
// Returns store.ErrNotFound when the table is empty.
func (s *Store) GetRandomItem(ctx context.Context) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY RANDOM() LIMIT 1`)

	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// UpdateItem updates an existing item's mutable fields.
// Returns store.ErrNotFound if no row matches the item's ID.
func (s *Store) UpdateItem(ctx context.Context, item *domain.Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET name = ?, image_url = ?, attribution = ?, affiliate_link = ?,
		    seo_title = ?, seo_description = ?, canonical_url = ?
		WHERE id = ?`,
		item.Name,
		nullString(item.ImageURL),
		nullString(item.Attribution),
		nullString(item.AffiliateLink),
		nullString(item.SEOTitle),
		nullString(item.SEODescription),
		nullString(item.CanonicalURL),
		item.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if err := s.searchIndexer.IndexItem(ctx, item); err != nil {
		s.logger.Warn("failed to reindex item", "item_id", item.ID, "error", err)
	}

	return nil
}

// DeleteItem removes an item by slug. Related uses, category links, and
// tag links are removed by ON DELETE CASCADE.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) DeleteItem(ctx context.Context, slug string) error {
	it, err := s.GetItemBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, it.ID); err != nil {
		return err
	}

	if err := s.searchIndexer.DeleteItem(ctx, it.ID); err != nil {
		s.logger.Warn("failed to remove item from index", "item_id", it.ID, "error", err)
	}

	return nil
}

// CountItems returns the total number of items.
func (s *Store) CountItems(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// collectItems drains rows into a non-nil item slice.
func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	items := []*domain.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
