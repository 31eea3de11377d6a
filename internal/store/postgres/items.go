package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// itemColumns is the ordered list of columns selected in item queries.
// Must match the scan order in scanItem.
const itemColumns = `id, name, slug, image_url, attribution, affiliate_link, seo_title, seo_description, canonical_url, created_at`

// scanItem scans a pgx.Row (or pgx.Rows via its Scan method) into a domain.Item.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var it domain.Item

	var (
		imageURL       *string
		attribution    *string
		affiliateLink  *string
		seoTitle       *string
		seoDescription *string
		canonicalURL   *string
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
		&it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	it.ImageURL = deref(imageURL)
	it.Attribution = deref(attribution)
	it.AffiliateLink = deref(affiliateLink)
	it.SEOTitle = deref(seoTitle)
	it.SEODescription = deref(seoDescription)
	it.CanonicalURL = deref(canonicalURL)

	return &it, nil
}

// CreateItem inserts a new item.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO items (id, name, slug, image_url, attribution, affiliate_link, seo_title, seo_description, canonical_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID,
		item.Name,
		item.Slug,
		nilIfEmpty(item.ImageURL),
		nilIfEmpty(item.Attribution),
		nilIfEmpty(item.AffiliateLink),
		nilIfEmpty(item.SEOTitle),
		nilIfEmpty(item.SEODescription),
		nilIfEmpty(item.CanonicalURL),
		item.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
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
	row := s.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE slug = $1`, slug)

	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// GetItemFull retrieves an item by slug with its uses, categories, and tags.
// Returns store.ErrNotFound if the item does not exist.
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
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM items WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListRecentItems returns the newest items, most recent first.
func (s *Store) ListRecentItems(ctx context.Context, limit int) ([]*domain.Item, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListAllItems returns every item. Used for search index rebuilds.
func (s *Store) ListAllItems(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.pool.Query(ctx,
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
	row := s.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY random() LIMIT 1`)

	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
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
	tag, err := s.pool.Exec(ctx, `
		UPDATE items
		SET name = $1, image_url = $2, attribution = $3, affiliate_link = $4,
		    seo_title = $5, seo_description = $6, canonical_url = $7
		WHERE id = $8`,
		item.Name,
		nilIfEmpty(item.ImageURL),
		nilIfEmpty(item.Attribution),
		nilIfEmpty(item.AffiliateLink),
		nilIfEmpty(item.SEOTitle),
		nilIfEmpty(item.SEODescription),
		nilIfEmpty(item.CanonicalURL),
		item.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	if err := s.searchIndexer.IndexItem(ctx, item); err != nil {
		s.logger.Warn("failed to reindex item", "item_id", item.ID, "error", err)
	}

	return nil
}

// DeleteItem removes an item by slug. Related rows cascade.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) DeleteItem(ctx context.Context, slug string) error {
	it, err := s.GetItemBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, it.ID); err != nil {
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
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// collectItems drains rows into a non-nil item slice.
func collectItems(rows pgx.Rows) ([]*domain.Item, error) {
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

// prefixedItemColumns qualifies itemColumns with a table alias for joins.
func prefixedItemColumns(alias string) string {
	cols := strings.Split(itemColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// nilIfEmpty maps "" to NULL for optional text columns.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref unwraps an optional text column to its value or "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
