package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/id"
	"github.com/altusecase/altuse-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, created_at`

// scanTag scans a pgx.Row (or pgx.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// getTagByName retrieves a tag by its exact name.
func (s *Store) getTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = $1`, name)

	t, err := scanTag(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FindOrCreateTagByName finds an existing tag by name or creates a new one.
// Returns (tag, created, error) where created is true if a new tag was made.
func (s *Store) FindOrCreateTagByName(ctx context.Context, name string) (*domain.Tag, bool, error) {
	existing, err := s.getTagByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, false, fmt.Errorf("generate tag id: %w", err)
	}

	t := &domain.Tag{
		ID:        tagID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO tags (id, name, created_at)
		VALUES ($1, $2, $3)`,
		t.ID,
		t.Name,
		t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Race condition: another connection created it.
			existing, err := s.getTagByName(ctx, name)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return t, true, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// ListTagsByItem returns the tag names linked to an item, ordered by name.
func (s *Store) ListTagsByItem(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.name
		FROM tags t
		JOIN item_tags it ON it.tag_id = t.id
		WHERE it.item_id = $1
		ORDER BY t.name ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query item_tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan item_tag: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return names, nil
}

// ListItemsByTag returns the items carrying a tag, newest first.
// Returns store.ErrNotFound if the tag name is unknown.
func (s *Store) ListItemsByTag(ctx context.Context, tagName string) ([]*domain.Item, error) {
	t, err := s.getTagByName(ctx, tagName)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+prefixedItemColumns("i")+`
		FROM items i
		JOIN item_tags it ON it.item_id = i.id
		WHERE it.tag_id = $1
		ORDER BY i.created_at DESC`, t.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

// LinkItemTag associates an item with a tag.
// Linking the same pair twice is a no-op.
func (s *Store) LinkItemTag(ctx context.Context, itemID, tagID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO item_tags (item_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		itemID,
		tagID,
	)
	return err
}

// ClearItemTags removes all tag links from an item. The tags themselves
// stay; orphaned tags are harmless and may be relinked later.
func (s *Store) ClearItemTags(ctx context.Context, itemID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM item_tags WHERE item_id = $1`, itemID)
	return err
}
