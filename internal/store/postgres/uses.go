package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// useColumns is the ordered list of columns selected in use queries.
// Must match the scan order in scanUse.
const useColumns = `id, item_id, title, description, difficulty, image_url, affiliate_link, votes_yes, votes_no, created_at`

// scanUse scans a pgx.Row (or pgx.Rows via its Scan method) into a domain.Use.
func scanUse(scanner interface{ Scan(dest ...any) error }) (*domain.Use, error) {
	var u domain.Use

	var (
		imageURL      *string
		affiliateLink *string
	)

	err := scanner.Scan(
		&u.ID,
		&u.ItemID,
		&u.Title,
		&u.Description,
		&u.Difficulty,
		&imageURL,
		&affiliateLink,
		&u.VotesYes,
		&u.VotesNo,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.ImageURL = deref(imageURL)
	u.AffiliateLink = deref(affiliateLink)

	return &u, nil
}

// CreateUse inserts a new use for an item.
func (s *Store) CreateUse(ctx context.Context, use *domain.Use) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO use_cases (id, item_id, title, description, difficulty, image_url, affiliate_link, votes_yes, votes_no, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		use.ID,
		use.ItemID,
		use.Title,
		use.Description,
		string(use.Difficulty),
		nilIfEmpty(use.ImageURL),
		nilIfEmpty(use.AffiliateLink),
		use.VotesYes,
		use.VotesNo,
		use.CreatedAt.UTC(),
	)
	return err
}

// GetUseByID retrieves a use by its ID.
// Returns store.ErrNotFound if the use does not exist.
func (s *Store) GetUseByID(ctx context.Context, id string) (*domain.Use, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+useColumns+` FROM use_cases WHERE id = $1`, id)

	u, err := scanUse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsesByItem returns the uses for an item in insertion order.
func (s *Store) ListUsesByItem(ctx context.Context, itemID string) ([]*domain.Use, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+useColumns+` FROM use_cases WHERE item_id = $1 ORDER BY created_at ASC, id ASC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uses := []*domain.Use{}
	for rows.Next() {
		u, err := scanUse(rows)
		if err != nil {
			return nil, err
		}
		uses = append(uses, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return uses, nil
}

// DeleteUsesByItem removes every use belonging to an item. Used when an
// admin edit replaces the use list wholesale.
func (s *Store) DeleteUsesByItem(ctx context.Context, itemID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM use_cases WHERE item_id = $1`, itemID)
	return err
}

// AddVote increments the yes or no counter for a use atomically and
// returns the updated row.
// Returns store.ErrNotFound if the use does not exist.
func (s *Store) AddVote(ctx context.Context, useID string, kind domain.VoteKind) (*domain.Use, error) {
	var column string
	switch kind {
	case domain.VoteYes:
		column = "votes_yes"
	case domain.VoteNo:
		column = "votes_no"
	default:
		return nil, store.ErrInvalidInput.WithMessage(fmt.Sprintf("invalid vote kind %q", kind))
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE use_cases SET `+column+` = `+column+` + 1 WHERE id = $1 RETURNING `+useColumns, useID)

	u, err := scanUse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
