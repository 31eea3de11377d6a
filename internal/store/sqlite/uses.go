package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// useColumns is the ordered list of columns selected in use queries.
// Must match the scan order in scanUse.
const useColumns = `id, item_id, title, description, difficulty, image_url, affiliate_link, votes_yes, votes_no, created_at`

// scanUse scans a sql.Row (or sql.Rows via its Scan method) into a domain.Use.
func scanUse(scanner interface{ Scan(dest ...any) error }) (*domain.Use, error) {
	var u domain.Use

	var (
		imageURL      sql.NullString
		affiliateLink sql.NullString
		createdAt     string
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
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.ImageURL = stringOrEmpty(imageURL)
	u.AffiliateLink = stringOrEmpty(affiliateLink)

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUse inserts a new use for an item.
func (s *Store) CreateUse(ctx context.Context, use *domain.Use) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO use_cases (id, item_id, title, description, difficulty, image_url, affiliate_link, votes_yes, votes_no, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		use.ID,
		use.ItemID,
		use.Title,
		use.Description,
		string(use.Difficulty),
		nullString(use.ImageURL),
		nullString(use.AffiliateLink),
		use.VotesYes,
		use.VotesNo,
		formatTime(use.CreatedAt),
	)
	return err
}

// GetUseByID retrieves a use by its ID.
// Returns store.ErrNotFound if the use does not exist.
func (s *Store) GetUseByID(ctx context.Context, id string) (*domain.Use, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+useColumns+` FROM use_cases WHERE id = ?`, id)

	u, err := scanUse(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsesByItem returns the uses for an item in insertion order.
func (s *Store) ListUsesByItem(ctx context.Context, itemID string) ([]*domain.Use, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+useColumns+` FROM use_cases WHERE item_id = ? ORDER BY created_at ASC, id ASC`, itemID)
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
	_, err := s.db.ExecContext(ctx, `DELETE FROM use_cases WHERE item_id = ?`, itemID)
	return err
}

// AddVote increments the yes or no counter for a use atomically and
// returns the updated row. Concurrent votes are serialized by the
// database; no read-modify-write happens in Go.
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

	res, err := s.db.ExecContext(ctx,
		`UPDATE use_cases SET `+column+` = `+column+` + 1 WHERE id = ?`, useID)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetUseByID(ctx, useID)
}
