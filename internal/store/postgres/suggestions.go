package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// suggestionColumns is the ordered list of columns selected in suggestion queries.
// Must match the scan order in scanSuggestion.
const suggestionColumns = `id, item_name, description, email, status, created_at, updated_at`

// scanSuggestion scans a pgx.Row (or pgx.Rows via its Scan method) into a domain.Suggestion.
func scanSuggestion(scanner interface{ Scan(dest ...any) error }) (*domain.Suggestion, error) {
	var sg domain.Suggestion

	var (
		description *string
		email       *string
	)

	err := scanner.Scan(
		&sg.ID,
		&sg.ItemName,
		&description,
		&email,
		&sg.Status,
		&sg.CreatedAt,
		&sg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sg.Description = deref(description)
	sg.Email = deref(email)

	return &sg, nil
}

// CreateSuggestion inserts a new suggestion.
func (s *Store) CreateSuggestion(ctx context.Context, sug *domain.Suggestion) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO suggestions (id, item_name, description, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sug.ID,
		sug.ItemName,
		nilIfEmpty(sug.Description),
		nilIfEmpty(sug.Email),
		string(sug.Status),
		sug.CreatedAt.UTC(),
		sug.UpdatedAt.UTC(),
	)
	return err
}

// GetSuggestion retrieves a suggestion by its ID.
// Returns store.ErrNotFound if the suggestion does not exist.
func (s *Store) GetSuggestion(ctx context.Context, id string) (*domain.Suggestion, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = $1`, id)

	sg, err := scanSuggestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sg, nil
}

// ListSuggestions returns suggestions newest first, optionally filtered
// by status. An empty status returns all suggestions.
func (s *Store) ListSuggestions(ctx context.Context, status domain.SuggestionStatus) ([]*domain.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suggestions := []*domain.Suggestion{}
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return suggestions, nil
}

// UpdateSuggestionStatus sets a suggestion's review status and returns
// the updated row.
// Returns store.ErrNotFound if the suggestion does not exist.
func (s *Store) UpdateSuggestionStatus(ctx context.Context, id string, status domain.SuggestionStatus) (*domain.Suggestion, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE suggestions SET status = $1, updated_at = $2 WHERE id = $3
		RETURNING `+suggestionColumns,
		string(status),
		time.Now().UTC(),
		id,
	)

	sg, err := scanSuggestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sg, nil
}

// DeleteSuggestion removes a suggestion by ID.
// Returns store.ErrNotFound if the suggestion does not exist.
func (s *Store) DeleteSuggestion(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM suggestions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
