package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// suggestionColumns is the ordered list of columns selected in suggestion queries.
// Must match the scan order in scanSuggestion.
const suggestionColumns = `id, item_name, description, email, status, created_at, updated_at`

// scanSuggestion scans a sql.Row (or sql.Rows via its Scan method) into a domain.Suggestion.
func scanSuggestion(scanner interface{ Scan(dest ...any) error }) (*domain.Suggestion, error) {
	var sg domain.Suggestion

	var (
		description sql.NullString
		email       sql.NullString
		status      string
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&sg.ID,
		&sg.ItemName,
		&description,
		&email,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sg.Description = stringOrEmpty(description)
	sg.Email = stringOrEmpty(email)
	sg.Status = domain.SuggestionStatus(status)

	sg.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sg.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &sg, nil
}

// CreateSuggestion inserts a new suggestion.
func (s *Store) CreateSuggestion(ctx context.Context, sug *domain.Suggestion) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestions (id, item_name, description, email, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sug.ID,
		sug.ItemName,
		nullString(sug.Description),
		nullString(sug.Email),
		string(sug.Status),
		formatTime(sug.CreatedAt),
		formatTime(sug.UpdatedAt),
	)
	return err
}

// GetSuggestion retrieves a suggestion by its ID.
// Returns store.ErrNotFound if the suggestion does not exist.
func (s *Store) GetSuggestion(ctx context.Context, id string) (*domain.Suggestion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = ?`, id)

	sg, err := scanSuggestion(row)
	if err == sql.ErrNoRows {
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
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	res, err := s.db.ExecContext(ctx, `
		UPDATE suggestions SET status = ?, updated_at = ? WHERE id = ?`,
		string(status),
		formatTime(time.Now().UTC()),
		id,
	)
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

	return s.GetSuggestion(ctx, id)
}

// DeleteSuggestion removes a suggestion by ID.
// Returns store.ErrNotFound if the suggestion does not exist.
func (s *Store) DeleteSuggestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suggestions WHERE id = ?`, id)
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
	return nil
}
