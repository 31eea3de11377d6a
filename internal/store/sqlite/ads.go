package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/id"
	"github.com/altusecase/altuse-server/internal/store"
)

// adSettingColumns is the ordered list of columns selected in ad setting queries.
// Must match the scan order in scanAdSetting.
const adSettingColumns = `id, setting_key, setting_value, is_enabled, updated_at`

// scanAdSetting scans a sql.Row (or sql.Rows via its Scan method) into a domain.AdSetting.
func scanAdSetting(scanner interface{ Scan(dest ...any) error }) (*domain.AdSetting, error) {
	var a domain.AdSetting

	var (
		value     sql.NullString
		enabled   int
		updatedAt string
	)

	err := scanner.Scan(
		&a.ID,
		&a.SettingKey,
		&value,
		&enabled,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.SettingValue = stringOrEmpty(value)
	a.IsEnabled = enabled != 0

	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// ListAdSettings returns all ad settings ordered by key.
func (s *Store) ListAdSettings(ctx context.Context) ([]*domain.AdSetting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+adSettingColumns+` FROM ad_settings ORDER BY setting_key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []*domain.AdSetting{}
	for rows.Next() {
		a, err := scanAdSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// GetAdSetting retrieves an ad setting by its key.
// Returns store.ErrNotFound if the key is unknown.
func (s *Store) GetAdSetting(ctx context.Context, key string) (*domain.AdSetting, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adSettingColumns+` FROM ad_settings WHERE setting_key = ?`, key)

	a, err := scanAdSetting(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpsertAdSetting creates or updates the setting for a key and returns
// the stored row.
func (s *Store) UpsertAdSetting(ctx context.Context, setting *domain.AdSetting) (*domain.AdSetting, error) {
	now := formatTime(time.Now().UTC())

	res, err := s.db.ExecContext(ctx, `
		UPDATE ad_settings SET setting_value = ?, is_enabled = ?, updated_at = ?
		WHERE setting_key = ?`,
		nullString(setting.SettingValue),
		boolToInt(setting.IsEnabled),
		now,
		setting.SettingKey,
	)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if n == 0 {
		adID, err := id.Generate("ad")
		if err != nil {
			return nil, fmt.Errorf("generate ad setting id: %w", err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO ad_settings (id, setting_key, setting_value, is_enabled, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			adID,
			setting.SettingKey,
			nullString(setting.SettingValue),
			boolToInt(setting.IsEnabled),
			now,
		)
		if err != nil {
			return nil, err
		}
	}

	return s.GetAdSetting(ctx, setting.SettingKey)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
