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

// adSettingColumns is the ordered list of columns selected in ad setting queries.
// Must match the scan order in scanAdSetting.
const adSettingColumns = `id, setting_key, setting_value, is_enabled, updated_at`

// scanAdSetting scans a pgx.Row (or pgx.Rows via its Scan method) into a domain.AdSetting.
func scanAdSetting(scanner interface{ Scan(dest ...any) error }) (*domain.AdSetting, error) {
	var a domain.AdSetting

	var value *string

	err := scanner.Scan(
		&a.ID,
		&a.SettingKey,
		&value,
		&a.IsEnabled,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.SettingValue = deref(value)

	return &a, nil
}

// ListAdSettings returns all ad settings ordered by key.
func (s *Store) ListAdSettings(ctx context.Context) ([]*domain.AdSetting, error) {
	rows, err := s.pool.Query(ctx,
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
	row := s.pool.QueryRow(ctx,
		`SELECT `+adSettingColumns+` FROM ad_settings WHERE setting_key = $1`, key)

	a, err := scanAdSetting(row)
	if errors.Is(err, pgx.ErrNoRows) {
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
	adID, err := id.Generate("ad")
	if err != nil {
		return nil, fmt.Errorf("generate ad setting id: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO ad_settings (id, setting_key, setting_value, is_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (setting_key) DO UPDATE
		SET setting_value = EXCLUDED.setting_value,
		    is_enabled = EXCLUDED.is_enabled,
		    updated_at = EXCLUDED.updated_at
		RETURNING `+adSettingColumns,
		adID,
		setting.SettingKey,
		nilIfEmpty(setting.SettingValue),
		setting.IsEnabled,
		time.Now().UTC(),
	)

	return scanAdSetting(row)
}
