package service

import (
	"context"
	"fmt"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/errors"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/store"
)

// AdsService manages ad placement settings.
type AdsService struct {
	store  store.Store
	logger *logger.Logger
}

// NewAdsService creates a new ads service.
func NewAdsService(s store.Store, log *logger.Logger) *AdsService {
	return &AdsService{
		store:  s,
		logger: log.WithComponent("ads-service"),
	}
}

// List returns all ad settings sorted by key.
func (s *AdsService) List(ctx context.Context) ([]*domain.AdSetting, error) {
	return s.store.ListAdSettings(ctx)
}

// Get returns a single ad setting by key.
func (s *AdsService) Get(ctx context.Context, key string) (*domain.AdSetting, error) {
	setting, err := s.store.GetAdSetting(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("ad setting %q not found", key)
		}
		return nil, fmt.Errorf("get ad setting: %w", err)
	}
	return setting, nil
}

// Upsert creates or replaces the setting for a placement key. Unknown
// keys are accepted so new placements can ship without a server change.
func (s *AdsService) Upsert(ctx context.Context, key, value string, enabled bool) (*domain.AdSetting, error) {
	if key == "" {
		return nil, errors.Validation("setting key is required")
	}

	setting, err := s.store.UpsertAdSetting(ctx, &domain.AdSetting{
		SettingKey:   key,
		SettingValue: value,
		IsEnabled:    enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert ad setting: %w", err)
	}

	s.logger.Info("ad setting saved", "key", key, "enabled", enabled)
	return setting, nil
}
