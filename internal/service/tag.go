package service

import (
	"context"
	"fmt"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/errors"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/store"
)

// TagService handles tag browsing. Tags are created as a side effect of
// item generation, never directly.
type TagService struct {
	store  store.Store
	logger *logger.Logger
}

// NewTagService creates a new tag service.
func NewTagService(s store.Store, log *logger.Logger) *TagService {
	return &TagService{
		store:  s,
		logger: log.WithComponent("tag-service"),
	}
}

// List returns all tags sorted by name.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// Items returns the items carrying a tag, newest first. Tag names are
// matched exactly, including case.
func (s *TagService) Items(ctx context.Context, tagName string) ([]*domain.Item, error) {
	items, err := s.store.ListItemsByTag(ctx, tagName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("tag %q not found", tagName)
		}
		return nil, fmt.Errorf("list items by tag: %w", err)
	}
	return items, nil
}
