// Package store defines the persistence interface for the AltUse server.
package store

import (
	"context"

	"github.com/altusecase/altuse-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Writes during item generation are sequential and non-transactional:
// the item row is the anchor, and failures in later tables leave a
// partially populated item rather than rolling back. Callers that need
// atomicity across tables must not assume the store provides it.
type Store interface {
	// Lifecycle
	Close() error
	SetSearchIndexer(indexer SearchIndexer)

	// Items
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error)
	GetItemFull(ctx context.Context, slug string) (*domain.ItemFull, error)
	ItemExistsBySlug(ctx context.Context, slug string) (bool, error)
	ListRecentItems(ctx context.Context, limit int) ([]*domain.Item, error)
	ListAllItems(ctx context.Context) ([]*domain.Item, error)
	GetRandomItem(ctx context.Context) (*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, slug string) error
	CountItems(ctx context.Context) (int, error)

	// Uses
	CreateUse(ctx context.Context, use *domain.Use) error
	GetUseByID(ctx context.Context, id string) (*domain.Use, error)
	ListUsesByItem(ctx context.Context, itemID string) ([]*domain.Use, error)
	DeleteUsesByItem(ctx context.Context, itemID string) error
	AddVote(ctx context.Context, useID string, kind domain.VoteKind) (*domain.Use, error)

	// Categories
	EnsureDefaultCategories(ctx context.Context) error
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListCategoriesWithCounts(ctx context.Context) ([]*domain.CategoryWithCount, error)
	ListCategoriesByItem(ctx context.Context, itemID string) ([]*domain.Category, error)
	ListItemsByCategory(ctx context.Context, categorySlug string) ([]*domain.Item, error)
	LinkItemCategory(ctx context.Context, itemID, categoryID string) error

	// Tags
	FindOrCreateTagByName(ctx context.Context, name string) (*domain.Tag, bool, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	ListTagsByItem(ctx context.Context, itemID string) ([]string, error)
	ListItemsByTag(ctx context.Context, tagName string) ([]*domain.Item, error)
	LinkItemTag(ctx context.Context, itemID, tagID string) error
	ClearItemTags(ctx context.Context, itemID string) error

	// Suggestions
	CreateSuggestion(ctx context.Context, sug *domain.Suggestion) error
	GetSuggestion(ctx context.Context, id string) (*domain.Suggestion, error)
	ListSuggestions(ctx context.Context, status domain.SuggestionStatus) ([]*domain.Suggestion, error)
	UpdateSuggestionStatus(ctx context.Context, id string, status domain.SuggestionStatus) (*domain.Suggestion, error)
	DeleteSuggestion(ctx context.Context, id string) error

	// Ad settings
	ListAdSettings(ctx context.Context) ([]*domain.AdSetting, error)
	GetAdSetting(ctx context.Context, key string) (*domain.AdSetting, error)
	UpsertAdSetting(ctx context.Context, setting *domain.AdSetting) (*domain.AdSetting, error)
}

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on search
// implementation. Index failures are logged, never returned to writers.
type SearchIndexer interface {
	IndexItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, itemID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexItem is a no-op.
func (NoopSearchIndexer) IndexItem(context.Context, *domain.Item) error { return nil }

// DeleteItem is a no-op.
func (NoopSearchIndexer) DeleteItem(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}
