package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/search"
	"github.com/altusecase/altuse-server/internal/store"
)

// SearchService fronts the Bleve index for item search and keeps it in
// sync with the store.
type SearchService struct {
	store  store.Store
	index  *search.SearchIndex
	logger *logger.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(s store.Store, index *search.SearchIndex, log *logger.Logger) *SearchService {
	return &SearchService{
		store:  s,
		index:  index,
		logger: log.WithComponent("search-service"),
	}
}

// Search runs a full-text query over items.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	params.Query = strings.TrimSpace(params.Query)
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return result, nil
}

// RebuildIndex drops the index and re-indexes every item from the
// store. Run at startup when the index is empty but the store is not,
// and on demand after manual database edits.
func (s *SearchService) RebuildIndex(ctx context.Context) (int, error) {
	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	items, err := s.store.ListAllItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items for reindex: %w", err)
	}

	docs := make([]*search.ItemDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, s.documentFor(ctx, item))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return 0, fmt.Errorf("index items: %w", err)
	}

	s.logger.Info("search index rebuilt", "items", len(docs))
	return len(docs), nil
}

// SyncIndexOnStartup rebuilds the index when its document count has
// drifted from the item count, which happens after restoring a database
// backup or deleting the index directory.
func (s *SearchService) SyncIndexOnStartup(ctx context.Context) error {
	itemCount, err := s.store.CountItems(ctx)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}

	docCount, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count index documents: %w", err)
	}

	if uint64(itemCount) == docCount {
		return nil
	}

	s.logger.Info("search index out of sync, rebuilding", "items", itemCount, "indexed", docCount)
	_, err = s.RebuildIndex(ctx)
	return err
}

func (s *SearchService) documentFor(ctx context.Context, item *domain.Item) *search.ItemDocument {
	var categoryNames []string
	categories, err := s.store.ListCategoriesByItem(ctx, item.ID)
	if err != nil {
		s.logger.Warn("failed to load categories for indexing", "item", item.Slug, "error", err)
	} else {
		for _, c := range categories {
			categoryNames = append(categoryNames, c.Name)
		}
	}

	tags, err := s.store.ListTagsByItem(ctx, item.ID)
	if err != nil {
		s.logger.Warn("failed to load tags for indexing", "item", item.Slug, "error", err)
		tags = nil
	}

	return search.DocumentFromItem(item, categoryNames, tags)
}

// Indexer adapts the search index to the store's indexer interface so
// writes keep the index current without the store depending on Bleve.
type Indexer struct {
	service *SearchService
}

// NewIndexer creates a store-facing indexer backed by the search service.
func NewIndexer(service *SearchService) *Indexer {
	return &Indexer{service: service}
}

// IndexItem indexes one item with its current categories and tags.
func (ix *Indexer) IndexItem(ctx context.Context, item *domain.Item) error {
	doc := ix.service.documentFor(ctx, item)
	return ix.service.index.IndexDocument(doc)
}

// DeleteItem removes an item from the index.
func (ix *Indexer) DeleteItem(_ context.Context, itemID string) error {
	return ix.service.index.DeleteDocument(itemID)
}
