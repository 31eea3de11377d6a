// Package service provides the business logic layer for item generation,
// browsing, voting, suggestions, and ad settings.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/errors"
	"github.com/altusecase/altuse-server/internal/id"
	"github.com/altusecase/altuse-server/internal/imagesearch"
	"github.com/altusecase/altuse-server/internal/llm"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/slug"
	"github.com/altusecase/altuse-server/internal/store"
)

// ItemService orchestrates the item generation pipeline and item reads.
type ItemService struct {
	store     store.Store
	images    imagesearch.Provider
	generator llm.Generator
	indexer   store.SearchIndexer
	logger    *logger.Logger

	// Collapses concurrent generation requests for the same slug into
	// a single pipeline run.
	group singleflight.Group
}

// NewItemService creates a new item service. images and generator may be
// nil in tests; a nil images provider means items are created without
// photos, a nil generator always falls back to placeholder content.
func NewItemService(s store.Store, images imagesearch.Provider, generator llm.Generator, indexer store.SearchIndexer, log *logger.Logger) *ItemService {
	return &ItemService{
		store:     s,
		images:    images,
		generator: generator,
		indexer:   indexer,
		logger:    log.WithComponent("item-service"),
	}
}

// GenerateResult is the outcome of a generation request.
type GenerateResult struct {
	Item    *domain.ItemFull `json:"item"`
	Created bool             `json:"created"`
	// Warnings lists non-fatal pipeline degradations, such as a failed
	// image lookup or placeholder content from a generation failure.
	Warnings []string `json:"warnings,omitempty"`
}

// Generate runs the full generation pipeline for an item name.
//
// The pipeline is idempotent on the item's slug: if an item for the
// derived slug already exists, the existing item is returned unchanged
// with Created=false and no external calls are made. Concurrent requests
// for the same slug share one pipeline run.
//
// Only the item row insert is fatal. Image lookup, content generation,
// and the per-row writes for uses, categories, and tags degrade into
// warnings so a partial page always beats no page.
func (s *ItemService) Generate(ctx context.Context, name string) (*GenerateResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("item name is required")
	}

	itemSlug := slug.Make(name)
	if itemSlug == "" {
		return nil, errors.Validationf("item name %q does not produce a usable slug", name)
	}

	v, err, _ := s.group.Do(itemSlug, func() (any, error) {
		return s.generate(ctx, name, itemSlug)
	})
	if err != nil {
		return nil, err
	}
	return v.(*GenerateResult), nil
}

func (s *ItemService) generate(ctx context.Context, name, itemSlug string) (*GenerateResult, error) {
	// Idempotency check before any external call.
	existing, err := s.store.GetItemFull(ctx, itemSlug)
	if err == nil {
		s.logger.Debug("item already exists, skipping generation", "slug", itemSlug)
		return &GenerateResult{Item: existing, Created: false}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing item: %w", err)
	}

	var warnings []string

	// Image lookup is best effort. No image is a valid outcome.
	var imageURL, attribution string
	if s.images != nil {
		photo, imgErr := s.images.FindImage(ctx, name)
		switch {
		case imgErr != nil:
			s.logger.Warn("image lookup failed", "item", name, "error", imgErr)
			warnings = append(warnings, "image lookup failed")
		case photo != nil:
			imageURL = photo.URL
			attribution = photo.Attribution
		}
	}

	content := s.generateContent(ctx, name, &warnings)

	item := &domain.Item{
		ID:             id.MustGenerate("item"),
		Name:           name,
		Slug:           itemSlug,
		ImageURL:       imageURL,
		Attribution:    attribution,
		AffiliateLink:  llm.AffiliateSearchLink(name),
		SEOTitle:       content.SEOTitle,
		SEODescription: content.SEODescription,
		CanonicalURL:   "/use/" + itemSlug,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with another writer. Their item wins.
			existing, getErr := s.store.GetItemFull(ctx, itemSlug)
			if getErr != nil {
				return nil, fmt.Errorf("fetch item after conflict: %w", getErr)
			}
			return &GenerateResult{Item: existing, Created: false}, nil
		}
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.persistUses(ctx, item, content.Uses, &warnings)
	s.persistCategories(ctx, item, content.Categories, &warnings)
	s.persistTags(ctx, item, content.Tags, &warnings)

	// Re-index now that relations are linked so category and tag
	// filters see the new item immediately.
	if s.indexer != nil {
		if idxErr := s.indexer.IndexItem(ctx, item); idxErr != nil {
			s.logger.Warn("failed to index generated item", "slug", itemSlug, "error", idxErr)
		}
	}

	full, err := s.store.GetItemFull(ctx, itemSlug)
	if err != nil {
		return nil, fmt.Errorf("read back generated item: %w", err)
	}

	s.logger.Info("generated item",
		"slug", itemSlug,
		"uses", len(full.Uses),
		"categories", len(full.Categories),
		"tags", len(full.Tags),
		"warnings", len(warnings),
	)

	return &GenerateResult{Item: full, Created: true, Warnings: warnings}, nil
}

// generateContent asks the model for content and substitutes the
// synthetic fallback on any failure.
func (s *ItemService) generateContent(ctx context.Context, name string, warnings *[]string) *llm.GeneratedContent {
	if s.generator == nil {
		*warnings = append(*warnings, "content generation unavailable, using placeholder content")
		return llm.Fallback(name)
	}

	content, err := s.generator.GenerateUses(ctx, name)
	if err != nil {
		s.logger.Warn("content generation failed, using fallback", "item", name, "error", err)
		*warnings = append(*warnings, "content generation failed, using placeholder content")
		return llm.Fallback(name)
	}
	return content
}

func (s *ItemService) persistUses(ctx context.Context, item *domain.Item, uses []llm.GeneratedUse, warnings *[]string) {
	now := time.Now().UTC()
	for i := range uses {
		gu := &uses[i]
		use := &domain.Use{
			ID:            id.MustGenerate("use"),
			ItemID:        item.ID,
			Title:         gu.Title,
			Description:   gu.Description,
			Difficulty:    domain.Difficulty(gu.Difficulty),
			AffiliateLink: gu.AffiliateLink,
			CreatedAt:     now,
		}
		if err := s.store.CreateUse(ctx, use); err != nil {
			s.logger.Warn("failed to persist use", "item", item.Slug, "title", gu.Title, "error", err)
			*warnings = append(*warnings, fmt.Sprintf("failed to save use %q", gu.Title))
		}
	}
}

func (s *ItemService) persistCategories(ctx context.Context, item *domain.Item, names []string, warnings *[]string) {
	for _, name := range names {
		category, err := s.store.GetCategoryByName(ctx, name)
		if err != nil {
			// Content is filtered against the seeded allow-list, so a
			// miss here means the category table was edited underneath us.
			s.logger.Warn("category not found", "item", item.Slug, "category", name, "error", err)
			*warnings = append(*warnings, fmt.Sprintf("failed to link category %q", name))
			continue
		}
		if err := s.store.LinkItemCategory(ctx, item.ID, category.ID); err != nil {
			s.logger.Warn("failed to link category", "item", item.Slug, "category", name, "error", err)
			*warnings = append(*warnings, fmt.Sprintf("failed to link category %q", name))
		}
	}
}

func (s *ItemService) persistTags(ctx context.Context, item *domain.Item, names []string, warnings *[]string) {
	for _, name := range names {
		tag, _, err := s.store.FindOrCreateTagByName(ctx, name)
		if err != nil {
			s.logger.Warn("failed to create tag", "item", item.Slug, "tag", name, "error", err)
			*warnings = append(*warnings, fmt.Sprintf("failed to save tag %q", name))
			continue
		}
		if err := s.store.LinkItemTag(ctx, item.ID, tag.ID); err != nil {
			s.logger.Warn("failed to link tag", "item", item.Slug, "tag", name, "error", err)
			*warnings = append(*warnings, fmt.Sprintf("failed to save tag %q", name))
		}
	}
}

// GetBySlug returns a fully hydrated item.
func (s *ItemService) GetBySlug(ctx context.Context, itemSlug string) (*domain.ItemFull, error) {
	item, err := s.store.GetItemFull(ctx, itemSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("item %q not found", itemSlug)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Recent returns the most recently created items, newest first. The
// default of nine fills the landing page grid.
func (s *ItemService) Recent(ctx context.Context, limit int) ([]*domain.Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 9
	}
	items, err := s.store.ListRecentItems(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent items: %w", err)
	}
	return items, nil
}

// ListAll returns every item, newest first.
func (s *ItemService) ListAll(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.store.ListAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Random returns a uniformly random item for the "surprise me" feature.
func (s *ItemService) Random(ctx context.Context) (*domain.ItemFull, error) {
	item, err := s.store.GetRandomItem(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("no items exist yet")
		}
		return nil, fmt.Errorf("get random item: %w", err)
	}
	return s.GetBySlug(ctx, item.Slug)
}

// ItemUpdate carries the editable fields of an item. Nil fields are
// left unchanged. A non-nil Uses or Tags slice replaces the item's
// current uses or tags wholesale; an empty slice clears them.
type ItemUpdate struct {
	Name           *string
	ImageURL       *string
	Attribution    *string
	SEOTitle       *string
	SEODescription *string
	Uses           *[]UseInput
	Tags           *[]string
}

// UseInput is a use supplied by an admin edit.
type UseInput struct {
	Title         string
	Description   string
	Difficulty    string
	ImageURL      string
	AffiliateLink string
}

// Update applies an admin edit to an item. The slug is immutable; it is
// the item's identity, and renaming an item does not move its page.
func (s *ItemService) Update(ctx context.Context, itemSlug string, update ItemUpdate) (*domain.ItemFull, error) {
	item, err := s.store.GetItemBySlug(ctx, itemSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("item %q not found", itemSlug)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, errors.Validation("item name cannot be empty")
		}
		item.Name = name
	}
	if update.ImageURL != nil {
		item.ImageURL = *update.ImageURL
	}
	if update.Attribution != nil {
		item.Attribution = *update.Attribution
	}
	if update.SEOTitle != nil {
		item.SEOTitle = *update.SEOTitle
	}
	if update.SEODescription != nil {
		item.SEODescription = *update.SEODescription
	}

	if update.Uses != nil {
		if err := s.replaceUses(ctx, item.ID, *update.Uses); err != nil {
			return nil, err
		}
	}
	if update.Tags != nil {
		if err := s.replaceTags(ctx, item.ID, *update.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if s.indexer != nil {
		if idxErr := s.indexer.IndexItem(ctx, item); idxErr != nil {
			s.logger.Warn("failed to re-index updated item", "slug", itemSlug, "error", idxErr)
		}
	}

	return s.store.GetItemFull(ctx, itemSlug)
}

// replaceUses swaps the item's uses for the supplied list. Vote counts
// on the old rows are discarded with them.
func (s *ItemService) replaceUses(ctx context.Context, itemID string, uses []UseInput) error {
	for i := range uses {
		difficulty := domain.Difficulty(strings.ToLower(uses[i].Difficulty))
		if !difficulty.Valid() {
			return errors.Validationf("invalid difficulty %q", uses[i].Difficulty)
		}
		uses[i].Difficulty = string(difficulty)
	}

	if err := s.store.DeleteUsesByItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete uses: %w", err)
	}
	now := time.Now().UTC()
	for _, in := range uses {
		use := &domain.Use{
			ID:            id.MustGenerate("use"),
			ItemID:        itemID,
			Title:         in.Title,
			Description:   in.Description,
			Difficulty:    domain.Difficulty(in.Difficulty),
			ImageURL:      in.ImageURL,
			AffiliateLink: in.AffiliateLink,
			CreatedAt:     now,
		}
		if err := s.store.CreateUse(ctx, use); err != nil {
			return fmt.Errorf("create use %q: %w", in.Title, err)
		}
	}
	return nil
}

// replaceTags swaps the item's tag links for the supplied names,
// creating tags that do not exist yet.
func (s *ItemService) replaceTags(ctx context.Context, itemID string, names []string) error {
	if err := s.store.ClearItemTags(ctx, itemID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, _, err := s.store.FindOrCreateTagByName(ctx, name)
		if err != nil {
			return fmt.Errorf("create tag %q: %w", name, err)
		}
		if err := s.store.LinkItemTag(ctx, itemID, tag.ID); err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}

// Delete removes an item and everything attached to it.
func (s *ItemService) Delete(ctx context.Context, itemSlug string) error {
	if err := s.store.DeleteItem(ctx, itemSlug); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("item %q not found", itemSlug)
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Count returns the total number of items.
func (s *ItemService) Count(ctx context.Context) (int, error) {
	return s.store.CountItems(ctx)
}
