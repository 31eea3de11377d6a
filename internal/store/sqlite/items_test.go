package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// makeTestItem creates a domain.Item with sensible defaults for testing.
func makeTestItem(id, name, slug string) *domain.Item {
	return &domain.Item{
		ID:             id,
		Name:           name,
		Slug:           slug,
		ImageURL:       "https://images.example.com/" + slug + ".jpg",
		Attribution:    "Photo by Example on Pexels",
		AffiliateLink:  "https://www.amazon.com/s?k=" + slug,
		SEOTitle:       "10 Alternative Uses for " + name,
		SEODescription: "Creative ways to reuse " + name + " around the house.",
		CanonicalURL:   "https://altusecase.com/item/" + slug,
		CreatedAt:      time.Now(),
	}
}

func TestCreateAndGetItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := makeTestItem("item-1", "Duct Tape", "duct-tape")

	if err := s.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, err := s.GetItemBySlug(ctx, "duct-tape")
	if err != nil {
		t.Fatalf("GetItemBySlug: %v", err)
	}

	if got.ID != item.ID {
		t.Errorf("ID: got %q, want %q", got.ID, item.ID)
	}
	if got.Name != item.Name {
		t.Errorf("Name: got %q, want %q", got.Name, item.Name)
	}
	if got.ImageURL != item.ImageURL {
		t.Errorf("ImageURL: got %q, want %q", got.ImageURL, item.ImageURL)
	}
	if got.SEOTitle != item.SEOTitle {
		t.Errorf("SEOTitle: got %q, want %q", got.SEOTitle, item.SEOTitle)
	}

	// Timestamps should round-trip through RFC3339Nano.
	if got.CreatedAt.Unix() != item.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, item.CreatedAt)
	}
}

func TestCreateItem_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	err := s.CreateItem(ctx, makeTestItem("item-2", "Duct Tape", "duct-tape"))
	if err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateItem_EmptyOptionalFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := &domain.Item{
		ID:        "item-1",
		Name:      "Mason Jar",
		Slug:      "mason-jar",
		CreatedAt: time.Now(),
	}

	if err := s.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, err := s.GetItemBySlug(ctx, "mason-jar")
	if err != nil {
		t.Fatalf("GetItemBySlug: %v", err)
	}
	if got.ImageURL != "" || got.Attribution != "" || got.SEOTitle != "" {
		t.Errorf("optional fields should round-trip as empty, got %+v", got)
	}
}

func TestGetItemBySlug_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetItemBySlug(context.Background(), "nope")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestItemExistsBySlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exists, err := s.ItemExistsBySlug(ctx, "duct-tape")
	if err != nil {
		t.Fatalf("ItemExistsBySlug: %v", err)
	}
	if exists {
		t.Error("expected exists=false before insert")
	}

	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	exists, err = s.ItemExistsBySlug(ctx, "duct-tape")
	if err != nil {
		t.Fatalf("ItemExistsBySlug: %v", err)
	}
	if !exists {
		t.Error("expected exists=true after insert")
	}
}

func TestListRecentItems_Order(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, slug := range []string{"first", "second", "third"} {
		item := makeTestItem("item-"+slug, slug, slug)
		item.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem %s: %v", slug, err)
		}
	}

	items, err := s.ListRecentItems(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentItems: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Slug != "third" || items[1].Slug != "second" {
		t.Errorf("expected newest first, got %s, %s", items[0].Slug, items[1].Slug)
	}
}

func TestListRecentItems_Empty(t *testing.T) {
	s := newTestStore(t)

	items, err := s.ListRecentItems(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentItems: %v", err)
	}
	if items == nil {
		t.Error("expected non-nil empty slice")
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}

func TestGetRandomItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Empty table.
	_, err := s.GetRandomItem(ctx)
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound on empty table, got %v", err)
	}

	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, err := s.GetRandomItem(ctx)
	if err != nil {
		t.Fatalf("GetRandomItem: %v", err)
	}
	if got.Slug != "duct-tape" {
		t.Errorf("expected duct-tape, got %s", got.Slug)
	}
}

func TestUpdateItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := makeTestItem("item-1", "Duct Tape", "duct-tape")
	if err := s.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	item.Name = "Gaffer Tape"
	item.SEOTitle = "Updated Title"
	if err := s.UpdateItem(ctx, item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, err := s.GetItemBySlug(ctx, "duct-tape")
	if err != nil {
		t.Fatalf("GetItemBySlug: %v", err)
	}
	if got.Name != "Gaffer Tape" {
		t.Errorf("Name: got %q, want %q", got.Name, "Gaffer Tape")
	}
	if got.SEOTitle != "Updated Title" {
		t.Errorf("SEOTitle: got %q, want %q", got.SEOTitle, "Updated Title")
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateItem(context.Background(), makeTestItem("item-missing", "Ghost", "ghost"))
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItem_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := makeTestItem("item-1", "Duct Tape", "duct-tape")
	if err := s.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if err := s.CreateUse(ctx, makeTestUse("use-1", "item-1")); err != nil {
		t.Fatalf("CreateUse: %v", err)
	}
	tag, _, err := s.FindOrCreateTagByName(ctx, "DIY")
	if err != nil {
		t.Fatalf("FindOrCreateTagByName: %v", err)
	}
	if err := s.LinkItemTag(ctx, "item-1", tag.ID); err != nil {
		t.Fatalf("LinkItemTag: %v", err)
	}

	if err := s.DeleteItem(ctx, "duct-tape"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	if _, err := s.GetItemBySlug(ctx, "duct-tape"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	uses, err := s.ListUsesByItem(ctx, "item-1")
	if err != nil {
		t.Fatalf("ListUsesByItem: %v", err)
	}
	if len(uses) != 0 {
		t.Errorf("expected uses cascade-deleted, got %d", len(uses))
	}

	tags, err := s.ListTagsByItem(ctx, "item-1")
	if err != nil {
		t.Fatalf("ListTagsByItem: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected tag links cascade-deleted, got %d", len(tags))
	}
}

func TestDeleteItem_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteItem(context.Background(), "nope")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetItemFull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := makeTestItem("item-1", "Duct Tape", "duct-tape")
	if err := s.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	use := makeTestUse("use-1", "item-1")
	if err := s.CreateUse(ctx, use); err != nil {
		t.Fatalf("CreateUse: %v", err)
	}

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories: %v", err)
	}
	cat, err := s.GetCategoryByName(ctx, "DIY")
	if err != nil {
		t.Fatalf("GetCategoryByName: %v", err)
	}
	if err := s.LinkItemCategory(ctx, "item-1", cat.ID); err != nil {
		t.Fatalf("LinkItemCategory: %v", err)
	}

	tag, _, err := s.FindOrCreateTagByName(ctx, "Crafts")
	if err != nil {
		t.Fatalf("FindOrCreateTagByName: %v", err)
	}
	if err := s.LinkItemTag(ctx, "item-1", tag.ID); err != nil {
		t.Fatalf("LinkItemTag: %v", err)
	}

	full, err := s.GetItemFull(ctx, "duct-tape")
	if err != nil {
		t.Fatalf("GetItemFull: %v", err)
	}

	if full.Name != "Duct Tape" {
		t.Errorf("Name: got %q", full.Name)
	}
	if len(full.Uses) != 1 || full.Uses[0].ID != "use-1" {
		t.Errorf("Uses: got %+v", full.Uses)
	}
	if len(full.Categories) != 1 || full.Categories[0].Name != "DIY" {
		t.Errorf("Categories: got %+v", full.Categories)
	}
	if len(full.Tags) != 1 || full.Tags[0] != "Crafts" {
		t.Errorf("Tags: got %+v", full.Tags)
	}
}

func TestGetItemFull_EmptyRelations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	full, err := s.GetItemFull(ctx, "duct-tape")
	if err != nil {
		t.Fatalf("GetItemFull: %v", err)
	}

	// Hydrated slices are empty, never nil.
	if full.Uses == nil || full.Categories == nil || full.Tags == nil {
		t.Errorf("expected non-nil slices, got %+v", full)
	}
	if len(full.Uses) != 0 || len(full.Categories) != 0 || len(full.Tags) != 0 {
		t.Errorf("expected empty relations, got %+v", full)
	}
}

func TestCountItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountItems(ctx)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0, got %d", n)
	}

	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	n, err = s.CountItems(ctx)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1, got %d", n)
	}
}
