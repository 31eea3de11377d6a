package sqlite

import (
	"context"
	"testing"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

func TestEnsureDefaultCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories: %v", err)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != len(domain.DefaultCategories) {
		t.Errorf("expected %d categories, got %d", len(domain.DefaultCategories), len(categories))
	}

	// Running again must not duplicate.
	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories again: %v", err)
	}
	categories, err = s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != len(domain.DefaultCategories) {
		t.Errorf("second run: expected %d categories, got %d", len(domain.DefaultCategories), len(categories))
	}
}

func TestEnsureDefaultCategories_PreservesEdits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories: %v", err)
	}

	cat, err := s.GetCategoryByName(ctx, "DIY")
	if err != nil {
		t.Fatalf("GetCategoryByName: %v", err)
	}

	// Edit the description directly.
	_, err = s.db.ExecContext(ctx,
		`UPDATE categories SET description = ? WHERE id = ?`, "edited", cat.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories: %v", err)
	}

	got, err := s.GetCategoryBySlug(ctx, cat.Slug)
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if got.Description != "edited" {
		t.Errorf("seeding overwrote edited description: %q", got.Description)
	}
}

func TestGetCategory_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetCategoryBySlug(ctx, "nope"); err != store.ErrNotFound {
		t.Errorf("GetCategoryBySlug: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetCategoryByName(ctx, "Nope"); err != store.ErrNotFound {
		t.Errorf("GetCategoryByName: expected ErrNotFound, got %v", err)
	}
}

func TestListCategoriesWithCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories: %v", err)
	}
	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	diy, err := s.GetCategoryByName(ctx, "DIY")
	if err != nil {
		t.Fatalf("GetCategoryByName: %v", err)
	}
	if err := s.LinkItemCategory(ctx, "item-1", diy.ID); err != nil {
		t.Fatalf("LinkItemCategory: %v", err)
	}

	counts, err := s.ListCategoriesWithCounts(ctx)
	if err != nil {
		t.Fatalf("ListCategoriesWithCounts: %v", err)
	}
	if len(counts) != len(domain.DefaultCategories) {
		t.Fatalf("expected all categories, got %d", len(counts))
	}

	var diyCount, otherCount int
	for _, cc := range counts {
		if cc.Name == "DIY" {
			diyCount = cc.ItemCount
		} else {
			otherCount += cc.ItemCount
		}
	}
	if diyCount != 1 {
		t.Errorf("DIY count: got %d, want 1", diyCount)
	}
	if otherCount != 0 {
		t.Errorf("other categories should have zero items, got %d", otherCount)
	}
}

func TestLinkItemCategory_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories: %v", err)
	}
	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	diy, err := s.GetCategoryByName(ctx, "DIY")
	if err != nil {
		t.Fatalf("GetCategoryByName: %v", err)
	}

	// Linking twice is a no-op, not an error.
	if err := s.LinkItemCategory(ctx, "item-1", diy.ID); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := s.LinkItemCategory(ctx, "item-1", diy.ID); err != nil {
		t.Fatalf("second link: %v", err)
	}

	cats, err := s.ListCategoriesByItem(ctx, "item-1")
	if err != nil {
		t.Fatalf("ListCategoriesByItem: %v", err)
	}
	if len(cats) != 1 {
		t.Errorf("expected 1 linked category, got %d", len(cats))
	}
}

func TestListItemsByCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("EnsureDefaultCategories: %v", err)
	}
	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	diy, err := s.GetCategoryByName(ctx, "DIY")
	if err != nil {
		t.Fatalf("GetCategoryByName: %v", err)
	}
	if err := s.LinkItemCategory(ctx, "item-1", diy.ID); err != nil {
		t.Fatalf("LinkItemCategory: %v", err)
	}

	items, err := s.ListItemsByCategory(ctx, diy.Slug)
	if err != nil {
		t.Fatalf("ListItemsByCategory: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "duct-tape" {
		t.Errorf("unexpected items: %+v", items)
	}

	// Unknown category slug is an error, not an empty list.
	if _, err := s.ListItemsByCategory(ctx, "nope"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
