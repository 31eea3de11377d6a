package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

func makeTestSuggestion(id, itemName string) *domain.Suggestion {
	now := time.Now()
	return &domain.Suggestion{
		ID:        id,
		ItemName:  itemName,
		Email:     "visitor@example.com",
		Status:    domain.SuggestionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetSuggestion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sug := makeTestSuggestion("sug-1", "Wine Corks")
	sug.Description = "So many corks left over."

	if err := s.CreateSuggestion(ctx, sug); err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}

	got, err := s.GetSuggestion(ctx, "sug-1")
	if err != nil {
		t.Fatalf("GetSuggestion: %v", err)
	}
	if got.ItemName != "Wine Corks" {
		t.Errorf("ItemName: got %q", got.ItemName)
	}
	if got.Description != sug.Description {
		t.Errorf("Description: got %q", got.Description)
	}
	if got.Status != domain.SuggestionPending {
		t.Errorf("Status: got %q, want pending", got.Status)
	}
}

func TestGetSuggestion_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSuggestion(context.Background(), "sug-missing")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListSuggestions_StatusFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"sug-1", "sug-2", "sug-3"} {
		if err := s.CreateSuggestion(ctx, makeTestSuggestion(id, "Item "+id)); err != nil {
			t.Fatalf("CreateSuggestion: %v", err)
		}
	}
	if _, err := s.UpdateSuggestionStatus(ctx, "sug-2", domain.SuggestionApproved); err != nil {
		t.Fatalf("UpdateSuggestionStatus: %v", err)
	}

	all, err := s.ListSuggestions(ctx, "")
	if err != nil {
		t.Fatalf("ListSuggestions all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 total, got %d", len(all))
	}

	pending, err := s.ListSuggestions(ctx, domain.SuggestionPending)
	if err != nil {
		t.Fatalf("ListSuggestions pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending, got %d", len(pending))
	}

	approved, err := s.ListSuggestions(ctx, domain.SuggestionApproved)
	if err != nil {
		t.Fatalf("ListSuggestions approved: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != "sug-2" {
		t.Errorf("unexpected approved list: %+v", approved)
	}
}

func TestUpdateSuggestionStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sug := makeTestSuggestion("sug-1", "Wine Corks")
	if err := s.CreateSuggestion(ctx, sug); err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}

	got, err := s.UpdateSuggestionStatus(ctx, "sug-1", domain.SuggestionRejected)
	if err != nil {
		t.Fatalf("UpdateSuggestionStatus: %v", err)
	}
	if got.Status != domain.SuggestionRejected {
		t.Errorf("Status: got %q, want rejected", got.Status)
	}
	if !got.UpdatedAt.After(sug.UpdatedAt) && got.UpdatedAt.Equal(sug.UpdatedAt) {
		t.Log("updated_at unchanged within clock resolution")
	}

	_, err = s.UpdateSuggestionStatus(ctx, "sug-missing", domain.SuggestionApproved)
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSuggestion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSuggestion(ctx, makeTestSuggestion("sug-1", "Wine Corks")); err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}

	if err := s.DeleteSuggestion(ctx, "sug-1"); err != nil {
		t.Fatalf("DeleteSuggestion: %v", err)
	}
	if _, err := s.GetSuggestion(ctx, "sug-1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.DeleteSuggestion(ctx, "sug-1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
