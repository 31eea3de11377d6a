package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

// makeTestUse creates a domain.Use with sensible defaults for testing.
func makeTestUse(id, itemID string) *domain.Use {
	return &domain.Use{
		ID:            id,
		ItemID:        itemID,
		Title:         "Cable Organizer",
		Description:   "Wrap loose cables into tidy bundles.",
		Difficulty:    domain.DifficultyEasy,
		AffiliateLink: "https://www.amazon.com/s?k=cable+organizer",
		CreatedAt:     time.Now(),
	}
}

func seedItemWithUses(t *testing.T, s *Store, n int) {
	t.Helper()
	ctx := context.Background()

	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		u := makeTestUse("use-"+string(rune('a'+i)), "item-1")
		u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.CreateUse(ctx, u); err != nil {
			t.Fatalf("CreateUse: %v", err)
		}
	}
}

func TestCreateAndGetUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateItem(ctx, makeTestItem("item-1", "Duct Tape", "duct-tape")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	use := makeTestUse("use-1", "item-1")
	if err := s.CreateUse(ctx, use); err != nil {
		t.Fatalf("CreateUse: %v", err)
	}

	got, err := s.GetUseByID(ctx, "use-1")
	if err != nil {
		t.Fatalf("GetUseByID: %v", err)
	}
	if got.Title != use.Title {
		t.Errorf("Title: got %q, want %q", got.Title, use.Title)
	}
	if got.Difficulty != domain.DifficultyEasy {
		t.Errorf("Difficulty: got %q, want easy", got.Difficulty)
	}
	if got.VotesYes != 0 || got.VotesNo != 0 {
		t.Errorf("votes should start at zero, got yes=%d no=%d", got.VotesYes, got.VotesNo)
	}
}

func TestGetUseByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUseByID(context.Background(), "use-missing")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsesByItem_Order(t *testing.T) {
	s := newTestStore(t)
	seedItemWithUses(t, s, 3)

	uses, err := s.ListUsesByItem(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("ListUsesByItem: %v", err)
	}
	if len(uses) != 3 {
		t.Fatalf("expected 3 uses, got %d", len(uses))
	}
	// Insertion order preserved.
	if uses[0].ID != "use-a" || uses[2].ID != "use-c" {
		t.Errorf("unexpected order: %s, %s, %s", uses[0].ID, uses[1].ID, uses[2].ID)
	}
}

func TestAddVote(t *testing.T) {
	s := newTestStore(t)
	seedItemWithUses(t, s, 1)
	ctx := context.Background()

	got, err := s.AddVote(ctx, "use-a", domain.VoteYes)
	if err != nil {
		t.Fatalf("AddVote yes: %v", err)
	}
	if got.VotesYes != 1 || got.VotesNo != 0 {
		t.Errorf("after yes vote: yes=%d no=%d", got.VotesYes, got.VotesNo)
	}

	got, err = s.AddVote(ctx, "use-a", domain.VoteNo)
	if err != nil {
		t.Fatalf("AddVote no: %v", err)
	}
	if got.VotesYes != 1 || got.VotesNo != 1 {
		t.Errorf("after no vote: yes=%d no=%d", got.VotesYes, got.VotesNo)
	}
}

func TestAddVote_Concurrent(t *testing.T) {
	s := newTestStore(t)
	seedItemWithUses(t, s, 1)
	ctx := context.Background()

	// Increments are applied in SQL; no vote may be lost.
	const votes = 20
	done := make(chan error, votes)
	for i := 0; i < votes; i++ {
		go func() {
			_, err := s.AddVote(ctx, "use-a", domain.VoteYes)
			done <- err
		}()
	}
	for i := 0; i < votes; i++ {
		if err := <-done; err != nil {
			t.Fatalf("AddVote: %v", err)
		}
	}

	got, err := s.GetUseByID(ctx, "use-a")
	if err != nil {
		t.Fatalf("GetUseByID: %v", err)
	}
	if got.VotesYes != votes {
		t.Errorf("expected %d yes votes, got %d", votes, got.VotesYes)
	}
}

func TestAddVote_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddVote(context.Background(), "use-missing", domain.VoteYes)
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddVote_InvalidKind(t *testing.T) {
	s := newTestStore(t)
	seedItemWithUses(t, s, 1)

	_, err := s.AddVote(context.Background(), "use-a", domain.VoteKind("maybe"))
	if err == nil {
		t.Fatal("expected error for invalid vote kind")
	}
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrInvalidInput.Code {
		t.Errorf("expected invalid input error, got %v", err)
	}
}
