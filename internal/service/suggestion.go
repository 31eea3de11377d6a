package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/errors"
	"github.com/altusecase/altuse-server/internal/id"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/store"
	"github.com/altusecase/altuse-server/internal/validation"
)

// SuggestionService handles visitor-submitted item requests and their
// review workflow.
type SuggestionService struct {
	store  store.Store
	logger *logger.Logger
}

// NewSuggestionService creates a new suggestion service.
func NewSuggestionService(s store.Store, log *logger.Logger) *SuggestionService {
	return &SuggestionService{
		store:  s,
		logger: log.WithComponent("suggestion-service"),
	}
}

// SuggestionInput is a visitor submission.
type SuggestionInput struct {
	ItemName    string `json:"item_name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
}

// Create records a new suggestion in pending status. Duplicate
// submissions for the same item name are allowed; reviewers see them
// side by side.
func (s *SuggestionService) Create(ctx context.Context, input SuggestionInput) (*domain.Suggestion, error) {
	input.ItemName = strings.TrimSpace(input.ItemName)
	input.Description = strings.TrimSpace(input.Description)
	input.Email = strings.TrimSpace(input.Email)

	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sug := &domain.Suggestion{
		ID:          id.MustGenerate("sug"),
		ItemName:    input.ItemName,
		Description: input.Description,
		Email:       input.Email,
		Status:      domain.SuggestionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateSuggestion(ctx, sug); err != nil {
		return nil, fmt.Errorf("create suggestion: %w", err)
	}

	s.logger.Info("suggestion received", "id", sug.ID, "item_name", sug.ItemName)
	return sug, nil
}

// Get returns a suggestion by ID.
func (s *SuggestionService) Get(ctx context.Context, sugID string) (*domain.Suggestion, error) {
	sug, err := s.store.GetSuggestion(ctx, sugID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("suggestion %q not found", sugID)
		}
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	return sug, nil
}

// List returns suggestions, optionally filtered by status. An empty
// status returns everything.
func (s *SuggestionService) List(ctx context.Context, status domain.SuggestionStatus) ([]*domain.Suggestion, error) {
	if status != "" && !status.Valid() {
		return nil, errors.Validationf("unknown suggestion status %q", status)
	}
	return s.store.ListSuggestions(ctx, status)
}

// SetStatus moves a suggestion through the review workflow. Any
// transition between known statuses is allowed, including back to
// pending.
func (s *SuggestionService) SetStatus(ctx context.Context, sugID string, status domain.SuggestionStatus) (*domain.Suggestion, error) {
	if !status.Valid() {
		return nil, errors.Validationf("unknown suggestion status %q", status)
	}

	sug, err := s.store.UpdateSuggestionStatus(ctx, sugID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("suggestion %q not found", sugID)
		}
		return nil, fmt.Errorf("update suggestion status: %w", err)
	}

	s.logger.Info("suggestion status changed", "id", sugID, "status", status)
	return sug, nil
}

// Delete removes a suggestion entirely.
func (s *SuggestionService) Delete(ctx context.Context, sugID string) error {
	if err := s.store.DeleteSuggestion(ctx, sugID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("suggestion %q not found", sugID)
		}
		return fmt.Errorf("delete suggestion: %w", err)
	}
	return nil
}
