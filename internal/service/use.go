package service

import (
	"context"
	"fmt"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/errors"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/store"
)

// UseService handles reads and voting on individual uses.
type UseService struct {
	store  store.Store
	logger *logger.Logger
}

// NewUseService creates a new use service.
func NewUseService(s store.Store, log *logger.Logger) *UseService {
	return &UseService{
		store:  s,
		logger: log.WithComponent("use-service"),
	}
}

// Get returns a single use by ID.
func (s *UseService) Get(ctx context.Context, useID string) (*domain.Use, error) {
	use, err := s.store.GetUseByID(ctx, useID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("use %q not found", useID)
		}
		return nil, fmt.Errorf("get use: %w", err)
	}
	return use, nil
}

// Vote increments one of a use's vote counters and returns the updated
// use. The increment happens in the database, so concurrent votes are
// never lost. Votes are anonymous and unlimited; there is no per-visitor
// dedupe.
func (s *UseService) Vote(ctx context.Context, useID string, kind domain.VoteKind) (*domain.Use, error) {
	if !kind.Valid() {
		return nil, errors.Validationf("vote must be %q or %q", domain.VoteYes, domain.VoteNo)
	}

	use, err := s.store.AddVote(ctx, useID, kind)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("use %q not found", useID)
		}
		return nil, fmt.Errorf("add vote: %w", err)
	}

	s.logger.Debug("vote recorded", "use_id", useID, "kind", kind, "yes", use.VotesYes, "no", use.VotesNo)
	return use, nil
}
