package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/altusecase/altuse-server/internal/domain"
)

func (s *Server) registerUseRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "voteOnUse",
		Method:      http.MethodPost,
		Path:        "/api/v1/uses/{id}/vote",
		Summary:     "Vote on use",
		Description: "Records an anonymous helpful / not-helpful vote on a use",
		Tags:        []string{"Uses"},
	}, s.handleVoteOnUse)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUse",
		Method:      http.MethodGet,
		Path:        "/api/v1/uses/{id}",
		Summary:     "Get use",
		Description: "Returns a single use with its vote counts",
		Tags:        []string{"Uses"},
	}, s.handleGetUse)
}

type VoteRequest struct {
	VoteType string `json:"voteType" enum:"yes,no" doc:"Which counter to increment"`
}

type VoteInput struct {
	ID   string `path:"id" doc:"Use ID"`
	Body VoteRequest
}

type UseOutput struct {
	Body UseResponse
}

func (s *Server) handleVoteOnUse(ctx context.Context, input *VoteInput) (*UseOutput, error) {
	use, err := s.services.Use.Vote(ctx, input.ID, domain.VoteKind(input.Body.VoteType))
	if err != nil {
		return nil, err
	}
	return &UseOutput{Body: useResponse(use)}, nil
}

type GetUseInput struct {
	ID string `path:"id" doc:"Use ID"`
}

func (s *Server) handleGetUse(ctx context.Context, input *GetUseInput) (*UseOutput, error) {
	use, err := s.services.Use.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UseOutput{Body: useResponse(use)}, nil
}
