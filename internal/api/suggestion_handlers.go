package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/service"
)

func (s *Server) registerSuggestionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createSuggestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/suggestions",
		Summary:     "Submit suggestion",
		Description: "Records a visitor's request for an item to be generated",
		Tags:        []string{"Suggestions"},
	}, s.handleCreateSuggestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSuggestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/suggestions",
		Summary:     "List suggestions",
		Description: "Returns suggestions, optionally filtered by review status",
		Tags:        []string{"Suggestions"},
	}, s.handleListSuggestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSuggestion",
		Method:      http.MethodGet,
		Path:        "/api/v1/suggestions/{id}",
		Summary:     "Get suggestion",
		Description: "Returns a suggestion by ID",
		Tags:        []string{"Suggestions"},
	}, s.handleGetSuggestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSuggestionStatus",
		Method:      http.MethodPatch,
		Path:        "/api/v1/suggestions/{id}",
		Summary:     "Update suggestion status",
		Description: "Moves a suggestion through the review workflow",
		Tags:        []string{"Suggestions"},
	}, s.handleUpdateSuggestionStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSuggestion",
		Method:      http.MethodDelete,
		Path:        "/api/v1/suggestions/{id}",
		Summary:     "Delete suggestion",
		Description: "Removes a suggestion entirely",
		Tags:        []string{"Suggestions"},
	}, s.handleDeleteSuggestion)
}

type SuggestionResponse struct {
	ID          string    `json:"id" doc:"Suggestion ID"`
	ItemName    string    `json:"item_name" doc:"Requested item name"`
	Description string    `json:"description,omitempty" doc:"Why this item"`
	Email       string    `json:"email,omitempty" doc:"Optional contact email"`
	Status      string    `json:"status" doc:"pending, approved, or rejected"`
	CreatedAt   time.Time `json:"created_at" doc:"Submission time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last status change"`
}

func suggestionResponse(sug *domain.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		ID:          sug.ID,
		ItemName:    sug.ItemName,
		Description: sug.Description,
		Email:       sug.Email,
		Status:      string(sug.Status),
		CreatedAt:   sug.CreatedAt,
		UpdatedAt:   sug.UpdatedAt,
	}
}

type CreateSuggestionRequest struct {
	ItemName    string `json:"item_name" minLength:"2" maxLength:"100" doc:"Item name to request"`
	Description string `json:"description,omitempty" maxLength:"500" doc:"Why this item"`
	Email       string `json:"email,omitempty" format:"email" doc:"Optional contact email"`
}

type CreateSuggestionInput struct {
	Body CreateSuggestionRequest
}

type SuggestionOutput struct {
	Body SuggestionResponse
}

type CreateSuggestionOutput struct {
	Status int
	Body   SuggestionResponse
}

func (s *Server) handleCreateSuggestion(ctx context.Context, input *CreateSuggestionInput) (*CreateSuggestionOutput, error) {
	sug, err := s.services.Suggestion.Create(ctx, service.SuggestionInput{
		ItemName:    input.Body.ItemName,
		Description: input.Body.Description,
		Email:       input.Body.Email,
	})
	if err != nil {
		return nil, err
	}
	return &CreateSuggestionOutput{Status: http.StatusCreated, Body: suggestionResponse(sug)}, nil
}

type ListSuggestionsInput struct {
	Status string `query:"status" doc:"Filter by review status (pending, approved, or rejected); empty returns all"`
}

type ListSuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions" doc:"Suggestions, newest first"`
}

type ListSuggestionsOutput struct {
	Body ListSuggestionsResponse
}

func (s *Server) handleListSuggestions(ctx context.Context, input *ListSuggestionsInput) (*ListSuggestionsOutput, error) {
	suggestions, err := s.services.Suggestion.List(ctx, domain.SuggestionStatus(input.Status))
	if err != nil {
		return nil, err
	}

	resp := ListSuggestionsResponse{Suggestions: make([]SuggestionResponse, len(suggestions))}
	for i, sug := range suggestions {
		resp.Suggestions[i] = suggestionResponse(sug)
	}
	return &ListSuggestionsOutput{Body: resp}, nil
}

type GetSuggestionInput struct {
	ID string `path:"id" doc:"Suggestion ID"`
}

func (s *Server) handleGetSuggestion(ctx context.Context, input *GetSuggestionInput) (*SuggestionOutput, error) {
	sug, err := s.services.Suggestion.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SuggestionOutput{Body: suggestionResponse(sug)}, nil
}

type UpdateSuggestionStatusRequest struct {
	Status string `json:"status" enum:"pending,approved,rejected" doc:"New review status"`
}

type UpdateSuggestionStatusInput struct {
	ID   string `path:"id" doc:"Suggestion ID"`
	Body UpdateSuggestionStatusRequest
}

func (s *Server) handleUpdateSuggestionStatus(ctx context.Context, input *UpdateSuggestionStatusInput) (*SuggestionOutput, error) {
	sug, err := s.services.Suggestion.SetStatus(ctx, input.ID, domain.SuggestionStatus(input.Body.Status))
	if err != nil {
		return nil, err
	}
	return &SuggestionOutput{Body: suggestionResponse(sug)}, nil
}

type DeleteSuggestionInput struct {
	ID string `path:"id" doc:"Suggestion ID"`
}

type DeleteSuggestionOutput struct {
	Status int
}

func (s *Server) handleDeleteSuggestion(ctx context.Context, input *DeleteSuggestionInput) (*DeleteSuggestionOutput, error) {
	if err := s.services.Suggestion.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteSuggestionOutput{Status: http.StatusNoContent}, nil
}
