package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/altusecase/altuse-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search items",
		Description: "Full-text search over items with typo tolerance and category filtering",
		Tags:        []string{"Search"},
	}, s.handleSearchItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildSearchIndex",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/rebuild",
		Summary:     "Rebuild search index",
		Description: "Drops the search index and re-indexes every item from the database",
		Tags:        []string{"Search"},
	}, s.handleRebuildSearchIndex)
}

type SearchItemsInput struct {
	Query    string `query:"q" doc:"Search query"`
	Category string `query:"category" doc:"Filter by exact category name"`
	Limit    int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset   int    `query:"offset" default:"0" minimum:"0" doc:"Page offset"`
	SortBy   string `query:"sort" enum:"relevance,recent,name" default:"relevance" doc:"Sort order"`
}

type SearchItemsOutput struct {
	Body search.SearchResult
}

func (s *Server) handleSearchItems(ctx context.Context, input *SearchItemsInput) (*SearchItemsOutput, error) {
	result, err := s.services.Search.Search(ctx, search.SearchParams{
		Query:     input.Query,
		Category:  input.Category,
		Limit:     input.Limit,
		Offset:    input.Offset,
		SortBy:    input.SortBy,
		Highlight: true,
	})
	if err != nil {
		return nil, err
	}
	return &SearchItemsOutput{Body: *result}, nil
}

type RebuildSearchIndexResponse struct {
	Indexed int `json:"indexed" doc:"Number of items indexed"`
}

type RebuildSearchIndexOutput struct {
	Body RebuildSearchIndexResponse
}

func (s *Server) handleRebuildSearchIndex(ctx context.Context, _ *struct{}) (*RebuildSearchIndexOutput, error) {
	indexed, err := s.services.Search.RebuildIndex(ctx)
	if err != nil {
		return nil, err
	}
	return &RebuildSearchIndexOutput{Body: RebuildSearchIndexResponse{Indexed: indexed}}, nil
}
