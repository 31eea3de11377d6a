package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags sorted by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTagItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{name}/items",
		Summary:     "List tag items",
		Description: "Returns the items carrying a tag, newest first",
		Tags:        []string{"Tags"},
	}, s.handleListTagItems)
}

type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Tag name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"All tags"`
}

type ListTagsOutput struct {
	Body ListTagsResponse
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := ListTagsResponse{Tags: make([]TagResponse, len(tags))}
	for i, t := range tags {
		resp.Tags[i] = TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
	}
	return &ListTagsOutput{Body: resp}, nil
}

type ListTagItemsInput struct {
	Name string `path:"name" doc:"Tag name (exact match, case-sensitive)"`
}

func (s *Server) handleListTagItems(ctx context.Context, input *ListTagItemsInput) (*ItemListOutput, error) {
	items, err := s.services.Tag.Items(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	return &ItemListOutput{Body: itemListResponse(items)}, nil
}
