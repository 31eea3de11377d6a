package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns all categories in name order",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategoryCounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/counts",
		Summary:     "List category counts",
		Description: "Returns categories with item counts, most populated first",
		Tags:        []string{"Categories"},
	}, s.handleListCategoryCounts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{slug}",
		Summary:     "Get category",
		Description: "Returns a category by slug",
		Tags:        []string{"Categories"},
	}, s.handleGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategoryItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{slug}/items",
		Summary:     "List category items",
		Description: "Returns the items linked to a category, newest first",
		Tags:        []string{"Categories"},
	}, s.handleListCategoryItems)
}

type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"All categories, name order"`
}

type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := s.services.Category.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := ListCategoriesResponse{Categories: make([]CategoryResponse, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = categoryResponse(c)
	}
	return &ListCategoriesOutput{Body: resp}, nil
}

type ListCategoryCountsInput struct {
	Limit int `query:"limit" minimum:"0" doc:"Optional cap on the number of categories returned"`
}

type CategoryWithCountResponse struct {
	CategoryResponse
	ItemCount int `json:"item_count" doc:"Number of items in this category"`
}

type ListCategoryCountsResponse struct {
	Categories []CategoryWithCountResponse `json:"categories" doc:"Categories, most populated first"`
}

type ListCategoryCountsOutput struct {
	Body ListCategoryCountsResponse
}

func (s *Server) handleListCategoryCounts(ctx context.Context, input *ListCategoryCountsInput) (*ListCategoryCountsOutput, error) {
	categories, err := s.services.Category.ListWithCounts(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	resp := ListCategoryCountsResponse{Categories: make([]CategoryWithCountResponse, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = CategoryWithCountResponse{
			CategoryResponse: categoryResponse(&c.Category),
			ItemCount:        c.ItemCount,
		}
	}
	return &ListCategoryCountsOutput{Body: resp}, nil
}

type GetCategoryInput struct {
	Slug string `path:"slug" doc:"Category slug"`
}

type CategoryOutput struct {
	Body CategoryResponse
}

func (s *Server) handleGetCategory(ctx context.Context, input *GetCategoryInput) (*CategoryOutput, error) {
	category, err := s.services.Category.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &CategoryOutput{Body: categoryResponse(category)}, nil
}

type ListCategoryItemsInput struct {
	Slug string `path:"slug" doc:"Category slug"`
}

func (s *Server) handleListCategoryItems(ctx context.Context, input *ListCategoryItemsInput) (*ItemListOutput, error) {
	items, err := s.services.Category.Items(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &ItemListOutput{Body: itemListResponse(items)}, nil
}
