package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/generate",
		Summary:     "Generate item",
		Description: "Generates a full alternative-use page for an item name, or returns the existing page for the same slug",
		Tags:        []string{"Items"},
	}, s.handleGenerateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List items",
		Description: "Returns every item, newest first",
		Tags:        []string{"Items"},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRecentItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/recent",
		Summary:     "List recent items",
		Description: "Returns the most recently generated items, newest first",
		Tags:        []string{"Items"},
	}, s.handleListRecentItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRandomItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/random",
		Summary:     "Get random item",
		Description: "Returns a random item with its full content",
		Tags:        []string{"Items"},
	}, s.handleGetRandomItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{slug}",
		Summary:     "Get item",
		Description: "Returns a fully hydrated item by slug",
		Tags:        []string{"Items"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{slug}",
		Summary:     "Update item",
		Description: "Updates an item's editable fields",
		Tags:        []string{"Items"},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{slug}",
		Summary:     "Delete item",
		Description: "Deletes an item and all of its uses, links, and votes",
		Tags:        []string{"Items"},
	}, s.handleDeleteItem)
}

type UseResponse struct {
	ID            string    `json:"id" doc:"Use ID"`
	Title         string    `json:"title" doc:"Short title"`
	Description   string    `json:"description" doc:"How to pull this use off"`
	Difficulty    string    `json:"difficulty" doc:"easy, medium, or hard"`
	ImageURL      string    `json:"image_url,omitempty" doc:"Illustration URL"`
	AffiliateLink string    `json:"affiliate_link,omitempty" doc:"Product search link"`
	VotesYes      int       `json:"votes_yes" doc:"Helpful votes"`
	VotesNo       int       `json:"votes_no" doc:"Not-helpful votes"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation time"`
}

type CategoryResponse struct {
	ID          string `json:"id" doc:"Category ID"`
	Name        string `json:"name" doc:"Display name"`
	Slug        string `json:"slug" doc:"URL-safe slug"`
	Description string `json:"description,omitempty" doc:"Description"`
	IconName    string `json:"icon_name,omitempty" doc:"Client-side icon identifier"`
}

type ItemResponse struct {
	ID             string    `json:"id" doc:"Item ID"`
	Name           string    `json:"name" doc:"Item name"`
	Slug           string    `json:"slug" doc:"URL-safe slug"`
	ImageURL       string    `json:"image_url,omitempty" doc:"Hero image URL"`
	Attribution    string    `json:"attribution,omitempty" doc:"Image credit"`
	AffiliateLink  string    `json:"affiliate_link,omitempty" doc:"Product search link"`
	SEOTitle       string    `json:"seo_title" doc:"Page title"`
	SEODescription string    `json:"seo_description" doc:"Meta description"`
	CanonicalURL   string    `json:"canonical_url" doc:"Site-relative page path"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation time"`
}

type ItemFullResponse struct {
	ItemResponse
	Uses       []UseResponse      `json:"uses" doc:"Alternative uses"`
	Categories []CategoryResponse `json:"categories" doc:"Linked categories"`
	Tags       []string           `json:"tags" doc:"Tag names"`
}

func itemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Slug:           item.Slug,
		ImageURL:       item.ImageURL,
		Attribution:    item.Attribution,
		AffiliateLink:  item.AffiliateLink,
		SEOTitle:       item.SEOTitle,
		SEODescription: item.SEODescription,
		CanonicalURL:   item.CanonicalURL,
		CreatedAt:      item.CreatedAt,
	}
}

func itemFullResponse(item *domain.ItemFull) ItemFullResponse {
	resp := ItemFullResponse{
		ItemResponse: itemResponse(&item.Item),
		Uses:         make([]UseResponse, len(item.Uses)),
		Categories:   make([]CategoryResponse, len(item.Categories)),
		Tags:         item.Tags,
	}
	for i, u := range item.Uses {
		resp.Uses[i] = useResponse(&u)
	}
	for i, c := range item.Categories {
		resp.Categories[i] = categoryResponse(&c)
	}
	return resp
}

func useResponse(u *domain.Use) UseResponse {
	return UseResponse{
		ID:            u.ID,
		Title:         u.Title,
		Description:   u.Description,
		Difficulty:    string(u.Difficulty),
		ImageURL:      u.ImageURL,
		AffiliateLink: u.AffiliateLink,
		VotesYes:      u.VotesYes,
		VotesNo:       u.VotesNo,
		CreatedAt:     u.CreatedAt,
	}
}

func categoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		IconName:    c.IconName,
	}
}

type GenerateItemRequest struct {
	ItemName string `json:"itemName" minLength:"1" maxLength:"100" doc:"Item name to generate content for"`
}

type GenerateItemInput struct {
	Body GenerateItemRequest
}

type GenerateItemResponse struct {
	Item     ItemFullResponse `json:"item" doc:"The generated or existing item"`
	Created  bool             `json:"created" doc:"True if a new item was generated"`
	Warnings []string         `json:"warnings,omitempty" doc:"Non-fatal pipeline degradations"`
}

type GenerateItemOutput struct {
	Body GenerateItemResponse
}

// handleGenerateItem responds 200 whether the item was generated or an
// existing page was returned; the created flag carries the difference.
func (s *Server) handleGenerateItem(ctx context.Context, input *GenerateItemInput) (*GenerateItemOutput, error) {
	result, err := s.services.Item.Generate(ctx, input.Body.ItemName)
	if err != nil {
		return nil, err
	}

	return &GenerateItemOutput{
		Body: GenerateItemResponse{
			Item:     itemFullResponse(result.Item),
			Created:  result.Created,
			Warnings: result.Warnings,
		},
	}, nil
}

type ListItemsInput struct{}

func (s *Server) handleListItems(ctx context.Context, _ *ListItemsInput) (*ItemListOutput, error) {
	items, err := s.services.Item.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemListOutput{Body: itemListResponse(items)}, nil
}

type ListRecentItemsInput struct {
	Limit int `query:"limit" default:"9" minimum:"1" maximum:"100" doc:"Number of items to return"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items" doc:"Items, newest first"`
}

type ItemListOutput struct {
	Body ItemListResponse
}

func (s *Server) handleListRecentItems(ctx context.Context, input *ListRecentItemsInput) (*ItemListOutput, error) {
	items, err := s.services.Item.Recent(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ItemListOutput{Body: itemListResponse(items)}, nil
}

func itemListResponse(items []*domain.Item) ItemListResponse {
	resp := ItemListResponse{Items: make([]ItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = itemResponse(item)
	}
	return resp
}

type ItemFullOutput struct {
	Body ItemFullResponse
}

type GetRandomItemInput struct{}

func (s *Server) handleGetRandomItem(ctx context.Context, _ *GetRandomItemInput) (*ItemFullOutput, error) {
	item, err := s.services.Item.Random(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemFullOutput{Body: itemFullResponse(item)}, nil
}

type GetItemInput struct {
	Slug string `path:"slug" doc:"Item slug"`
}

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*ItemFullOutput, error) {
	item, err := s.services.Item.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &ItemFullOutput{Body: itemFullResponse(item)}, nil
}

type UseRequest struct {
	Title         string `json:"title" minLength:"1" doc:"Short title"`
	Description   string `json:"description" doc:"How to pull this use off"`
	Difficulty    string `json:"difficulty" enum:"easy,medium,hard" doc:"Difficulty rating"`
	ImageURL      string `json:"image_url,omitempty" doc:"Illustration URL"`
	AffiliateLink string `json:"affiliate_link,omitempty" doc:"Product search link"`
}

type UpdateItemRequest struct {
	Name           *string `json:"name,omitempty" doc:"Item name"`
	ImageURL       *string `json:"image_url,omitempty" doc:"Hero image URL"`
	Attribution    *string `json:"attribution,omitempty" doc:"Image credit"`
	SEOTitle       *string `json:"seo_title,omitempty" doc:"Page title"`
	SEODescription *string `json:"seo_description,omitempty" doc:"Meta description"`
	// Uses and Tags, when present, replace the item's current lists.
	Uses *[]UseRequest `json:"uses,omitempty" doc:"Replacement use list"`
	Tags *[]string     `json:"tags,omitempty" doc:"Replacement tag names"`
}

type UpdateItemInput struct {
	Slug string `path:"slug" doc:"Item slug"`
	Body UpdateItemRequest
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemFullOutput, error) {
	update := service.ItemUpdate{
		Name:           input.Body.Name,
		ImageURL:       input.Body.ImageURL,
		Attribution:    input.Body.Attribution,
		SEOTitle:       input.Body.SEOTitle,
		SEODescription: input.Body.SEODescription,
		Tags:           input.Body.Tags,
	}
	if input.Body.Uses != nil {
		uses := make([]service.UseInput, len(*input.Body.Uses))
		for i, u := range *input.Body.Uses {
			uses[i] = service.UseInput{
				Title:         u.Title,
				Description:   u.Description,
				Difficulty:    u.Difficulty,
				ImageURL:      u.ImageURL,
				AffiliateLink: u.AffiliateLink,
			}
		}
		update.Uses = &uses
	}

	item, err := s.services.Item.Update(ctx, input.Slug, update)
	if err != nil {
		return nil, err
	}
	return &ItemFullOutput{Body: itemFullResponse(item)}, nil
}

type DeleteItemInput struct {
	Slug string `path:"slug" doc:"Item slug"`
}

type DeleteItemOutput struct {
	Status int
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
	if err := s.services.Item.Delete(ctx, input.Slug); err != nil {
		return nil, err
	}
	return &DeleteItemOutput{Status: http.StatusNoContent}, nil
}
