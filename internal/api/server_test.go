package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altusecase/altuse-server/internal/config"
	"github.com/altusecase/altuse-server/internal/imagesearch"
	"github.com/altusecase/altuse-server/internal/llm"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/search"
	"github.com/altusecase/altuse-server/internal/service"
	"github.com/altusecase/altuse-server/internal/store/sqlite"
)

// stubImages returns one fixed photo for every query.
type stubImages struct{}

func (stubImages) FindImage(_ context.Context, _ string) (*imagesearch.Result, error) {
	return &imagesearch.Result{
		URL:         "https://images.example.com/photo.jpg",
		Attribution: "Photo by Jane Doe on Pexels",
	}, nil
}

// stubGenerator returns deterministic content for every item.
type stubGenerator struct {
	err error
}

func (g *stubGenerator) GenerateUses(_ context.Context, itemName string) (*llm.GeneratedContent, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &llm.GeneratedContent{
		Uses: []llm.GeneratedUse{
			{Title: "Vase", Description: "Hold flowers.", Difficulty: "easy", AffiliateLink: llm.AffiliateSearchLink(itemName)},
			{Title: "Pen Holder", Description: "Desk organization.", Difficulty: "medium", AffiliateLink: llm.AffiliateSearchLink(itemName)},
		},
		Categories:     []string{"DIY"},
		Tags:           []string{"Upcycling"},
		SEOTitle:       fmt.Sprintf("Alternative Uses for %s", itemName),
		SEODescription: fmt.Sprintf("Creative uses for %s.", itemName),
	}, nil
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	log := logger.New(logger.Config{Writer: os.Stderr, Format: "json"})

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), log.Logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.EnsureDefaultCategories(context.Background()))

	index, err := search.NewSearchIndex(search.Options{DataPath: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	searchSvc := service.NewSearchService(st, index, log)
	indexer := service.NewIndexer(searchSvc)
	st.SetSearchIndexer(indexer)

	services := &Services{
		Item:       service.NewItemService(st, stubImages{}, &stubGenerator{}, indexer, log),
		Use:        service.NewUseService(st, log),
		Category:   service.NewCategoryService(st, log),
		Tag:        service.NewTagService(st, log),
		Suggestion: service.NewSuggestionService(st, log),
		Ads:        service.NewAdsService(st, log),
		Search:     searchSvc,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			CORSOrigins: []string{"*"},
		},
	}

	s := NewServer(cfg, services, log)
	t.Cleanup(s.Close)
	return &testServer{Server: s, api: humatest.Wrap(t, s.api)}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "healthy")
}

// Drives the real router rather than humatest so the whole middleware
// chain runs; requests must make it through the limiter to the routes
// humachi registered.
func TestRouterServesThroughMiddleware(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	ts.Server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestGenerateItem(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{
		"itemName": "Mason Jar",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"slug":"mason-jar"`)
	assert.Contains(t, body, `"created":true`)
	assert.Contains(t, body, "Photo by Jane Doe on Pexels")

	// Second request for the same slug returns the existing item.
	resp = ts.api.Post("/api/v1/items/generate", map[string]any{
		"itemName": "mason JAR",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"created":false`)
}

func TestGenerateItem_InvalidName(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{
		"itemName": "!!!",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGenerateItem_MissingName(t *testing.T) {
	ts := setupTestServer(t)

	// Schema failures get the same 400 as unnormalizable names.
	resp := ts.api.Post("/api/v1/items/generate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetItem(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/items/mason-jar")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"Mason Jar"`)
	assert.Contains(t, resp.Body.String(), `"uses"`)

	resp = ts.api.Get("/api/v1/items/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListRecentItems(t *testing.T) {
	ts := setupTestServer(t)

	for _, name := range []string{"Mason Jar", "Wine Cork"} {
		resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": name})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/items/recent?limit=1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "wine-cork")
	assert.NotContains(t, resp.Body.String(), "mason-jar")
}

func TestListItems(t *testing.T) {
	ts := setupTestServer(t)

	for _, name := range []string{"Mason Jar", "Wine Cork"} {
		resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": name})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/items")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "mason-jar")
	assert.Contains(t, resp.Body.String(), "wine-cork")
}

func TestUpdateItem(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Put("/api/v1/items/mason-jar", map[string]any{
		"seo_title": "Mason Jar Hacks",
		"uses": []map[string]any{
			{"title": "Lantern", "description": "Add a candle.", "difficulty": "easy"},
		},
		"tags": []string{"Lighting"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"seo_title":"Mason Jar Hacks"`)
	assert.Contains(t, body, `"title":"Lantern"`)
	assert.NotContains(t, body, "Pen Holder")
	assert.Contains(t, body, "Lighting")
	// Slug stays put even though content changed.
	assert.Contains(t, body, `"slug":"mason-jar"`)
}

func TestDeleteItem(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/items/mason-jar")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/items/mason-jar")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestVoteOnUse(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	full, err := ts.services.Item.GetBySlug(context.Background(), "mason-jar")
	require.NoError(t, err)
	require.NotEmpty(t, full.Uses)
	useID := full.Uses[0].ID

	resp = ts.api.Post("/api/v1/uses/"+useID+"/vote", map[string]any{"voteType": "yes"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"votes_yes":1`)

	resp = ts.api.Post("/api/v1/uses/"+useID+"/vote", map[string]any{"voteType": "maybe"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Post("/api/v1/uses/use-missing/vote", map[string]any{"voteType": "no"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListCategories(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/categories")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"DIY"`)
	assert.NotContains(t, resp.Body.String(), `"item_count"`)

	resp = ts.api.Get("/api/v1/categories/counts?limit=5")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"item_count"`)
}

func TestListCategoryItems(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/categories/diy/items")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "mason-jar")

	resp = ts.api.Get("/api/v1/categories/unknown/items")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListTagItems(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/tags/Upcycling/items")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "mason-jar")
}

func TestSearchItems(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search?q=mason")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"slug":"mason-jar"`)
	assert.Contains(t, resp.Body.String(), `"total":1`)
}

func TestRebuildSearchIndex(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items/generate", map[string]any{"itemName": "Mason Jar"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/search/rebuild")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"indexed":1`)
}

func TestSuggestionWorkflow(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/suggestions", map[string]any{
		"item_name": "Rubber Band",
		"email":     "someone@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"pending"`)

	var sugID string
	{
		all, err := ts.services.Suggestion.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, all, 1)
		sugID = all[0].ID
	}

	resp = ts.api.Patch("/api/v1/suggestions/"+sugID, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"approved"`)

	resp = ts.api.Get("/api/v1/suggestions?status=approved")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Rubber Band")

	resp = ts.api.Delete("/api/v1/suggestions/" + sugID)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/suggestions/" + sugID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSuggestion_InvalidEmail(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/suggestions", map[string]any{
		"item_name": "Rubber Band",
		"email":     "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAdSettings(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/ads/settings/header_ad", map[string]any{
		"setting_value": "slot-123",
		"is_enabled":    true,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"setting_key":"header_ad"`)

	resp = ts.api.Get("/api/v1/ads/settings/header_ad")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"is_enabled":true`)

	// Replace in place.
	resp = ts.api.Put("/api/v1/ads/settings/header_ad", map[string]any{
		"setting_value": "slot-456",
		"is_enabled":    false,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/ads/settings")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "slot-456")
	assert.NotContains(t, resp.Body.String(), "slot-123")

	resp = ts.api.Get("/api/v1/ads/settings/missing_ad")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGenerateRateLimit(t *testing.T) {
	ts := setupTestServer(t)

	// Drive the full router so the middleware runs; humatest calls the
	// huma API directly and skips it.
	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items/generate",
			strings.NewReader(`{"itemName":"Mason Jar"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.9:4711"
		rec := httptest.NewRecorder()
		ts.Server.ServeHTTP(rec, req)
		return rec.Code
	}

	limited := false
	for i := 0; i < generateBurst+1; i++ {
		if post() == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "expected a 429 after exhausting the burst")

	// Reads are not limited.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/recent", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	rec := httptest.NewRecorder()
	ts.Server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResponseEnvelope(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"v":1`)
	assert.Contains(t, resp.Body.String(), `"success":true`)

	resp = ts.api.Get("/api/v1/items/missing")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":false`)
	assert.Contains(t, resp.Body.String(), `"error"`)
}
