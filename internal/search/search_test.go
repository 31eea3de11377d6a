package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altusecase/altuse-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*SearchIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewSearchIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func TestNewSearchIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_IndexDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &ItemDocument{
		ID:   "item-123",
		Name: "Mason Jar",
		Slug: "mason-jar",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_IndexDocuments_Batch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*ItemDocument{
		{ID: "item-1", Name: "Mason Jar", Slug: "mason-jar"},
		{ID: "item-2", Name: "Wine Cork", Slug: "wine-cork"},
		{ID: "item-3", Name: "Tin Can", Slug: "tin-can"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &ItemDocument{
		ID:   "item-123",
		Name: "Mason Jar",
		Slug: "mason-jar",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	err = index.DeleteDocument("item-123")
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Search_Basic(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*ItemDocument{
		{ID: "item-1", Name: "Mason Jar", Slug: "mason-jar", Description: "Creative uses for a mason jar"},
		{ID: "item-2", Name: "Jar Lid", Slug: "jar-lid", Description: "What to do with spare jar lids"},
		{ID: "item-3", Name: "Wine Cork", Slug: "wine-cork", Description: "Cork craft ideas"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query: "jar",
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
	assert.Len(t, result.Hits, 2)
}

func TestSearchIndex_Search_NameBoost(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	// A name match should rank above a description-only match.
	docs := []*ItemDocument{
		{ID: "item-1", Name: "Old Ladder", Slug: "old-ladder", Description: "A sturdy wooden thing"},
		{ID: "item-2", Name: "Bookshelf", Slug: "bookshelf", Description: "Build one from an old ladder"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query: "ladder",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(2), result.Total)
	assert.Equal(t, "item-1", result.Hits[0].ID)
}

func TestSearchIndex_Search_ByCategory(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*ItemDocument{
		{ID: "item-1", Name: "Mason Jar", Slug: "mason-jar", Categories: []string{"DIY", "Home Decor"}},
		{ID: "item-2", Name: "Wine Cork", Slug: "wine-cork", Categories: []string{"Art"}},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query:    "",
		Category: "Art",
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "item-2", result.Hits[0].ID)
}

func TestSearchIndex_Search_Prefix(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &ItemDocument{
		ID:   "item-1",
		Name: "Toothbrush",
		Slug: "toothbrush",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query: "Tooth",
		Limit: 10,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Total, uint64(1))
}

func TestSearchIndex_Search_Fuzzy(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &ItemDocument{
		ID:   "item-1",
		Name: "Umbrella",
		Slug: "umbrella",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	// One character off should still match via the fuzzy clause.
	result, err := index.Search(context.Background(), SearchParams{
		Query: "umbrela",
		Limit: 10,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Total, uint64(1))
}

func TestSearchIndex_Search_StoredFields(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &ItemDocument{
		ID:         "item-1",
		Name:       "Mason Jar",
		Slug:       "mason-jar",
		ImageURL:   "https://images.example.com/jar.jpg",
		Categories: []string{"DIY"},
		Tags:       []string{"Upcycling", "Storage"},
		CreatedAt:  time.Now().UnixMilli(),
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query: "mason",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)

	hit := result.Hits[0]
	assert.Equal(t, "item-1", hit.ID)
	assert.Equal(t, "Mason Jar", hit.Name)
	assert.Equal(t, "mason-jar", hit.Slug)
	assert.Equal(t, "https://images.example.com/jar.jpg", hit.ImageURL)
	assert.Equal(t, []string{"DIY"}, hit.Categories)
	assert.ElementsMatch(t, []string{"Upcycling", "Storage"}, hit.Tags)
}

func TestSearchIndex_Search_SortByRecent(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	now := time.Now()
	docs := []*ItemDocument{
		{ID: "item-old", Name: "Jar One", Slug: "jar-one", CreatedAt: now.Add(-48 * time.Hour).UnixMilli()},
		{ID: "item-new", Name: "Jar Two", Slug: "jar-two", CreatedAt: now.UnixMilli()},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query:  "jar",
		SortBy: "recent",
		Limit:  10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(2), result.Total)
	assert.Equal(t, "item-new", result.Hits[0].ID)
}

func TestSearchIndex_Search_Highlighting(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &ItemDocument{
		ID:   "item-1",
		Name: "Mason Jar",
		Slug: "mason-jar",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query:     "mason",
		Limit:     10,
		Highlight: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Contains(t, result.Hits[0].Highlights, "name")
}

func TestSearchIndex_Rebuild(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &ItemDocument{ID: "item-1", Name: "Mason Jar", Slug: "mason-jar"}
	err := index.IndexDocument(doc)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	err = index.Rebuild()
	require.NoError(t, err)

	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_ReopenKeepsDocuments(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	index, err := NewSearchIndex(Options{DataPath: tmpDir})
	require.NoError(t, err)

	err = index.IndexDocument(&ItemDocument{ID: "item-1", Name: "Mason Jar", Slug: "mason-jar"})
	require.NoError(t, err)
	require.NoError(t, index.Close())

	reopened, err := NewSearchIndex(Options{DataPath: tmpDir})
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestDocumentFromItem(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &domain.Item{
		ID:             "item-1",
		Name:           "Mason Jar",
		Slug:           "mason-jar",
		ImageURL:       "https://images.example.com/jar.jpg",
		SEODescription: "Surprising ways to reuse a mason jar",
		CreatedAt:      created,
	}

	doc := DocumentFromItem(item, []string{"DIY"}, []string{"Upcycling"})

	assert.Equal(t, "item-1", doc.ID)
	assert.Equal(t, "Mason Jar", doc.Name)
	assert.Equal(t, "mason-jar", doc.Slug)
	assert.Equal(t, "Surprising ways to reuse a mason jar", doc.Description)
	assert.Equal(t, []string{"DIY"}, doc.Categories)
	assert.Equal(t, []string{"Upcycling"}, doc.Tags)
	assert.Equal(t, created.UnixMilli(), doc.CreatedAt)
}
