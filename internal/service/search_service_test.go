package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altusecase/altuse-server/internal/search"
	"github.com/altusecase/altuse-server/internal/store/sqlite"
)

// setupSearchTest wires a real store and index through the full
// indexer loop the server uses in production.
func setupSearchTest(t *testing.T) (*ItemService, *SearchService) {
	t.Helper()

	dir := t.TempDir()
	testStore, err := sqlite.Open(filepath.Join(dir, "test.db"), testLogger().Logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testStore.Close() })

	require.NoError(t, testStore.EnsureDefaultCategories(context.Background()))

	index, err := search.NewSearchIndex(search.Options{DataPath: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	searchSvc := NewSearchService(testStore, index, testLogger())
	indexer := NewIndexer(searchSvc)
	testStore.SetSearchIndexer(indexer)

	itemSvc := NewItemService(testStore, nil, &fakeGenerator{}, indexer, testLogger())
	return itemSvc, searchSvc
}

func TestSearchService_GeneratedItemsAreSearchable(t *testing.T) {
	itemSvc, searchSvc := setupSearchTest(t)
	ctx := context.Background()

	_, err := itemSvc.Generate(ctx, "Mason Jar")
	require.NoError(t, err)
	_, err = itemSvc.Generate(ctx, "Wine Cork")
	require.NoError(t, err)

	result, err := searchSvc.Search(ctx, search.SearchParams{Query: "mason"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "mason-jar", result.Hits[0].Slug)

	// Categories were linked after the initial index write; the
	// post-link re-index makes them filterable.
	result, err = searchSvc.Search(ctx, search.SearchParams{Category: "DIY"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearchService_DeleteRemovesFromIndex(t *testing.T) {
	itemSvc, searchSvc := setupSearchTest(t)
	ctx := context.Background()

	_, err := itemSvc.Generate(ctx, "Mason Jar")
	require.NoError(t, err)

	require.NoError(t, itemSvc.Delete(ctx, "mason-jar"))

	result, err := searchSvc.Search(ctx, search.SearchParams{Query: "mason"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Total)
}

func TestSearchService_RebuildIndex(t *testing.T) {
	itemSvc, searchSvc := setupSearchTest(t)
	ctx := context.Background()

	_, err := itemSvc.Generate(ctx, "Mason Jar")
	require.NoError(t, err)
	_, err = itemSvc.Generate(ctx, "Wine Cork")
	require.NoError(t, err)

	indexed, err := searchSvc.RebuildIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, indexed)

	result, err := searchSvc.Search(ctx, search.SearchParams{Query: "cork"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}

func TestSearchService_SyncIndexOnStartup(t *testing.T) {
	itemSvc, searchSvc := setupSearchTest(t)
	ctx := context.Background()

	_, err := itemSvc.Generate(ctx, "Mason Jar")
	require.NoError(t, err)

	// Force drift, then sync.
	require.NoError(t, searchSvc.index.Rebuild())
	count, err := searchSvc.index.DocumentCount()
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)

	require.NoError(t, searchSvc.SyncIndexOnStartup(ctx))

	count, err = searchSvc.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
