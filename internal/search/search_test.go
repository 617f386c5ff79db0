package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func catalogDocs() []*SearchDocument {
	return []*SearchDocument{
		{ID: "prod-1", Name: "Aromatherapy Candle Set", MoodTags: []string{"sad", "comfort"}, Price: 12.99},
		{ID: "prod-2", Name: "Rainbow Kite", MoodTags: []string{"happy", "fun"}, Price: 24.50},
		{ID: "prod-3", Name: "Scented Bath Bombs", MoodTags: []string{"sad", "self-care"}, Price: 9.99},
		{ID: "prod-4", Name: "Party Confetti Cannon", MoodTags: []string{"happy"}, Price: 15.00},
	}
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

	doc := &SearchDocument{
		ID:       "prod-123",
		Name:     "Aromatherapy Candle",
		MoodTags: []string{"sad", "comfort"},
		Price:    12.99,
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

	err := index.IndexDocuments(catalogDocs())
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	err := index.IndexDocument(&SearchDocument{ID: "prod-123", Name: "Test Product"})
	require.NoError(t, err)

	err = index.DeleteDocument("prod-123")
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Search_Basic(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))

	result, err := index.Search(context.Background(), SearchParams{
		Query: "candle",
		Limit: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "prod-1", result.Hits[0].ID)
	assert.Equal(t, "Aromatherapy Candle Set", result.Hits[0].Name)
	assert.Equal(t, 12.99, result.Hits[0].Price)
}

func TestSearchIndex_Search_FuzzyTypo(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))

	// One-character typo should still find the kite.
	result, err := index.Search(context.Background(), SearchParams{
		Query: "kete",
		Limit: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "prod-2", result.Hits[0].ID)
}

func TestSearchIndex_Search_MoodTagFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))

	result, err := index.Search(context.Background(), SearchParams{
		MoodTags: []string{"happy"},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
	for _, hit := range result.Hits {
		assert.Contains(t, hit.MoodTags, "happy")
	}
}

func TestSearchIndex_Search_CompoundTagStaysIntact(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))

	// Keyword analyzer must not split "self-care" into "self" and "care".
	result, err := index.Search(context.Background(), SearchParams{
		MoodTags: []string{"self-care"},
		Limit:    10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "prod-3", result.Hits[0].ID)

	none, err := index.Search(context.Background(), SearchParams{
		MoodTags: []string{"self"},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Zero(t, none.Total)
}

func TestSearchIndex_Search_PriceRange(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))

	result, err := index.Search(context.Background(), SearchParams{
		MinPrice: 10,
		MaxPrice: 20,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total) // candle 12.99, confetti 15.00
}

func TestSearchIndex_Search_Facets(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))

	result, err := index.Search(context.Background(), SearchParams{
		Limit:         10,
		IncludeFacets: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Facets.MoodTags)

	counts := make(map[string]int)
	for _, facet := range result.Facets.MoodTags {
		counts[facet.Value] = facet.Count
	}
	assert.Equal(t, 2, counts["happy"])
	assert.Equal(t, 2, counts["sad"])
	assert.Equal(t, 1, counts["self-care"])
}

func TestSearchIndex_Search_SortByPrice(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))

	result, err := index.Search(context.Background(), SearchParams{
		Limit:  10,
		SortBy: "price",
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 4)
	assert.Equal(t, "prod-3", result.Hits[0].ID) // 9.99 first ascending
}

func TestSearchIndex_ReindexProducts(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	now := time.Now()
	first := []*domain.Product{
		{ID: "prod-old", Name: "Old Product", MoodTags: []string{"neutral"}, Price: 5, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, index.ReindexProducts(context.Background(), first))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	// Reindex fully replaces the previous catalog.
	second := []*domain.Product{
		{ID: "prod-a", Name: "Product A", MoodTags: []string{"happy"}, Price: 10, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-b", Name: "Product B", MoodTags: []string{"sad"}, Price: 12, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, index.ReindexProducts(context.Background(), second))

	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	result, err := index.Search(context.Background(), SearchParams{Query: "old", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestSearchIndex_Rebuild(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexDocuments(catalogDocs()))
	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	// Index remains usable after a rebuild.
	require.NoError(t, index.IndexDocument(&SearchDocument{ID: "prod-1", Name: "Fresh Product"}))
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
