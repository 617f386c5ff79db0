package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/emotion"
	"github.com/moodshopapp/moodshop-server/internal/playlists"
	"github.com/moodshopapp/moodshop-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecommendConfig() *config.Config {
	return &config.Config{
		Detector:  config.DetectorConfig{MinConfidence: 0.6},
		Recommend: config.RecommendConfig{DefaultLimit: 5, MaxLimit: 20},
	}
}

func setupTestRecommend(t *testing.T) (*RecommendService, *store.Store) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	testStore, err := store.New(filepath.Join(t.TempDir(), "store"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testStore.Close() })

	detector, err := emotion.NewDetector(emotion.Options{Logger: logger})
	require.NoError(t, err)

	svc := NewRecommendService(testStore, detector, NewPlaylistService(nil, logger), testRecommendConfig(), logger)
	return svc, testStore
}

// seedMoodCatalog loads six happy products and two neutral ones, in a fixed
// order, the way a catalog import would.
func seedMoodCatalog(t *testing.T, s *store.Store) []string {
	t.Helper()

	var products []*domain.Product
	var ids []string
	for i := 1; i <= 6; i++ {
		p := &domain.Product{
			ID:       fmt.Sprintf("prod-happy-%d", i),
			Name:     fmt.Sprintf("Party Kit %d", i),
			Price:    float64(i) * 5,
			MoodTags: []string{"happy", "fun"},
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	for i := 1; i <= 2; i++ {
		p := &domain.Product{
			ID:       fmt.Sprintf("prod-neutral-%d", i),
			Name:     fmt.Sprintf("Everyday Mug %d", i),
			Price:    9.99,
			MoodTags: []string{"neutral", "practical"},
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}

	manifest := &store.CatalogManifest{
		ImportedAt: time.Now(),
		Source:     "seed",
		Checksum:   "seed",
		ProductIDs: ids,
	}
	require.NoError(t, s.ReplaceProducts(context.Background(), products, manifest))
	return ids
}

func solidJPEG(t *testing.T, level uint8) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			img.Set(x, y, color.RGBA{level, level, level, 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// checkerJPEG has mid brightness and very high contrast, which the
// heuristic reads as surprise at confidence 0.5. The 16px squares survive
// JPEG compression.
func checkerJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			c := color.RGBA{A: 255}
			if (x/16+y/16)%2 == 0 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestAnalyzeAndRecommend_ConfidentMood(t *testing.T) {
	svc, testStore := setupTestRecommend(t)
	ids := seedMoodCatalog(t, testStore)

	result, err := svc.AnalyzeAndRecommend(context.Background(), solidJPEG(t, 230))
	require.NoError(t, err)

	assert.Equal(t, "happy", result.Analysis.Mood.String())
	assert.Equal(t, 0.7, result.Analysis.Confidence)
	assert.False(t, result.Analysis.Fallback)
	assert.Empty(t, result.Analysis.Notice)

	// Six products carry the happy tag; the default limit caps at five.
	require.Len(t, result.Products, 5)
	for i, p := range result.Products {
		assert.Equal(t, ids[i], p.ID, "products must keep catalog order")
	}

	// No playlist provider configured.
	require.NotNil(t, result.Playlists)
	assert.False(t, result.Playlists.Available)
	assert.Empty(t, result.Playlists.Playlists)
}

func TestAnalyzeAndRecommend_CorruptUploadGetsNeutralSet(t *testing.T) {
	svc, testStore := setupTestRecommend(t)
	seedMoodCatalog(t, testStore)

	result, err := svc.AnalyzeAndRecommend(context.Background(), []byte("not an image"))
	require.NoError(t, err)

	assert.True(t, result.Analysis.Fallback)
	assert.Equal(t, "neutral", result.Analysis.Mood.String())
	assert.Equal(t, emotion.NoticeNoMood, result.Analysis.Notice)

	// The neutral default set keeps the page populated.
	require.Len(t, result.Products, 2)
	assert.Equal(t, "prod-neutral-1", result.Products[0].ID)
	assert.False(t, result.Playlists.Available)
}

func TestAnalyzeAndRecommend_LowConfidenceHoldsProducts(t *testing.T) {
	svc, testStore := setupTestRecommend(t)
	seedMoodCatalog(t, testStore)

	result, err := svc.AnalyzeAndRecommend(context.Background(), checkerJPEG(t))
	require.NoError(t, err)

	assert.Equal(t, "surprise", result.Analysis.Mood.String())
	assert.Equal(t, 0.5, result.Analysis.Confidence)
	assert.False(t, result.Analysis.Fallback)
	assert.Contains(t, result.Analysis.Notice, "Low confidence")

	assert.Empty(t, result.Products)
	assert.False(t, result.Playlists.Available)
	assert.Empty(t, result.Playlists.Playlists)
}

func TestAnalyzeAndRecommend_AttachesPlaylists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"playlists":{"items":[
			{"name":"Feel Good Radio","external_urls":{"spotify":"https://open.example/1"},"tracks":{"total":42}},
			{"name":"Sunshine Pop","external_urls":{"spotify":"https://open.example/2"},"tracks":{"total":31}}
		]}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	logger := slog.New(slog.DiscardHandler)
	client := playlists.New(playlists.Options{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/token",
		APIBaseURL:   srv.URL,
		Logger:       logger,
	})
	t.Cleanup(client.Close)

	testStore, err := store.New(filepath.Join(t.TempDir(), "store"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testStore.Close() })
	seedMoodCatalog(t, testStore)

	detector, err := emotion.NewDetector(emotion.Options{Logger: logger})
	require.NoError(t, err)

	svc := NewRecommendService(testStore, detector, NewPlaylistService(client, logger), testRecommendConfig(), logger)

	result, err := svc.AnalyzeAndRecommend(context.Background(), solidJPEG(t, 230))
	require.NoError(t, err)

	assert.True(t, result.Playlists.Available)
	require.Len(t, result.Playlists.Playlists, 2)
	assert.Equal(t, "Feel Good Radio", result.Playlists.Playlists[0].Name)
}

func TestProductsForMood_LabelHandling(t *testing.T) {
	svc, testStore := setupTestRecommend(t)
	seedMoodCatalog(t, testStore)
	ctx := context.Background()

	// Case-insensitive canonical label, default limit.
	products, err := svc.ProductsForMood(ctx, "HAPPY", 0)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	// Explicit limit.
	products, err = svc.ProductsForMood(ctx, "happy", 2)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	// A limit past the cap is clamped, not an error.
	products, err = svc.ProductsForMood(ctx, "happy", 500)
	require.NoError(t, err)
	assert.Len(t, products, 6)

	// Unknown labels land on the neutral default set.
	products, err = svc.ProductsForMood(ctx, "zonked", 0)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod-neutral-1", products[0].ID)
}

func TestProductsForMood_EmptyCatalog(t *testing.T) {
	svc, _ := setupTestRecommend(t)

	products, err := svc.ProductsForMood(context.Background(), "happy", 0)
	require.NoError(t, err)
	assert.Empty(t, products)
}
