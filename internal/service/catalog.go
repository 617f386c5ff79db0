// Package service holds the business logic between the HTTP layer and the
// store, detector, and integrations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/moodshopapp/moodshop-server/internal/catalog"
	"github.com/moodshopapp/moodshop-server/internal/domain"
	domainerrors "github.com/moodshopapp/moodshop-server/internal/errors"
	"github.com/moodshopapp/moodshop-server/internal/mood"
	"github.com/moodshopapp/moodshop-server/internal/search"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

// CatalogService serves product reads and catalog imports.
type CatalogService struct {
	store    *store.Store
	index    *search.SearchIndex
	importer *catalog.Importer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, index *search.SearchIndex, importer *catalog.Importer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		index:    index,
		importer: importer,
		logger:   logger,
	}
}

// GetProduct retrieves one product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return nil, domainerrors.NotFoundf("product %s not found", id).WithCause(err)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListProducts returns catalog products in import order. A mood label
// filters to products tagged with that mood (the recommender operation);
// limit caps the result when positive.
func (s *CatalogService) ListProducts(ctx context.Context, moodLabel string, limit int) ([]*domain.Product, error) {
	var (
		products []*domain.Product
		err      error
	)

	if moodLabel == "" {
		products, err = s.store.ListProducts(ctx)
	} else {
		m, ok := mood.Normalize(moodLabel)
		if !ok {
			m = mood.Fallback
		}
		products, err = s.store.ListProductsByTag(ctx, m.String())
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// SearchProducts runs a full-text catalog search.
func (s *CatalogService) SearchProducts(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// MoodInfo describes one vocabulary entry for clients.
type MoodInfo struct {
	Mood        mood.Mood `json:"mood"`
	DisplayName string    `json:"display_name"`
	Emoji       string    `json:"emoji"`
	RelatedTags []string  `json:"related_tags"`
}

// Moods returns the mood vocabulary in display order.
func (s *CatalogService) Moods() []MoodInfo {
	all := mood.All()
	infos := make([]MoodInfo, len(all))
	for i, m := range all {
		infos[i] = MoodInfo{
			Mood:        m,
			DisplayName: m.DisplayName(),
			Emoji:       m.Emoji(),
			RelatedTags: m.RelatedTags(),
		}
	}
	return infos
}

// Reload imports the catalog file, replacing the current catalog. A
// validation failure leaves the previous catalog serving and surfaces as
// a validation error.
func (s *CatalogService) Reload(ctx context.Context) (*catalog.ImportResult, error) {
	result, err := s.importer.Import(ctx)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeValidation, "catalog import failed")
	}
	return result, nil
}

// Manifest returns the provenance of the current catalog.
func (s *CatalogService) Manifest(ctx context.Context) (*store.CatalogManifest, error) {
	manifest, err := s.store.GetCatalogManifest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrCatalogNotLoaded) {
			return nil, domainerrors.NotFound("no catalog loaded").WithCause(err)
		}
		return nil, fmt.Errorf("get catalog manifest: %w", err)
	}
	return manifest, nil
}

// CountProducts returns the current catalog size.
func (s *CatalogService) CountProducts(ctx context.Context) (int, error) {
	return s.store.CountProducts(ctx)
}

// IndexedDocuments reports how many products the search index holds.
func (s *CatalogService) IndexedDocuments() (uint64, error) {
	return s.index.DocumentCount()
}
