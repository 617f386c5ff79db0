package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/moodshopapp/moodshop-server/internal/domain"
)

// Key prefixes for catalog storage.
const (
	productPrefix      = "product:"        // product:{id} → Product JSON
	catalogManifestKey = "catalog:current" // singleton import manifest
)

// Catalog errors.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
)

// CatalogManifest records the provenance of the last catalog import.
// ProductIDs preserves CSV row order, which is the display order for
// every product listing.
type CatalogManifest struct {
	ImportedAt time.Time `json:"importedAt"`
	Source     string    `json:"source"`
	Checksum   string    `json:"checksum"`
	ProductIDs []string  `json:"productIds"`
}

// ReplaceProducts atomically replaces the entire product catalog.
// Imports are all-or-nothing: either every product in the new catalog
// is written or the previous catalog stays intact. After a successful
// replace the search index is rebuilt asynchronously.
func (s *Store) ReplaceProducts(ctx context.Context, products []*domain.Product, manifest *CatalogManifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		// Collect stale product keys first; deleting while iterating is unsafe.
		prefix := []byte(productPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keyCopy := make([]byte, len(it.Item().Key()))
			copy(keyCopy, it.Item().Key())
			stale = append(stale, keyCopy)
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete stale product: %w", err)
			}
		}

		for _, p := range products {
			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("marshal product %s: %w", p.ID, err)
			}
			if err := txn.Set([]byte(productPrefix+p.ID), data); err != nil {
				return fmt.Errorf("set product %s: %w", p.ID, err)
			}
		}

		data, err := json.Marshal(manifest)
		if err != nil {
			return fmt.Errorf("marshal catalog manifest: %w", err)
		}
		return txn.Set([]byte(catalogManifestKey), data)
	})
	if err != nil {
		return fmt.Errorf("replace products: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "catalog replaced",
			slog.Int("products", len(products)),
			slog.String("source", manifest.Source),
		)
	}

	// Rebuild search asynchronously
	if s.searchIndexer != nil {
		go func() {
			if err := s.searchIndexer.ReindexProducts(context.Background(), products); err != nil {
				if s.logger != nil {
					s.logger.Warn("failed to reindex products for search", "products", len(products), "error", err)
				}
			}
		}()
	}

	return nil
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p domain.Product
	err := s.get([]byte(productPrefix+id), &p)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

// ListProducts returns the full catalog in import order.
// An empty catalog yields an empty slice, not an error.
func (s *Store) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	manifest, err := s.GetCatalogManifest(ctx)
	if errors.Is(err, ErrCatalogNotLoaded) {
		return []*domain.Product{}, nil
	}
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(manifest.ProductIDs))
	for _, id := range manifest.ProductIDs {
		p, err := s.GetProduct(ctx, id)
		if errors.Is(err, ErrProductNotFound) {
			// Manifest and products are written in one transaction, so a
			// missing record means a concurrent replace; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// ListProductsByTag returns catalog products whose mood tags contain the
// given tag, in import order. Matching is exact; callers normalize first.
func (s *Store) ListProductsByTag(ctx context.Context, tag string) ([]*domain.Product, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if p.HasTag(tag) {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// CountProducts returns the number of products in the current catalog.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	manifest, err := s.GetCatalogManifest(ctx)
	if errors.Is(err, ErrCatalogNotLoaded) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(manifest.ProductIDs), nil
}

// GetCatalogManifest retrieves the manifest of the last catalog import.
// Returns ErrCatalogNotLoaded if no catalog has been imported yet.
func (s *Store) GetCatalogManifest(ctx context.Context) (*CatalogManifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var manifest CatalogManifest
	err := s.get([]byte(catalogManifestKey), &manifest)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrCatalogNotLoaded
		}
		return nil, fmt.Errorf("get catalog manifest: %w", err)
	}

	return &manifest, nil
}
