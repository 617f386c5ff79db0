package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/media/images"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

// Importer loads the catalog file and replaces the stored product set.
type Importer struct {
	store     *store.Store
	processor *images.Processor
	storage   *images.Storage
	logger    *slog.Logger
	path      string
}

// NewImporter creates an importer for the catalog file at path.
func NewImporter(s *store.Store, processor *images.Processor, storage *images.Storage, path string, logger *slog.Logger) *Importer {
	return &Importer{
		store:     s,
		processor: processor,
		storage:   storage,
		logger:    logger,
		path:      path,
	}
}

// Path returns the catalog file being imported.
func (i *Importer) Path() string {
	return i.path
}

// ImportResult summarizes one catalog import.
type ImportResult struct {
	Products       int
	ImagesIngested int
	Unchanged      bool
	Checksum       string
	Duration       time.Duration
}

// Import reads, validates, and imports the catalog file. The replacement
// is all-or-nothing: any validation error leaves the previous catalog
// serving. Reimporting identical file content is a no-op.
func (i *Importer) Import(ctx context.Context) (*ImportResult, error) {
	start := time.Now()

	data, err := os.ReadFile(i.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	// Editors and the file watcher both fire events that leave the content
	// untouched; skip the import when the checksum matches.
	if manifest, err := i.store.GetCatalogManifest(ctx); err == nil && manifest.Checksum == checksum {
		i.logger.Debug("catalog unchanged, skipping import", "checksum", checksum)
		return &ImportResult{
			Products:  len(manifest.ProductIDs),
			Unchanged: true,
			Checksum:  checksum,
			Duration:  time.Since(start),
		}, nil
	}

	records, err := parseCatalog(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	products, ingested, err := i.buildProducts(ctx, records)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(products))
	for n, p := range products {
		ids[n] = p.ID
	}

	manifest := &store.CatalogManifest{
		ImportedAt: time.Now(),
		Source:     i.path,
		Checksum:   checksum,
		ProductIDs: ids,
	}

	if err := i.store.ReplaceProducts(ctx, products, manifest); err != nil {
		return nil, err
	}

	result := &ImportResult{
		Products:       len(products),
		ImagesIngested: ingested,
		Checksum:       checksum,
		Duration:       time.Since(start),
	}

	i.logger.Info("catalog imported",
		"path", i.path,
		"products", result.Products,
		"images", result.ImagesIngested,
		"duration", result.Duration,
	)

	return result, nil
}

// buildProducts converts validated rows into domain products, carrying
// creation timestamps over from the previous catalog and ingesting local
// images. Image failures are logged and skipped; a product without an
// image is still a product.
func (i *Importer) buildProducts(ctx context.Context, records []record) ([]*domain.Product, int, error) {
	previous := make(map[string]*domain.Product)
	if current, err := i.store.ListProducts(ctx); err == nil {
		for _, p := range current {
			previous[p.ID] = p
		}
	}

	now := time.Now()
	products := make([]*domain.Product, 0, len(records))
	ingested := 0

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		p := &domain.Product{
			ID:        rec.ID,
			Name:      rec.Name,
			Price:     rec.Price,
			MoodTags:  rec.MoodTags,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if prev, ok := previous[p.ID]; ok && !prev.CreatedAt.IsZero() {
			p.CreatedAt = prev.CreatedAt
		}

		switch {
		case rec.ImageURL == "":
			// No image listed.
		case isRemoteURL(rec.ImageURL):
			p.ImageURL = rec.ImageURL
		default:
			if i.ingestLocalImage(ctx, p, rec.ImageURL) {
				ingested++
			}
		}

		products = append(products, p)
	}

	return products, ingested, nil
}

// ingestLocalImage reads an image path relative to the catalog file,
// stores it through the image processor, and fills ImagePath/BlurHash.
func (i *Importer) ingestLocalImage(ctx context.Context, p *domain.Product, imagePath string) bool {
	if i.processor == nil || i.storage == nil {
		return false
	}

	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(i.path), imagePath)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		i.logger.Warn("catalog image not readable",
			"product_id", p.ID,
			"path", imagePath,
			"error", err,
		)
		return false
	}

	hash, err := i.processor.Ingest(ctx, p.ID, data)
	if err != nil {
		i.logger.Warn("failed to ingest product image",
			"product_id", p.ID,
			"path", imagePath,
			"error", err,
		)
		return false
	}

	p.ImagePath = i.storage.Path(p.ID)
	p.BlurHash = hash
	return true
}

func isRemoteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
