package providers

import (
	"context"
	"errors"
	"io/fs"

	"github.com/samber/do/v2"

	"github.com/moodshopapp/moodshop-server/internal/catalog"
	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/logger"
	"github.com/moodshopapp/moodshop-server/internal/media/images"
)

// ProvideCatalogImporter provides the catalog CSV importer.
func ProvideCatalogImporter(i do.Injector) (*catalog.Importer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	processor := do.MustInvoke[*images.Processor](i)
	storage := do.MustInvoke[*images.Storage](i)

	return catalog.NewImporter(storeHandle.Store, processor, storage, cfg.Catalog.Path, log.Logger), nil
}

// CatalogWatcherHandle wraps the catalog file watcher with shutdown capability.
// The watcher is nil when watching is disabled or unavailable.
type CatalogWatcherHandle struct {
	*catalog.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideCatalogWatcher provides the watcher that reloads the catalog when
// the file changes.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	importer := do.MustInvoke[*catalog.Importer](i)

	if !cfg.Catalog.Watch {
		log.Info("Catalog watching disabled by configuration")
		return &CatalogWatcherHandle{}, nil
	}

	w, err := catalog.NewWatcher(importer, cfg.Catalog.ReloadDebounce, log.Logger)
	if err != nil {
		// Non-fatal: the server runs with whatever catalog is loaded,
		// it just won't pick up file changes.
		log.Warn("Catalog watcher unavailable", "path", importer.Path(), "error", err)
		return &CatalogWatcherHandle{}, nil
	}

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Catalog watcher error", "error", err)
		}
	}()

	return &CatalogWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}

// ImportCatalogIfPresent loads the catalog file at startup. A missing or
// invalid file is not fatal: the server starts with the previously imported
// catalog (or none) and the watcher picks up the file once it is fixed.
func ImportCatalogIfPresent(i do.Injector) {
	log := do.MustInvoke[*logger.Logger](i)
	importer := do.MustInvoke[*catalog.Importer](i)

	ctx := context.Background()
	result, err := importer.Import(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("No catalog file found, starting with stored catalog",
				"path", importer.Path(),
			)
		} else {
			log.Warn("Catalog import failed, starting with stored catalog",
				"path", importer.Path(),
				"error", err,
			)
		}
		return
	}

	if result.Unchanged {
		log.Info("Catalog unchanged since last import", "products", result.Products)
		return
	}

	log.Info("Catalog loaded",
		"products", result.Products,
		"images", result.ImagesIngested,
		"duration", result.Duration,
	)
}
