package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/logger"
	"github.com/moodshopapp/moodshop-server/internal/media/images"
)

// ProvideImageStorage provides the product image storage.
func ProvideImageStorage(i do.Injector) (*images.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorageWithSubdir(cfg.Data.BasePath, "products")
	if err != nil {
		return nil, fmt.Errorf("product image storage: %w", err)
	}

	log.Info("Product image storage initialized")

	return storage, nil
}

// ProvideImageProcessor provides the image processor for product images.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	storage := do.MustInvoke[*images.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewProcessor(storage, log.Logger), nil
}
