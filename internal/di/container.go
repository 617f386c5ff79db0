// Package di provides dependency injection configuration for the MoodShop server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/moodshopapp/moodshop-server/internal/catalog"
	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/di/providers"
	"github.com/moodshopapp/moodshop-server/internal/emotion"
	"github.com/moodshopapp/moodshop-server/internal/feedback"
	"github.com/moodshopapp/moodshop-server/internal/logger"
	"github.com/moodshopapp/moodshop-server/internal/media/images"
	"github.com/moodshopapp/moodshop-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorage)
	do.Provide(injector, providers.ProvideImageProcessor)

	// Detection layer
	do.Provide(injector, providers.ProvideDetector)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalogImporter)
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Integrations
	do.Provide(injector, providers.ProvidePlaylistClient)
	do.Provide(injector, providers.ProvideFeedbackLog)

	// Business services
	do.Provide(injector, providers.ProvideInstanceService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvidePlaylistService)
	do.Provide(injector, providers.ProvideRecommendService)
	do.Provide(injector, providers.ProvideFeedbackService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*images.Storage](injector)
	_ = do.MustInvoke[*images.Processor](injector)
	_ = do.MustInvoke[*emotion.Detector](injector)
	_ = do.MustInvoke[*catalog.Importer](injector)
	_ = do.MustInvoke[*providers.PlaylistClientHandle](injector)
	_ = do.MustInvoke[*feedback.Log](injector)

	// Business services
	_ = do.MustInvoke[*service.InstanceService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.PlaylistService](injector)
	_ = do.MustInvoke[*service.RecommendService](injector)
	_ = do.MustInvoke[*service.FeedbackService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Load the catalog, then watch it for changes
	providers.ImportCatalogIfPresent(injector)
	_ = do.MustInvoke[*providers.CatalogWatcherHandle](injector)

	// Trigger search reindex if needed
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
