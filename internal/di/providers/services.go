package providers

import (
	"github.com/samber/do/v2"

	"github.com/moodshopapp/moodshop-server/internal/catalog"
	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/emotion"
	"github.com/moodshopapp/moodshop-server/internal/feedback"
	"github.com/moodshopapp/moodshop-server/internal/logger"
	"github.com/moodshopapp/moodshop-server/internal/mdns"
	"github.com/moodshopapp/moodshop-server/internal/service"
	"github.com/moodshopapp/moodshop-server/internal/validation"
)

// ProvideInstanceService provides the server instance service.
func ProvideInstanceService(i do.Injector) (*service.InstanceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	cfg := do.MustInvoke[*config.Config](i)

	return service.NewInstanceService(storeHandle.Store, log.Logger, cfg, mdns.ServerVersion), nil
}

// ProvideCatalogService provides the product catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	importer := do.MustInvoke[*catalog.Importer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, indexHandle.SearchIndex, importer, log.Logger), nil
}

// ProvidePlaylistService provides the mood playlist service.
func ProvidePlaylistService(i do.Injector) (*service.PlaylistService, error) {
	clientHandle := do.MustInvoke[*PlaylistClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlaylistService(clientHandle.Client, log.Logger), nil
}

// ProvideRecommendService provides the analyze-and-recommend service.
func ProvideRecommendService(i do.Injector) (*service.RecommendService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	detector := do.MustInvoke[*emotion.Detector](i)
	playlistService := do.MustInvoke[*service.PlaylistService](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendService(storeHandle.Store, detector, playlistService, cfg, log.Logger), nil
}

// ProvideFeedbackService provides the feedback service.
func ProvideFeedbackService(i do.Injector) (*service.FeedbackService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	feedbackLog := do.MustInvoke[*feedback.Log](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFeedbackService(storeHandle.Store, feedbackLog, validation.New(), log.Logger), nil
}
