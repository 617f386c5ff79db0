package api

import (
	"github.com/moodshopapp/moodshop-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Instance  *service.InstanceService
	Catalog   *service.CatalogService
	Recommend *service.RecommendService
	Feedback  *service.FeedbackService
	Playlist  *service.PlaylistService
}
