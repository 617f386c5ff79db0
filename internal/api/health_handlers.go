package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/moodshopapp/moodshop-server/internal/store"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	// Unhealthy dominates; degraded only downgrades healthy.
	record := func(name string, ch ComponentHealth) {
		components[name] = ch
		if ch.Status == "unhealthy" {
			overall = "unhealthy"
		} else if ch.Status == "degraded" && overall == "healthy" {
			overall = "degraded"
		}
	}

	record("database", s.checkDatabase(ctx))
	record("search", s.checkSearchIndex())
	record("catalog", s.checkCatalog(ctx))
	record("detector", s.checkDetector())
	record("playlists", s.checkPlaylists())

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkDatabase verifies BadgerDB is accessible.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	// Handle nil store (e.g., in tests)
	if s.store == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "database not configured",
		}
	}

	start := time.Now()

	// Quick read operation to verify DB is accessible.
	// ErrServerNotFound is fine - DB is accessible, just not initialized yet.
	_, err := s.store.GetInstance(ctx)
	latency := time.Since(start)

	if err != nil && !errors.Is(err, store.ErrServerNotFound) {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "database read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkSearchIndex verifies the Bleve index is accessible.
func (s *Server) checkSearchIndex() ComponentHealth {
	if s.services == nil || s.services.Catalog == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "search index not configured",
		}
	}

	start := time.Now()

	docCount, err := s.services.Catalog.IndexedDocuments()
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "search index unreachable",
		}
	}

	// Index is accessible but might be empty (degraded until a catalog imports)
	if docCount == 0 {
		return ComponentHealth{
			Status:  "degraded",
			Latency: latency.String(),
			Message: "search index empty",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkCatalog verifies a product catalog has been imported.
func (s *Server) checkCatalog(ctx context.Context) ComponentHealth {
	if s.services == nil || s.services.Catalog == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "catalog not configured",
		}
	}

	start := time.Now()

	count, err := s.services.Catalog.CountProducts(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "catalog read failed",
		}
	}

	if count == 0 {
		return ComponentHealth{
			Status:  "degraded",
			Latency: latency.String(),
			Message: "no catalog loaded",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkDetector reports which classifier paths are active. The detector
// never fails outright; it degrades to the fallback mood instead.
func (s *Server) checkDetector() ComponentHealth {
	if s.services == nil || s.services.Recommend == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "detector not configured",
		}
	}

	faceDetection, remote := s.services.Recommend.DetectorMode()
	msg := "heuristic classifier"
	if faceDetection {
		msg = "face detection enabled"
	}
	if remote {
		msg += ", remote inference enabled"
	}

	return ComponentHealth{
		Status:  "healthy",
		Message: msg,
	}
}

// checkPlaylists reports whether the playlist provider is reachable.
// An unconfigured provider is expected in most deployments, so it only
// degrades, never fails.
func (s *Server) checkPlaylists() ComponentHealth {
	if s.services == nil || s.services.Playlist == nil || !s.services.Playlist.Available() {
		return ComponentHealth{
			Status:  "degraded",
			Message: "playlist provider not configured",
		}
	}

	return ComponentHealth{
		Status: "healthy",
	}
}
