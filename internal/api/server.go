// Package api provides the HTTP API server and handlers for the MoodShop application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/mdns"
	"github.com/moodshopapp/moodshop-server/internal/media/images"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

// Photo analysis is CPU-bound, so it gets its own per-IP budget
// independent of the feedback limiter.
const (
	analyzeRatePerMinute = 30
	analyzeRateBurst     = 10
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	storage         *images.Storage
	config          *config.Config
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	analyzeLimiter  *RateLimiter
	feedbackLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, services *Services, storage *images.Storage, logger *slog.Logger) *Server {
	s := &Server{
		store:           st,
		services:        services,
		storage:         storage,
		config:          cfg,
		router:          chi.NewRouter(),
		logger:          logger,
		analyzeLimiter:  NewRateLimiter(analyzeRatePerMinute, time.Minute, analyzeRateBurst),
		feedbackLimiter: NewRateLimiter(cfg.Feedback.RatePerMinute, time.Minute, cfg.Feedback.RateBurst),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("MoodShop API", mdns.ServerVersion)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerInstanceRoutes()
	s.registerAnalyzeRoutes()
	s.registerProductRoutes()
	s.registerMoodRoutes()
	s.registerFeedbackRoutes()
	s.registerPlaylistRoutes()
	s.registerWebRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack. Middleware must be
// installed before humachi registers any routes on the mux.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(RateLimitMiddleware(s.analyzeLimiter, s.logger, http.MethodPost, "/api/v1/analyze", "/try"))
	s.router.Use(RateLimitMiddleware(s.feedbackLimiter, s.logger, http.MethodPost, "/api/v1/feedback", "/feedback"))
}
