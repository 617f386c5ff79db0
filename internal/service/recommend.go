package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/emotion"
	"github.com/moodshopapp/moodshop-server/internal/mood"
	"github.com/moodshopapp/moodshop-server/internal/playlists"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

// playlistLimit is how many playlists accompany an analysis.
const playlistLimit = 5

// RecommendService runs the analyze flow: classify an uploaded photo,
// pick matching products, and attach playlists.
type RecommendService struct {
	store     *store.Store
	detector  *emotion.Detector
	playlists *PlaylistService
	logger    *slog.Logger

	minConfidence float64
	defaultLimit  int
	maxLimit      int
}

// NewRecommendService creates a new recommend service.
func NewRecommendService(store *store.Store, detector *emotion.Detector, playlistSvc *PlaylistService, cfg *config.Config, logger *slog.Logger) *RecommendService {
	return &RecommendService{
		store:         store,
		detector:      detector,
		playlists:     playlistSvc,
		logger:        logger,
		minConfidence: cfg.Detector.MinConfidence,
		defaultLimit:  cfg.Recommend.DefaultLimit,
		maxLimit:      cfg.Recommend.MaxLimit,
	}
}

// RecommendResult is everything one analyzed photo produces.
type RecommendResult struct {
	Analysis  *domain.Analysis  `json:"analysis"`
	Products  []*domain.Product `json:"products"`
	Playlists *PlaylistSet      `json:"playlists"`
}

// AnalyzeAndRecommend classifies the uploaded photo and assembles the
// response. Detection trouble is reported inside the analysis, never as an
// error; the error return covers catalog reads only.
func (s *RecommendService) AnalyzeAndRecommend(ctx context.Context, imageData []byte) (*RecommendResult, error) {
	analysis := s.detector.Detect(ctx, imageData)

	result := &RecommendResult{
		Analysis:  analysis,
		Products:  []*domain.Product{},
		Playlists: &PlaylistSet{Playlists: []playlists.Playlist{}},
	}

	switch {
	case analysis.Fallback:
		// Nothing usable in the photo: show the neutral default set so the
		// page is never empty-handed.
		products, err := s.productsForMood(ctx, mood.Fallback, s.defaultLimit)
		if err != nil {
			return nil, err
		}
		result.Products = products
	case analysis.Confidence < s.minConfidence:
		analysis.Notice = fmt.Sprintf("Low confidence (%.0f%%). Try a clearer, well-lit photo.", analysis.Confidence*100)
	default:
		products, err := s.productsForMood(ctx, analysis.Mood, s.defaultLimit)
		if err != nil {
			return nil, err
		}
		result.Products = products
		result.Playlists = s.playlists.ForMood(ctx, analysis.Mood, playlistLimit)
	}

	s.logger.Info("photo analyzed",
		"analysis_id", analysis.ID,
		"mood", analysis.Mood,
		"confidence", analysis.Confidence,
		"source", analysis.Source,
		"fallback", analysis.Fallback,
		"products", len(result.Products),
		"playlists", len(result.Playlists.Playlists),
	)

	return result, nil
}

// ProductsForMood returns products tagged with the normalized label, in
// catalog order, capped at limit. Unknown labels get the neutral default
// set. Never an error for bad labels.
func (s *RecommendService) ProductsForMood(ctx context.Context, label string, limit int) ([]*domain.Product, error) {
	m, ok := mood.Normalize(label)
	if !ok {
		m = mood.Fallback
	}
	return s.productsForMood(ctx, m, limit)
}

func (s *RecommendService) productsForMood(ctx context.Context, m mood.Mood, limit int) ([]*domain.Product, error) {
	limit = s.clampLimit(limit)

	products, err := s.store.ListProductsByTag(ctx, m.String())
	if err != nil {
		return nil, fmt.Errorf("products for mood %s: %w", m, err)
	}

	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// DetectorMode describes how the classifier is currently running.
func (s *RecommendService) DetectorMode() (faceDetection, remote bool) {
	return s.detector.FaceDetectionEnabled(), s.detector.RemoteEnabled()
}

func (s *RecommendService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
