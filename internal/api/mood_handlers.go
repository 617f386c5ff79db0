package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/moodshopapp/moodshop-server/internal/service"
)

func (s *Server) registerMoodRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMoods",
		Method:      http.MethodGet,
		Path:        "/api/v1/moods",
		Summary:     "List moods",
		Description: "Returns the mood vocabulary the classifier and catalog share",
		Tags:        []string{"Moods"},
	}, s.handleListMoods)
}

// === DTOs ===

// MoodsResponse contains the mood vocabulary.
type MoodsResponse struct {
	Moods []service.MoodInfo `json:"moods" doc:"Moods in display order"`
}

// MoodsOutput wraps the mood vocabulary for Huma.
type MoodsOutput struct {
	Body MoodsResponse
}

// === Handlers ===

func (s *Server) handleListMoods(_ context.Context, _ *struct{}) (*MoodsOutput, error) {
	return &MoodsOutput{Body: MoodsResponse{Moods: s.services.Catalog.Moods()}}, nil
}
