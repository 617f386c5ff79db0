package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/moodshopapp/moodshop-server/internal/service"
)

func (s *Server) registerPlaylistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists",
		Summary:     "List playlists",
		Description: "Returns playlists matching a mood. An unconfigured or failing provider yields an empty, unavailable set.",
		Tags:        []string{"Playlists"},
	}, s.handleListPlaylists)
}

// === DTOs ===

// ListPlaylistsInput contains the playlist lookup request.
type ListPlaylistsInput struct {
	Mood  string `query:"mood" validate:"required,max=32" doc:"Mood label to match"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=20" doc:"Max playlists to return (default 5)"`
}

// PlaylistsOutput wraps the playlist set for Huma.
type PlaylistsOutput struct {
	Body service.PlaylistSet
}

// === Handlers ===

func (s *Server) handleListPlaylists(ctx context.Context, input *ListPlaylistsInput) (*PlaylistsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	set := s.services.Playlist.ForLabel(ctx, input.Mood, limit)
	return &PlaylistsOutput{Body: *set}, nil
}
