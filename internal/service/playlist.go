package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/moodshopapp/moodshop-server/internal/mood"
	"github.com/moodshopapp/moodshop-server/internal/playlists"
)

// PlaylistService wraps the playlist provider with the degrade-to-empty
// contract: callers always get a PlaylistSet, never an error.
type PlaylistService struct {
	client *playlists.Client
	logger *slog.Logger
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(client *playlists.Client, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{
		client: client,
		logger: logger,
	}
}

// PlaylistSet is the availability-tagged playlist list shown with results.
// Available is false when the provider is unconfigured or failing.
type PlaylistSet struct {
	Available bool                 `json:"available"`
	Playlists []playlists.Playlist `json:"playlists"`
}

// Available reports whether the playlist provider is configured.
func (s *PlaylistService) Available() bool {
	return s.client != nil && s.client.Available()
}

// ForMood returns playlists matching the mood. Provider trouble degrades
// to an empty, unavailable set.
func (s *PlaylistService) ForMood(ctx context.Context, m mood.Mood, limit int) *PlaylistSet {
	if !s.Available() {
		return &PlaylistSet{Playlists: []playlists.Playlist{}}
	}

	found, err := s.client.ByMood(ctx, m, limit)
	if err != nil {
		s.logger.Warn("playlist lookup failed", "mood", m, "error", err)
		return &PlaylistSet{Playlists: []playlists.Playlist{}}
	}

	return &PlaylistSet{
		Available: true,
		Playlists: found,
	}
}

// ForLabel resolves a raw label before looking up playlists. Labels
// outside the vocabulary pass through; the provider's default keywords
// cover them.
func (s *PlaylistService) ForLabel(ctx context.Context, label string, limit int) *PlaylistSet {
	if m, ok := mood.Normalize(label); ok {
		return s.ForMood(ctx, m, limit)
	}
	return s.ForMood(ctx, mood.Mood(strings.ToLower(strings.TrimSpace(label))), limit)
}
