package providers

import (
	"github.com/samber/do/v2"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/logger"
	"github.com/moodshopapp/moodshop-server/internal/playlists"
)

// PlaylistClientHandle wraps the playlist provider client with shutdown
// capability. The client is nil when the integration is not configured.
type PlaylistClientHandle struct {
	*playlists.Client
}

// Shutdown implements do.Shutdownable.
func (h *PlaylistClientHandle) Shutdown() error {
	if h.Client != nil {
		h.Client.Close()
	}
	return nil
}

// ProvidePlaylistClient provides the playlist provider client.
func ProvidePlaylistClient(i do.Injector) (*PlaylistClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.PlaylistsConfigured() {
		log.Info("Playlist provider not configured, mood playlists disabled")
		return &PlaylistClientHandle{Client: nil}, nil
	}

	client := playlists.New(playlists.Options{
		ClientID:     cfg.Playlists.ClientID,
		ClientSecret: cfg.Playlists.ClientSecret,
		TokenURL:     cfg.Playlists.TokenURL,
		APIBaseURL:   cfg.Playlists.APIBaseURL,
		Logger:       log.Logger,
	})

	log.Info("Playlist provider client initialized")

	return &PlaylistClientHandle{Client: client}, nil
}
