package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/domain"
	domainerrors "github.com/moodshopapp/moodshop-server/internal/errors"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

// InstanceService handles the singleton server instance record.
type InstanceService struct {
	store   *store.Store
	logger  *slog.Logger
	config  *config.Config
	version string
}

// NewInstanceService creates a new instance service.
func NewInstanceService(store *store.Store, logger *slog.Logger, config *config.Config, version string) *InstanceService {
	return &InstanceService{
		store:   store,
		logger:  logger,
		config:  config,
		version: version,
	}
}

// GetInstance retrieves the server instance record.
func (s *InstanceService) GetInstance(ctx context.Context) (*domain.Instance, error) {
	instance, err := s.store.GetInstance(ctx)
	if err != nil {
		if domainerrors.Is(err, store.ErrServerNotFound) {
			return nil, domainerrors.NotFound("instance configuration not found").WithCause(err)
		}
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}

	return instance, nil
}

// InitializeInstance ensures a server instance record exists, creating one
// on first boot. The record follows the configured name and the running
// binary's version; the instance ID never changes.
func (s *InstanceService) InitializeInstance(ctx context.Context) (*domain.Instance, error) {
	instance, err := s.store.InitializeInstance(ctx, s.config.Server.Name, s.version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize instance: %w", err)
	}

	return instance, nil
}
