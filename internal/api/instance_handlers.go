package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerInstanceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Get instance",
		Description: "Returns this server's identity record",
		Tags:        []string{"Instance"},
	}, s.handleGetInstance)
}

// === DTOs ===

// InstanceResponse contains server instance data in API responses.
type InstanceResponse struct {
	ID        string    `json:"id" doc:"Stable instance ID"`
	Name      string    `json:"name" doc:"Configured server name"`
	Version   string    `json:"version" doc:"Server version"`
	CreatedAt time.Time `json:"created_at" doc:"First boot time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last boot time"`
}

// InstanceOutput wraps the instance record for Huma.
type InstanceOutput struct {
	Body InstanceResponse
}

// === Handlers ===

func (s *Server) handleGetInstance(ctx context.Context, _ *struct{}) (*InstanceOutput, error) {
	instance, err := s.services.Instance.GetInstance(ctx)
	if err != nil {
		return nil, err
	}

	resp := InstanceResponse{
		ID:        instance.ID,
		Name:      instance.Name,
		Version:   instance.Version,
		CreatedAt: instance.CreatedAt,
		UpdatedAt: instance.UpdatedAt,
	}
	return &InstanceOutput{Body: resp}, nil
}
