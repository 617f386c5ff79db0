package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/moodshopapp/moodshop-server/internal/service"
)

func (s *Server) registerFeedbackRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "submitFeedback",
		Method:      http.MethodPost,
		Path:        "/api/v1/feedback",
		Summary:     "Submit feedback",
		Description: "Records a rating for a mood recommendation. Log trouble is reported as a notice, not an error.",
		Tags:        []string{"Feedback"},
	}, s.handleSubmitFeedback)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFeedbackSummary",
		Method:      http.MethodGet,
		Path:        "/api/v1/feedback/summary",
		Summary:     "Feedback summary",
		Description: "Aggregates all recorded feedback into rating and mood statistics",
		Tags:        []string{"Feedback"},
	}, s.handleFeedbackSummary)
}

// === DTOs ===

// SubmitFeedbackInput contains the feedback submission request.
type SubmitFeedbackInput struct {
	Body service.SubmitInput
}

// SubmitFeedbackOutput wraps the recorded entry for Huma.
type SubmitFeedbackOutput struct {
	Body service.SubmitResult
}

// FeedbackSummaryOutput wraps the aggregate statistics for Huma.
type FeedbackSummaryOutput struct {
	Body service.FeedbackSummary
}

// === Handlers ===

func (s *Server) handleSubmitFeedback(ctx context.Context, input *SubmitFeedbackInput) (*SubmitFeedbackOutput, error) {
	result, err := s.services.Feedback.Submit(ctx, &input.Body)
	if err != nil {
		return nil, err
	}

	return &SubmitFeedbackOutput{Body: *result}, nil
}

func (s *Server) handleFeedbackSummary(ctx context.Context, _ *struct{}) (*FeedbackSummaryOutput, error) {
	summary, err := s.services.Feedback.Summary(ctx)
	if err != nil {
		s.logger.Error("Failed to summarize feedback", "error", err)
		return nil, err
	}

	return &FeedbackSummaryOutput{Body: *summary}, nil
}
