package service

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	domainerrors "github.com/moodshopapp/moodshop-server/internal/errors"
	"github.com/moodshopapp/moodshop-server/internal/feedback"
	"github.com/moodshopapp/moodshop-server/internal/mood"
	"github.com/moodshopapp/moodshop-server/internal/store"
	"github.com/moodshopapp/moodshop-server/internal/validation"
)

// NoticeLogDegraded is attached when one of the two feedback sinks failed.
const NoticeLogDegraded = "Feedback saved, but one copy could not be written."

// FeedbackService records user feedback in the store and the flat CSV log,
// and aggregates the stored entries for the summary endpoint.
type FeedbackService struct {
	store     *store.Store
	log       *feedback.Log
	validator *validation.Validator
	logger    *slog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(store *store.Store, log *feedback.Log, validator *validation.Validator, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		store:     store,
		log:       log,
		validator: validator,
		logger:    logger,
	}
}

// SubmitInput is one feedback submission.
type SubmitInput struct {
	Mood        string  `json:"mood" validate:"required,max=32"`
	Confidence  float64 `json:"confidence" validate:"gte=0,lte=1"`
	Rating      int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment     string  `json:"comment" validate:"max=2000"`
	ProductID   string  `json:"product_id" validate:"max=128"`
	AnalysisID  string  `json:"analysis_id" validate:"max=128"`
	Recommended int     `json:"recommended" validate:"gte=0"`
}

// SubmitResult reports the stored entry plus a notice when one of the two
// sinks failed.
type SubmitResult struct {
	Entry  *domain.FeedbackEntry `json:"entry"`
	Notice string                `json:"notice,omitempty"`
}

// Submit validates and records one feedback entry. The entry is written to
// both the store and the CSV log; one sink failing degrades to a notice,
// both failing is an error. Products are never touched.
func (s *FeedbackService) Submit(ctx context.Context, input *SubmitInput) (*SubmitResult, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	entry := &domain.FeedbackEntry{
		CreatedAt:   time.Now(),
		Mood:        normalizeMoodLabel(input.Mood),
		Confidence:  input.Confidence,
		Rating:      input.Rating,
		Comment:     strings.TrimSpace(input.Comment),
		ProductID:   strings.TrimSpace(input.ProductID),
		AnalysisID:  strings.TrimSpace(input.AnalysisID),
		Recommended: input.Recommended,
	}

	storeErr := s.store.AppendFeedback(ctx, entry)
	logErr := s.log.Append(entry)

	switch {
	case storeErr != nil && logErr != nil:
		return nil, domainerrors.Unavailable("feedback could not be saved").
			WithCause(domainerrors.Join(storeErr, logErr))
	case storeErr != nil:
		s.logger.Warn("feedback store write failed, csv log has the entry", "error", storeErr)
		return &SubmitResult{Entry: entry, Notice: NoticeLogDegraded}, nil
	case logErr != nil:
		s.logger.Warn("feedback csv write failed, store has the entry", "error", logErr, "id", entry.ID)
		return &SubmitResult{Entry: entry, Notice: NoticeLogDegraded}, nil
	}

	return &SubmitResult{Entry: entry}, nil
}

// ConfidenceStats summarizes the confidence values across all feedback.
type ConfidenceStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// FeedbackSummary aggregates every stored feedback entry.
type FeedbackSummary struct {
	Total            int             `json:"total"`
	AverageRating    float64         `json:"average_rating"`
	RatingHistogram  map[int]int     `json:"rating_histogram"`
	MoodDistribution map[string]int  `json:"mood_distribution"`
	Confidence       ConfidenceStats `json:"confidence"`
}

// Summary aggregates all feedback entries. An empty log yields a
// zero-valued summary, not an error.
func (s *FeedbackService) Summary(ctx context.Context) (*FeedbackSummary, error) {
	entries, err := s.store.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}

	summary := &FeedbackSummary{
		Total:            len(entries),
		RatingHistogram:  make(map[int]int),
		MoodDistribution: make(map[string]int),
	}
	if len(entries) == 0 {
		return summary, nil
	}

	var ratingSum int
	var confSum float64
	confMin, confMax := math.Inf(1), math.Inf(-1)
	for _, entry := range entries {
		ratingSum += entry.Rating
		summary.RatingHistogram[entry.Rating]++
		summary.MoodDistribution[entry.Mood]++

		confSum += entry.Confidence
		confMin = math.Min(confMin, entry.Confidence)
		confMax = math.Max(confMax, entry.Confidence)
	}

	summary.AverageRating = float64(ratingSum) / float64(len(entries))
	summary.Confidence = ConfidenceStats{
		Mean: confSum / float64(len(entries)),
		Min:  confMin,
		Max:  confMax,
	}

	return summary, nil
}

// CountFeedback returns the number of stored entries.
func (s *FeedbackService) CountFeedback(ctx context.Context) (int, error) {
	return s.store.CountFeedback(ctx)
}

// normalizeMoodLabel maps the submitted label onto the known vocabulary,
// keeping unknown labels as lowercased free text so the distribution still
// counts them.
func normalizeMoodLabel(label string) string {
	if m, ok := mood.Normalize(label); ok {
		return m.String()
	}
	return strings.ToLower(strings.TrimSpace(label))
}
