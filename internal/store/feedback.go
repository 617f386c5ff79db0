package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/id"
)

// feedbackPrefix keys the append-only feedback log: feedback:{id} → entry JSON.
const feedbackPrefix = "feedback:"

// AppendFeedback persists one feedback entry. Missing IDs and timestamps
// are filled in; existing values are kept so imports stay faithful.
func (s *Store) AppendFeedback(ctx context.Context, entry *domain.FeedbackEntry) error {
	if entry.ID == "" {
		fid, err := id.Generate(id.PrefixFeedback)
		if err != nil {
			return fmt.Errorf("generate feedback id: %w", err)
		}
		entry.ID = fid
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.Feedback.Create(ctx, entry.ID, entry); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "feedback recorded",
			slog.String("id", entry.ID),
			slog.String("mood", entry.Mood),
			slog.Int("rating", entry.Rating),
		)
	}

	return nil
}

// ListFeedback returns all feedback entries, oldest first.
func (s *Store) ListFeedback(ctx context.Context) ([]*domain.FeedbackEntry, error) {
	var entries []*domain.FeedbackEntry
	for entry, err := range s.Feedback.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list feedback: %w", err)
		}
		entries = append(entries, entry)
	}

	// Badger iterates in key order; feedback IDs are random nanoids.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// CountFeedback returns the number of stored feedback entries.
func (s *Store) CountFeedback(ctx context.Context) (int, error) {
	return s.Feedback.Count(ctx)
}
