package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFeedback_FillsIDAndTimestamp(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entry := &domain.FeedbackEntry{
		Mood:       "happy",
		Confidence: 0.7,
		Rating:     5,
		Comment:    "loved the kite",
	}

	err := s.AppendFeedback(context.Background(), entry)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(entry.ID, "fb-"))
	assert.False(t, entry.CreatedAt.IsZero())

	stored, err := s.Feedback.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "happy", stored.Mood)
	assert.Equal(t, 5, stored.Rating)
}

func TestAppendFeedback_KeepsProvidedID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	created := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	entry := &domain.FeedbackEntry{
		ID:        "fb-imported000000000000000",
		CreatedAt: created,
		Mood:      "sad",
		Rating:    3,
	}

	require.NoError(t, s.AppendFeedback(context.Background(), entry))

	stored, err := s.Feedback.Get(context.Background(), "fb-imported000000000000000")
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(created))
}

func TestListFeedback_OrderedOldestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Append out of chronological order.
	for _, e := range []*domain.FeedbackEntry{
		{Mood: "neutral", Rating: 2, CreatedAt: base.Add(2 * time.Hour)},
		{Mood: "happy", Rating: 5, CreatedAt: base},
		{Mood: "sad", Rating: 4, CreatedAt: base.Add(time.Hour)},
	} {
		require.NoError(t, s.AppendFeedback(ctx, e))
	}

	entries, err := s.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "happy", entries[0].Mood)
	assert.Equal(t, "sad", entries[1].Mood)
	assert.Equal(t, "neutral", entries[2].Mood)
}

func TestFeedback_OnlyGrows(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	for range 4 {
		require.NoError(t, s.AppendFeedback(ctx, &domain.FeedbackEntry{Mood: "happy", Rating: 4}))
	}

	count, err := s.CountFeedback(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
