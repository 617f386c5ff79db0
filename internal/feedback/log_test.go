package feedback

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshopapp/moodshop-server/internal/domain"
)

func setupTestLog(t *testing.T) *Log {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "feedback.csv")
	l, err := NewLog(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return l
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewLog_WritesHeader(t *testing.T) {
	l := setupTestLog(t)

	rows := readRows(t, l.Path())
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}

func TestNewLog_KeepsExistingContent(t *testing.T) {
	l := setupTestLog(t)
	require.NoError(t, l.Append(&domain.FeedbackEntry{Mood: "happy", Rating: 5}))

	// Reopening must not truncate previous rows.
	reopened, err := NewLog(l.Path(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	rows := readRows(t, reopened.Path())
	assert.Len(t, rows, 2)
}

func TestLog_Append(t *testing.T) {
	l := setupTestLog(t)

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	entry := &domain.FeedbackEntry{
		CreatedAt:   created,
		Mood:        "sad",
		Confidence:  0.6,
		Rating:      4,
		Comment:     "the candle helped, thanks",
		ProductID:   "prod-candle",
		AnalysisID:  "2f1c9a10-5dd4-4b6e-9c8a-1f2e3d4c5b6a",
		Recommended: 5,
	}
	require.NoError(t, l.Append(entry))

	rows := readRows(t, l.Path())
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, created.Format(time.RFC3339), row[0])
	assert.Equal(t, "sad", row[1])
	assert.Equal(t, "0.6", row[2])
	assert.Equal(t, "prod-candle", row[3])
	assert.Equal(t, "4", row[4])
	assert.Equal(t, "the candle helped, thanks", row[5])
	assert.Equal(t, entry.AnalysisID, row[6])
	assert.Equal(t, "5", row[7])
}

func TestLog_Append_FillsTimestamp(t *testing.T) {
	l := setupTestLog(t)
	require.NoError(t, l.Append(&domain.FeedbackEntry{Mood: "neutral", Rating: 3}))

	rows := readRows(t, l.Path())
	require.Len(t, rows, 2)

	ts, err := time.Parse(time.RFC3339, rows[1][0])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
}

func TestLog_Append_QuotesCommas(t *testing.T) {
	l := setupTestLog(t)
	require.NoError(t, l.Append(&domain.FeedbackEntry{
		Mood:    "happy",
		Rating:  5,
		Comment: `loved it, really, "five stars"`,
	}))

	rows := readRows(t, l.Path())
	require.Len(t, rows, 2)
	assert.Equal(t, `loved it, really, "five stars"`, rows[1][5])
}

func TestLog_Append_RecreatesDeletedFile(t *testing.T) {
	l := setupTestLog(t)
	require.NoError(t, l.Append(&domain.FeedbackEntry{Mood: "happy", Rating: 5}))
	require.NoError(t, os.Remove(l.Path()))

	require.NoError(t, l.Append(&domain.FeedbackEntry{Mood: "sad", Rating: 2}))

	rows := readRows(t, l.Path())
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "sad", rows[1][1])
}

func TestLog_Append_Concurrent(t *testing.T) {
	l := setupTestLog(t)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Append(&domain.FeedbackEntry{Mood: "happy", Rating: 5}))
		}()
	}
	wg.Wait()

	rows := readRows(t, l.Path())
	assert.Len(t, rows, writers+1)
}

func TestNewLog_EmptyPath(t *testing.T) {
	_, err := NewLog("", slog.New(slog.DiscardHandler))
	require.Error(t, err)
}
