// Package feedback appends user feedback to a flat CSV log. The log is
// write-only from the application's point of view; analysts pull the file
// directly. Aggregation for the summary endpoint reads the store instead.
package feedback

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/domain"
)

// csvHeader is the column order of the feedback log.
var csvHeader = []string{
	"timestamp",
	"detected_mood",
	"confidence",
	"product_id",
	"rating",
	"comment",
	"analysis_id",
	"num_recommendations",
}

// Log is an append-only CSV feedback log. Appends are serialized so
// concurrent submissions never interleave rows.
type Log struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewLog creates the feedback log at path, writing the CSV header when the
// file is missing or empty.
func NewLog(path string, logger *slog.Logger) (*Log, error) {
	if path == "" {
		return nil, fmt.Errorf("feedback log path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create feedback log directory: %w", err)
	}

	l := &Log{
		path:   path,
		logger: logger,
	}

	if err := l.ensureHeader(); err != nil {
		return nil, err
	}

	return l, nil
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes one feedback row. The file is opened per append so the log
// survives rotation or deletion between writes; a missing file grows a
// fresh header.
func (l *Log) Append(entry *domain.FeedbackEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureHeader(); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(entryRow(entry)); err != nil {
		return fmt.Errorf("write feedback row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush feedback row: %w", err)
	}

	l.logger.Debug("feedback logged",
		"path", l.path,
		"mood", entry.Mood,
		"rating", entry.Rating,
	)

	return nil
}

// ensureHeader writes the header row when the file is missing or empty.
// Callers hold the mutex.
func (l *Log) ensureHeader() error {
	info, err := os.Stat(l.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat feedback log: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create feedback log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write feedback header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush feedback header: %w", err)
	}

	l.logger.Info("created feedback log", "path", l.path)
	return nil
}

func entryRow(entry *domain.FeedbackEntry) []string {
	ts := entry.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	return []string{
		ts.Format(time.RFC3339),
		entry.Mood,
		strconv.FormatFloat(entry.Confidence, 'f', -1, 64),
		entry.ProductID,
		strconv.Itoa(entry.Rating),
		entry.Comment,
		entry.AnalysisID,
		strconv.Itoa(entry.Recommended),
	}
}
