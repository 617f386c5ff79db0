package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 2 * time.Second

// Watcher reloads the catalog when its file changes on disk.
//
// The parent directory is watched rather than the file itself so editors
// that replace the file (write a temp file, rename it over) do not drop
// the watch. Rapid events are debounced into a single reload, and a failed
// reload keeps the previous catalog serving.
type Watcher struct {
	importer *Importer
	logger   *slog.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for the importer's catalog file.
func NewWatcher(importer *Importer, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(importer.Path())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch catalog directory: %w", err)
	}

	return &Watcher{
		importer: importer,
		logger:   logger,
		debounce: debounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for catalog changes. It blocks until the context
// is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.wg.Add(1)
	go w.processEvents(ctx)

	w.logger.Info("watching catalog file",
		"path", w.importer.Path(),
		"debounce", w.debounce,
	)

	select {
	case <-ctx.Done():
	case <-w.done:
	}
	return nil
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	target := filepath.Clean(w.importer.Path())

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		// A Create follows when the file is being replaced; until then the
		// previous catalog keeps serving.
		w.logger.Warn("catalog file removed", "path", event.Name)
		return
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	w.scheduleReload(ctx)
}

// scheduleReload arms the debounce timer, restarting it if an earlier
// event already did.
func (w *Watcher) scheduleReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.reload(ctx)
	})
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	result, err := w.importer.Import(ctx)
	if err != nil {
		w.logger.Error("catalog reload failed, previous catalog stays live",
			"path", w.importer.Path(),
			"error", err,
		)
		return
	}
	if result.Unchanged {
		return
	}

	w.logger.Info("catalog reloaded",
		"products", result.Products,
		"images", result.ImagesIngested,
		"duration", result.Duration,
	)
}
