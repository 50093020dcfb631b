package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// watcherTickInterval is how often the watcher checks whether a
	// burst of filesystem events has settled.
	watcherTickInterval = 500 * time.Millisecond

	// watcherQuietPeriod is how long the tree must stay quiet after the
	// last event before a republish is triggered. Batches editor save
	// storms and bulk copies into a single run.
	watcherQuietPeriod = 2 * time.Second
)

// Watcher monitors the publish root and triggers a full pipeline run
// after local changes settle. Runs are serialized: events arriving
// during a run are batched into the next one.
type Watcher struct {
	dir     string
	run     func(ctx context.Context) error
	logger  *slog.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher over dir that invokes run after each
// settled burst of changes.
func NewWatcher(dir string, run func(ctx context.Context) error, logger *slog.Logger) *Watcher {
	return &Watcher{
		dir:    dir,
		run:    run,
		logger: logger,
	}
}

// Watch blocks until the context is cancelled, watching the publish
// root recursively and republishing after quiet periods.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	w.watcher = watcher
	defer watcher.Close()

	if err := w.addRecursive(w.dir); err != nil {
		return fmt.Errorf("watching publish dir: %w", err)
	}

	w.logger.Info("file watcher started", slog.String("dir", w.dir))

	var lastEvent time.Time

	ticker := time.NewTicker(watcherTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("fsnotify events channel closed unexpectedly")
			}

			if w.shouldIgnore(event.Name) {
				continue
			}

			lastEvent = time.Now()

			// If a new directory was created, watch it recursively.
			// Use Lstat to avoid following symlinks that could point
			// outside the publish root.
			if event.Has(fsnotify.Create) {
				info, err := os.Lstat(event.Name)
				if err == nil && info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
					_ = w.addRecursive(event.Name)
				}
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				// On Linux inotify drops watches for deleted directories
				// automatically, but other platforms may leak them.
				_ = watcher.Remove(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("fsnotify errors channel closed unexpectedly")
			}

			w.logger.Warn("watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			if lastEvent.IsZero() || time.Since(lastEvent) < watcherQuietPeriod {
				continue
			}

			lastEvent = time.Time{}

			w.logger.Info("local changes settled, republishing")

			if err := w.run(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				w.logger.Warn("republish failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if w.shouldIgnore(path) {
			return filepath.SkipDir
		}

		// Skip symlinked directories to avoid watching outside the
		// publish root.
		if d.Type()&os.ModeSymlink != 0 {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") && path != w.dir {
		return true
	}

	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return true
	}

	return false
}
