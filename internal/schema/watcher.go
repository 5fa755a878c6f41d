package schema

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent describes a file change relevant to a validation run: either the
// schema or one of the instance documents changed.
type WatchEvent struct {
	Path     string // The file that changed
	IsSchema bool   // true if the changed file is the schema
}

// Watcher monitors a schema file and a set of instance documents and triggers
// revalidation when any of them change.
type Watcher struct {
	schemaPath string
	docPaths   map[string]bool
	logger     *slog.Logger
	Ready      chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher for the given schema and instance files.
func NewWatcher(schemaPath string, docPaths []string, logger *slog.Logger) *Watcher {
	docs := make(map[string]bool, len(docPaths))
	for _, p := range docPaths {
		docs[filepath.Clean(p)] = true
	}
	return &Watcher{
		schemaPath: filepath.Clean(schemaPath),
		docPaths:   docs,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch starts monitoring. It calls the provided callback whenever a watched
// file changes, and blocks until the context is cancelled.
// Editors typically replace files rather than write them in place, so the
// containing directories are watched and events are filtered by name.
func (w *Watcher) Watch(ctx context.Context, callback func(WatchEvent)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := map[string]bool{filepath.Dir(w.schemaPath): true}
	for p := range w.docPaths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if aErr := watcher.Add(dir); aErr != nil {
			return aErr
		}
	}

	w.logger.Info("Watching for changes", "schema", w.schemaPath, "documents", len(w.docPaths))
	if w.Ready != nil {
		close(w.Ready)
	}

	var timer *time.Timer
	const debounceDuration = 100 * time.Millisecond
	var pendingEvent *WatchEvent

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case wErr := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", wErr)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev := w.handleEvent(event); ev != nil {
				if timer != nil {
					timer.Stop()
				}
				pendingEvent = ev
				timer = time.AfterFunc(debounceDuration, func() {
					callback(*pendingEvent)
				})
			}
		}
	}
}

// handleEvent maps an fsnotify event to a WatchEvent. Returns nil if the file
// is not one we watch.
func (w *Watcher) handleEvent(event fsnotify.Event) *WatchEvent {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return nil
	}

	path := filepath.Clean(event.Name)
	if path == w.schemaPath {
		return &WatchEvent{Path: path, IsSchema: true}
	}
	if w.docPaths[path] {
		return &WatchEvent{Path: path}
	}
	return nil
}
