package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/receipta/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is imported.
const DefaultSettle = 500 * time.Millisecond

// ImportFunc handles one file that is ready to import.
type ImportFunc func(ctx context.Context, path string) error

// Watcher imports receipt files dropped into a directory.
type Watcher struct {
	dir      string
	registry *Registry
	settle   time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	running sync.WaitGroup
}

// NewWatcher creates a watcher for dir. Only files the registry supports
// are reported.
func NewWatcher(dir string, registry *Registry) *Watcher {
	return &Watcher{
		dir:      dir,
		registry: registry,
		settle:   DefaultSettle,
		pending:  make(map[string]*time.Timer),
	}
}

// SetSettle changes the quiet period. Editors and copy tools write files in
// several chunks, each raising its own event.
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Run watches until ctx is cancelled, calling fn once per settled file.
// Errors from fn are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, fn ImportFunc) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch directory: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for %s files", w.dir, strings.Join(w.registry.Extensions(), ", "))

	defer func() {
		w.stopPending()
		w.running.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path := w.handleEvent(event)
			if path == "" {
				continue
			}
			w.schedule(path, func() {
				if ctx.Err() != nil {
					return
				}
				if err := fn(ctx, path); err != nil {
					logger.Warn("Import of %s failed: %v", path, err)
				}
			})
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent returns the path to import for event, or "" to ignore it.
func (w *Watcher) handleEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return ""
	}
	if !w.registry.Supports(event.Name) {
		return ""
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}
	return event.Name
}

// schedule runs fn once path has been quiet for the settle period.
func (w *Watcher) schedule(path string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// A stopped timer hands its slot in running over to the new one.
	if t, ok := w.pending[path]; !ok || !t.Stop() {
		w.running.Add(1)
	}
	var timer *time.Timer
	timer = time.AfterFunc(w.settle, func() {
		defer w.running.Done()
		w.mu.Lock()
		if w.pending[path] == timer {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		fn()
	})
	w.pending[path] = timer
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		if t.Stop() {
			w.running.Done()
		}
		delete(w.pending, path)
	}
}
