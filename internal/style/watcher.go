package style

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher re-applies a stylesheet file to an engine whenever it changes.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	engine   *Engine
	path     string
	debounce time.Duration

	// Callback receives the keys whose values changed
	onChangeCallback func(changed []string)

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a watcher for the stylesheet at path.
func NewWatcher(engine *Engine, path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger:   logger,
		engine:   engine,
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
	}
}

// SetDebounce sets how long to wait after the last write before reloading.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetChangeCallback sets the callback invoked after a reload changed
// at least one parameter.
func (w *Watcher) SetChangeCallback(callback func(changed []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching. The directory is watched rather than the file so
// editors that replace the file on save are still followed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.watchLoop(ctx, fsw, w.debounce, w.stopCh, w.doneCh)

	w.logger.Debug("stylesheet watcher started", "path", w.path, "debounce", w.debounce)
	return nil
}

// Stop stops watching and waits for the loop to exit. It is a no-op once
// the loop has already exited because its context was cancelled.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	w.mu.Unlock()

	<-done
	w.logger.Debug("stylesheet watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// watchLoop owns fsw and closes it on exit, whichever way the loop ends.
func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, debounce time.Duration, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer func() {
		w.markStopped(doneCh)
		if err := fsw.Close(); err != nil {
			w.logger.Debug("closing fsnotify watcher", "error", err)
		}
		close(doneCh)
	}()

	filename := filepath.Base(w.path)
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("stylesheet watcher context done", "path", w.path)
			return
		case <-stopCh:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("stylesheet watcher error", "error", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

// markStopped clears the running flag unless a newer loop has replaced
// this one.
func (w *Watcher) markStopped(doneCh chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doneCh == doneCh {
		w.running = false
	}
}

func (w *Watcher) reload() {
	w.mu.RLock()
	callback := w.onChangeCallback
	w.mu.RUnlock()

	before := w.engine.Params()
	if err := w.engine.Use(w.path); err != nil {
		w.logger.Warn("failed to reload stylesheet", "path", w.path, "error", err)
		return
	}
	changed := ChangedKeys(before, w.engine.Params())
	if len(changed) == 0 {
		w.logger.Debug("stylesheet rewritten without parameter changes", "path", w.path)
		return
	}

	w.logger.Info("stylesheet reloaded", "path", w.path, "changed", len(changed))
	if callback != nil {
		callback(changed)
	}
}

// ChangedKeys returns the sorted keys whose values differ between a and b.
func ChangedKeys(a, b Params) []string {
	var changed []string
	for k, v := range b {
		if a[k] != v {
			changed = append(changed, k)
		}
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}
