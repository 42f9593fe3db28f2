// Package watch reports edits to individual files, such as a settings file
// changed by hand while the game is running.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is a debounced edit to one watched file.
type Change struct {
	Path    string
	Removed bool
}

// Config configures the watcher.
type Config struct {
	// Files are the files to watch. Their directories are watched, so
	// files that are replaced rather than rewritten are still seen.
	Files []string

	// Debounce is how long a file must stay quiet before it is reported.
	Debounce time.Duration

	Logger *slog.Logger
}

// Watcher watches files for changes.
type Watcher struct {
	config   Config
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	onChange func(Change)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	pending map[string]*pendingChange
}

type pendingChange struct {
	timer   *time.Timer
	removed bool
}

// New creates a watcher and starts collecting events. Changes are
// reported once Start runs.
func New(config Config) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if config.Logger == nil {
		config.Logger = slog.Default().With("component", "watch")
	}
	if len(config.Files) == 0 {
		return nil, errors.New("watch: no files to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:  config,
		fsw:     fsw,
		files:   make(map[string]struct{}),
		pending: make(map[string]*pendingChange),
	}

	dirs := make(map[string]struct{})
	for _, f := range config.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start delivers changes until ctx is done or Stop is called, then
// releases the underlying watcher.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("watch error", "error", err)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) shutdown() {
	w.mu.Lock()
	w.running = false
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	w.fsw.Close()
}

func (w *Watcher) handle(ev fsnotify.Event) {
	path, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}
	if _, ok := w.files[path]; !ok {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	removed := ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)

	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.pending[path]; ok {
		p.removed = removed
		p.timer.Reset(w.config.Debounce)
		return
	}
	p := &pendingChange{removed: removed}
	p.timer = time.AfterFunc(w.config.Debounce, func() {
		w.fire(path)
	})
	w.pending[path] = p
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if ok {
		delete(w.pending, path)
	}
	callback := w.onChange
	running := w.running
	w.mu.Unlock()

	if !ok || !running || callback == nil {
		return
	}
	w.config.Logger.Debug("file changed", "path", path, "removed", p.removed)
	callback(Change{Path: path, Removed: p.removed})
}
