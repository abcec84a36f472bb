package registry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig configures document directory watching.
type WatchConfig struct {
	// Enabled controls whether file watching is active.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before
	// reloading (e.g., "500ms").
	DebounceDelay string `yaml:"debounce_delay"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:       false,
		DebounceDelay: "500ms",
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// Watcher watches the docs directory and reloads the registry when
// documents change. Changes are debounced so a burst of edits produces
// a single snapshot swap.
type Watcher struct {
	registry *Registry
	config   WatchConfig
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   bool

	// Reloaded receives the document count after each reload. Buffered;
	// counts are dropped if nobody is listening.
	reloaded chan int
}

// NewWatcher creates a watcher over the registry's docs directory.
func NewWatcher(reg *Registry, config WatchConfig, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		registry: reg,
		config:   config,
		watcher:  fsw,
		logger:   logger,
		reloaded: make(chan int, 16),
	}, nil
}

// Reloaded returns a channel receiving the snapshot document count
// after each watcher-triggered reload.
func (w *Watcher) Reloaded() <-chan int {
	return w.reloaded
}

// Start begins watching. The watcher runs until ctx is cancelled or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.registry.Dir()); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Document watcher started",
		"dir", w.registry.Dir(),
		"debounce", w.config.GetDebounceDelay())

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches to the root and all subdirectories.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if path != root && (defaultExcludes[base] || strings.HasPrefix(base, ".")) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleEvent marks a reload pending for relevant events and starts
// watching newly created directories.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			w.markPending()
			return
		}
	}

	if w.registry.parsers.ForPath(event.Name) == nil {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.markPending()
}

func (w *Watcher) markPending() {
	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
}

// flushPending reloads the registry if changes are pending.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = false
	w.pendingMu.Unlock()

	if !pending {
		return
	}

	invalid, err := w.registry.Load()
	if err != nil {
		w.logger.Error("Reload failed, keeping previous snapshot", "error", err)
		return
	}
	for _, le := range invalid {
		w.logger.Warn("Excluded document on reload", "id", le.Path, "error", le.Err)
	}

	select {
	case w.reloaded <- w.registry.Snapshot().Len():
	default:
	}
}
