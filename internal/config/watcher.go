package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is called with the freshly parsed configuration after the
// config file changes and the debounce period passes.
type ReloadFunc func(cfg *Config)

// Watcher reloads the configuration file when it changes on disk. Editors
// that write via rename are handled by watching the parent directory.
type Watcher struct {
	path          string
	debounceDelay time.Duration
	onReload      ReloadFunc
	watcher       *fsnotify.Watcher
	log           *slog.Logger
	stopChan      chan struct{}
	doneChan      chan struct{}

	mu      sync.Mutex
	pending *time.Timer
}

// NewWatcher creates a watcher for the config file at path. debounceDelay
// guards against editors that emit several write events per save; zero
// means 500ms.
func NewWatcher(path string, debounceDelay time.Duration, onReload ReloadFunc) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounceDelay <= 0 {
		debounceDelay = 500 * time.Millisecond
	}

	return &Watcher{
		path:          filepath.Clean(path),
		debounceDelay: debounceDelay,
		onReload:      onReload,
		watcher:       fsWatcher,
		log:           slog.Default(),
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}, nil
}

// Start begins watching the config file's directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	go w.processEvents()

	w.log.Info("config watcher started",
		"path", w.path,
		"debounce_ms", w.debounceDelay.Milliseconds(),
	)
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	close(w.stopChan)
	<-w.doneChan

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.scheduleReload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("config watcher error", "error", err)
		}
	}
}

// scheduleReload resets the debounce timer.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Keep running on the previous configuration.
		w.log.Error("config reload failed", "path", w.path, "error", err)
		return
	}
	w.log.Info("config reloaded", "path", w.path)
	w.onReload(cfg)
}
