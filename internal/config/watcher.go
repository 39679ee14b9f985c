package config

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor save bursts (truncate+write, atomic rename)
// into a single reload.
const debounceDelay = 100 * time.Millisecond

// Watcher watches a config file for changes and reloads it.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu       sync.RWMutex
	config   *Config
	handlers []func(*Config)
	pending  *time.Timer

	done chan struct{}
}

// NewWatcher loads the config at path and begins tracking the file.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	cw := &Watcher{
		path:    path,
		watcher: w,
		config:  cfg,
		done:    make(chan struct{}),
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	return cw, nil
}

// Start starts watching for config file changes.
func (w *Watcher) Start() {
	go w.watch()
}

// Stop stops the config watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
}

// OnReload registers a handler called with the new config after each
// successful reload.
func (w *Watcher) OnReload(handler func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Get returns the current config.
func (w *Watcher) Get() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Reload on write or create; some editors save via rename.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("Failed to reload config: %v", err)
		return
	}

	w.mu.Lock()
	w.config = cfg
	handlers := make([]func(*Config), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	log.Printf("Config reloaded from %s", w.path)

	for _, handler := range handlers {
		handler(cfg)
	}
}
