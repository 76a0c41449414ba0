package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/lexkit/errors"
	"github.com/teranos/lexkit/logger"
)

// DefaultDebounce is the quiet period after the last write before a reload
const DefaultDebounce = 500 * time.Millisecond

// ReloadCallback is called with each successfully reloaded config.
// An error is logged and does not stop the remaining callbacks.
type ReloadCallback func(*Config) error

// Watcher watches a config file and reloads it after changes
type Watcher struct {
	configPath string
	watcher    *fsnotify.Watcher

	mu             sync.Mutex
	callbacks      []ReloadCallback
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	ownContent     []byte
	stopped        bool

	done chan struct{}
}

// NewWatcher creates a watcher for configPath.
// The parent directory is watched so that editors replacing the file by
// rename are still seen.
func NewWatcher(configPath string) (*Watcher, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", configPath)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch config file %s", abs)
	}

	return &Watcher{
		configPath:     abs,
		watcher:        fw,
		debouncePeriod: DefaultDebounce,
		done:           make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.configPath
}

// SetDebounce changes the debounce period for subsequent changes
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debouncePeriod = d
}

// OnReload registers a callback to be called when config is reloaded
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Save writes cfg to the watched file. The next reload that finds exactly
// the bytes Save wrote invokes no callbacks.
func (w *Watcher) Save(cfg *Config) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.ownContent = data
	w.mu.Unlock()

	return write(w.configPath, data)
}

// Start begins watching for config file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops watching and cancels any pending reload
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	close(w.done)
	return err
}

// log returns the watcher's logger, resolved per call so that a logger
// installed after Start is used
func (w *Watcher) log() *zap.SugaredLogger {
	return logger.ChildLogger(logger.ComponentLogger("config"), logger.FieldFile, w.configPath)
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.configPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			w.log().Infow("Config watcher detected change",
				logger.FieldOp, event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log().Warnw("Config watcher error",
				logger.FieldError, err)
		}
	}
}

// consumeOwnContent reports whether content is what Save last wrote, and
// forgets it so a later identical external write is reloaded
func (w *Watcher) consumeOwnContent(content []byte) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ownContent == nil || !bytes.Equal(w.ownContent, content) {
		return false
	}
	w.ownContent = nil
	return true
}

func (w *Watcher) isStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// scheduleReload debounces rapid file changes and triggers reload
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.reload(); err != nil {
			w.log().Errorw("Config reload failed",
				logger.FieldError, err)
		}
	})
}

// reload reads and validates the file, then calls all callbacks.
// Nothing is called once Stop has been called.
func (w *Watcher) reload() error {
	if w.isStopped() {
		return nil
	}

	content, err := os.ReadFile(w.configPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", w.configPath)
	}
	if w.consumeOwnContent(content) {
		w.log().Debugw("Config watcher ignoring own write")
		return nil
	}

	cfg, err := LoadFromFile(w.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	w.log().Infow("Config reloaded successfully",
		logger.FieldCount, len(cfg.Rules))

	for _, callback := range callbacks {
		if err := callback(cfg); err != nil {
			w.log().Warnw("Config reload callback error",
				logger.FieldError, err)
		}
	}
	return nil
}
