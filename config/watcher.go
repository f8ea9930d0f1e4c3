package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/PVX/errors"
	"github.com/teranos/PVX/logger"
)

// reloadDebounce coalesces the burst of events an editor save produces
// into a single reload.
const reloadDebounce = 500 * time.Millisecond

// ReloadCallback receives the freshly loaded config after a file change.
type ReloadCallback func(*Config) error

// ConfigWatcher reloads configuration when the watched file changes and
// notifies registered callbacks. The watch is on the file's directory,
// not the file itself, so atomic rename-style saves still deliver events.
type ConfigWatcher struct {
	configPath string
	watcher    *fsnotify.Watcher

	mu        sync.Mutex
	callbacks []ReloadCallback
	debounce  *time.Timer
	ownWrite  bool // set by MarkOwnWrite so our own saves don't reload
}

// globalWatcher lets config persistence mark its writes on whichever
// watcher the server installed.
var (
	globalWatcher   *ConfigWatcher
	globalWatcherMu sync.Mutex
)

// NewConfigWatcher creates a watcher for the given config file.
func NewConfigWatcher(configPath string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch directory of %s", configPath)
	}

	return &ConfigWatcher{
		configPath: configPath,
		watcher:    watcher,
	}, nil
}

// OnReload registers a callback for config reloads.
func (cw *ConfigWatcher) OnReload(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// MarkOwnWrite suppresses the reload for the next write event, so saves
// made through this process don't loop back as external changes.
func (cw *ConfigWatcher) MarkOwnWrite() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.ownWrite = true
}

// consumeOwnWrite reports and clears the own-write mark.
func (cw *ConfigWatcher) consumeOwnWrite() bool {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	was := cw.ownWrite
	cw.ownWrite = false
	return was
}

// Start begins watching in a background goroutine.
func (cw *ConfigWatcher) Start() {
	go cw.watchLoop()
}

// watchLoop filters directory events down to the watched file and
// schedules debounced reloads. Exits when the watcher is closed.
func (cw *ConfigWatcher) watchLoop() {
	wanted := filepath.Base(cw.configPath)

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			// The directory watch sees siblings too (backups, temp files)
			if filepath.Base(event.Name) != wanted || isBackupFile(event.Name) {
				continue
			}
			if cw.consumeOwnWrite() {
				logger.Debugw("Config watcher ignoring own write",
					"file", event.Name)
				continue
			}

			logger.Infow("Config watcher detected change",
				"file", event.Name,
				"op", event.Op.String())
			cw.scheduleReload()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Config watcher error", "error", err)
		}
	}
}

// scheduleReload resets the debounce timer so only the last event of a
// burst triggers a reload.
func (cw *ConfigWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounce != nil {
		cw.debounce.Stop()
	}
	cw.debounce = time.AfterFunc(reloadDebounce, func() {
		if err := cw.reload(); err != nil {
			logger.Errorw("Config reload failed", "error", err)
		}
	})
}

// reload invalidates the cached config, loads fresh, and fans out to
// callbacks. A failing callback does not stop the others.
func (cw *ConfigWatcher) reload() error {
	Reset()

	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger.Infow("Config reloaded", "path", cw.configPath)

	cw.mu.Lock()
	callbacks := make([]ReloadCallback, len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(cfg); err != nil {
			logger.Warnw("Config reload callback error", "error", err)
		}
	}
	return nil
}

// Stop closes the watcher; the watch loop exits when the event channel
// closes. Any pending debounced reload is cancelled.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if cw.debounce != nil {
		cw.debounce.Stop()
	}
	cw.mu.Unlock()

	return cw.watcher.Close()
}

// isBackupFile reports whether path is one of the rotating backups
// written next to a config file (pvx.toml.back1 and friends).
func isBackupFile(path string) bool {
	return strings.Contains(filepath.Base(path), ".toml.back")
}

// SetGlobalWatcher installs the watcher that persistence should mark
// its own writes on.
func SetGlobalWatcher(watcher *ConfigWatcher) {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	globalWatcher = watcher
}

// GetGlobalWatcher returns the installed watcher, or nil.
func GetGlobalWatcher() *ConfigWatcher {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	return globalWatcher
}
