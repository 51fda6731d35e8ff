package scene2d

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a configuration file whenever it changes on disk.
// Successfully parsed configs are delivered on Configs; parse failures are
// logged and skipped so a half-saved file does not tear down a running
// render.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	configs chan *Config
	done    chan struct{}
}

// WatchConfig starts watching path. The parent directory is watched so
// editors that replace the file by rename are handled.
func WatchConfig(path string) (*ConfigWatcher, error) {
	if _, err := formatFromPath(path); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	cw := &ConfigWatcher{
		path:    filepath.Clean(path),
		watcher: w,
		configs: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

// Configs returns the channel of reloaded configurations. It is closed
// when the watcher stops.
func (cw *ConfigWatcher) Configs() <-chan *Config {
	return cw.configs
}

// Close stops the watcher.
func (cw *ConfigWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}

func (cw *ConfigWatcher) loop() {
	defer close(cw.done)
	defer close(cw.configs)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				Logger().Warn("config reload failed", "path", cw.path, "err", err)
				continue
			}
			// Keep only the latest config if the consumer lags.
			select {
			case <-cw.configs:
			default:
			}
			cw.configs <- cfg
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			Logger().Warn("config watcher error", "path", cw.path, "err", err)
		}
	}
}
