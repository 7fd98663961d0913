package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a config.toml file and invokes a callback with the freshly
// parsed Config whenever the file changes on disk. The serve command uses this
// to re-apply agent defaults (voice, language, stream delay) without a restart.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// WatchConfig starts watching the config file at path. The onChange callback
// runs on the watcher goroutine; it must not block for long.
//
// The parent directory is watched rather than the file itself so that
// editors that replace the file via rename are still observed.
func WatchConfig(path string, onChange func(*Config), logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching config dir %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:  fsw,
		done: make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-w.done:
				return

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				cfg, err := reload(path)
				if err != nil {
					logger.Warn("reloading config",
						zap.String("path", path),
						zap.Error(err),
					)
					continue
				}

				logger.Debug("config changed", zap.String("path", path))
				onChange(cfg)

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return w, nil
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func reload(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}
