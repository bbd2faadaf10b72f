package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce is how long a Watcher waits for writes to a probe file to
// settle before reloading it; editors often save files in several steps.
const debounce = 100 * time.Millisecond

// A Watcher reloads a probe file whenever it changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

// NewWatcher starts watching the probe file at path.
// The directory containing the file, rather than the file itself, is
// watched, so that the Watcher survives editors that replace files.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: failed to create watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: failed to watch %s: %w", path, err)
	}
	return &Watcher{
		path:    path,
		watcher: w,
		logger:  logger,
	}, nil
}

// Run calls onChange with the new content of the probe file after each
// change, until ctx is done. Changes that result in an invalid file are
// logged and otherwise ignored.
func (w *Watcher) Run(ctx context.Context, onChange func(*Config)) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !isModification(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Error("config: reload failed",
					zap.String("path", w.path),
					zap.Error(err),
				)
				continue
			}
			w.logger.Info("config: reloaded", zap.String("path", w.path))
			onChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config: watcher error", zap.Error(err))
		}
	}
}

func isModification(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
