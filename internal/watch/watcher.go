// Package watch reloads a Logo script from disk whenever it changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Rorical/RoriLogo/internal/eventbus"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

type Watcher struct {
	path     string
	eventBus *eventbus.EventBus
	logger   *slog.Logger
	debounce time.Duration
}

func NewWatcher(path string, eb *eventbus.EventBus, logger *slog.Logger) *Watcher {
	return &Watcher{
		path:     path,
		eventBus: eb,
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Load reads the script and sends it as a replacement.
func (w *Watcher) Load() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return w.eventBus.SendToCore(eventbus.ReplaceScriptEvent{
		Source: string(data),
		Origin: filepath.Base(w.path),
	})
}

// Run watches the script's directory until ctx is done. Watching the
// directory instead of the file survives editors that save by rename.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.Load(); err != nil {
				w.logger.Warn("script reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("script reloaded", "path", w.path)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}
