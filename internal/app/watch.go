package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/devinfo/internal/clock"
	"github.com/five82/devinfo/internal/config"
	"github.com/five82/devinfo/internal/debounce"
)

const defaultReloadSettle = 100 * time.Millisecond

// ConfigWatcher reloads the config file whenever it changes on disk. Editors
// tend to write in several steps, so events are settled before reloading.
type ConfigWatcher struct {
	Path     string
	Settle   time.Duration // zero uses 100ms
	Logger   *slog.Logger
	OnReload func(config.Config)
}

// Run watches until ctx is done. A missing config directory disables
// reloading without failing the run.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	target := filepath.Clean(w.Path)
	dir := filepath.Dir(target)
	if err := fsw.Add(dir); err != nil {
		logger.Debug("config watch disabled", "dir", dir, "error", err)
		<-ctx.Done()
		return nil
	}

	settle := w.Settle
	if settle <= 0 {
		settle = defaultReloadSettle
	}
	reload := debounce.New(settle, clock.Real{}, func() {
		w.reload(logger)
	})
	defer reload.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reload.Trigger()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watch error", "error", err)
		}
	}
}

func (w *ConfigWatcher) reload(logger *slog.Logger) {
	cfg, err := config.Load(w.Path)
	if err != nil {
		logger.Warn("config reload failed", "path", w.Path, "error", err)
		return
	}
	logger.Info("config reloaded", "path", cfg.Path)
	if w.OnReload != nil {
		w.OnReload(cfg)
	}
}
