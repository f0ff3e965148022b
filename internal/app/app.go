package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/five82/devinfo/internal/config"
	"github.com/five82/devinfo/internal/device"
	"github.com/five82/devinfo/internal/host"
	"github.com/five82/devinfo/internal/prefs"
	"github.com/five82/devinfo/internal/state"
	"github.com/five82/devinfo/internal/ui"
)

// Mode selects how devinfo presents snapshots.
type Mode string

const (
	ModeTUI   Mode = "tui"
	ModeWatch Mode = "watch"
	ModeOnce  Mode = "once"
)

// ParseMode validates a -mode flag value. Empty selects the TUI.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeTUI, nil
	case ModeTUI, ModeWatch, ModeOnce:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want tui, watch or once)", s)
}

// Options configure the devinfo application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/devinfo/prefs.toml
	Mode       string        // tui, watch or once
	Format     string        // text, json or yaml; watch and once only
	UserAgent  string        // overrides the configured user agent
	Debounce   time.Duration // zero uses the configured interval

	Stdout io.Writer // nil uses os.Stdout
	Stderr io.Writer // nil uses os.Stderr
}

// Run boots devinfo in the selected mode until the context is cancelled or
// the user quits.
func Run(ctx context.Context, opts Options) error {
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return err
	}
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Debounce > 0 {
		cfg.Debounce = opts.Debounce
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	logger, closeLog, err := newLogger(mode, cfg.LogFile, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = cfg.UserAgent
	}

	terminal := host.NewTerminal(host.TerminalOptions{
		Signals:         mode == ModeWatch,
		DefaultFontSize: cfg.DefaultFontSize,
		Fallback:        device.Size{Width: cfg.FallbackWidth, Height: cfg.FallbackHeight},
		Logger:          logger,
	})
	reporter := device.New(terminal, device.Options{
		Debounce:     cfg.Debounce,
		InitialDelay: cfg.InitialDelay,
		Logger:       logger,
		UserAgent:    agent,
	})

	if mode == ModeOnce {
		return printOnce(ctx, reporter, newPrinter(stdout, format, true))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	watcher := &ConfigWatcher{
		Path:   cfg.Path,
		Logger: logger,
		OnReload: func(next config.Config) {
			terminal.Configure(next.DefaultFontSize, device.Size{Width: next.FallbackWidth, Height: next.FallbackHeight})
			reporter.Changed()
		},
	}
	g.Go(func() error {
		return watcher.Run(gctx)
	})

	g.Go(func() error {
		// The watcher has nothing to do once the presenter is gone.
		defer cancel()
		if mode == ModeWatch {
			return watch(gctx, reporter, terminal, newPrinter(stdout, format, false), logger)
		}
		userPrefs := prefs.Load(opts.PrefsPath)
		return ui.Run(ui.Options{
			Context:    gctx,
			Reporter:   reporter,
			Feeder:     terminal,
			Store:      &state.Store{},
			UserAgent:  agent,
			ThemeName:  userPrefs.Theme,
			HideScreen: userPrefs.HideScreen,
			PrefsPath:  opts.PrefsPath,
			Logger:     logger,
		})
	})

	return g.Wait()
}

// printOnce captures the first snapshot an observer receives and prints it.
func printOnce(ctx context.Context, reporter *device.Reporter, p *printer) error {
	infos := make(chan device.Info, 1)
	o := reporter.NewObserver(func(info device.Info) {
		select {
		case infos <- info:
		default:
		}
	}, device.ObserverOptions{})
	defer o.Detach()
	o.Attach()

	select {
	case info := <-infos:
		if err := p.Print(info); err != nil {
			return err
		}
		return p.Close()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// watch prints every delivered snapshot until ctx is done. Without a display
// there is nothing to follow, so the single headless snapshot ends the run.
func watch(ctx context.Context, reporter *device.Reporter, env device.Environment, p *printer, logger *slog.Logger) error {
	defer func() { _ = p.Close() }()

	if _, ok := env.Display(); !ok {
		return printOnce(ctx, reporter, p)
	}

	store := &state.Store{}
	record := store.Listener()
	err := reporter.Watch(ctx, func(info device.Info) {
		record(info)
		if err := p.Print(info); err != nil {
			logger.Warn("watch: print failed", "error", err)
		}
	}, device.ObserverOptions{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	snap := store.Snapshot()
	logger.Debug("watch: stopped",
		"notifications", snap.Notifications,
		"orientation_changes", snap.OrientationChanges,
	)
	return nil
}

func newLogger(mode Mode, logFile string, stderr io.Writer) (*slog.Logger, func(), error) {
	noop := func() {}
	if mode != ModeTUI {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
		return slog.New(handler), noop, nil
	}
	// The TUI owns the screen; log to a file or nowhere.
	if logFile == "" {
		return slog.New(slog.DiscardHandler), noop, nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { _ = file.Close() }, nil
}
