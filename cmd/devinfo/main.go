package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/devinfo/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	userAgent := flag.String("ua", "", "user agent to parse instead of the terminal's own (optional)")
	mode := flag.String("mode", "tui", "presentation: tui, watch or once")
	format := flag.String("format", "text", "output for watch and once: text, json or yaml")
	debounce := flag.Duration("debounce", 0, "resize quiet period (optional, defaults to 250ms)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Mode:       *mode,
		Format:     *format,
		UserAgent:  *userAgent,
	}
	if d := *debounce; d > 0 {
		opts.Debounce = d
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "devinfo: %v\n", err)
		return 1
	}
	return 0
}
