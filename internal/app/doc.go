// Package app provides the orchestration layer for devinfo.
//
// # Overview
//
// This package wires together configuration, the terminal environment, the
// device reporter and a presenter. It is the composition root where all
// dependencies are initialized and connected.
//
// # Modes
//
//   - tui: the Bubble Tea interface from package ui (default)
//   - watch: one line (or JSON object, or YAML document) per delivered snapshot
//   - once: a single snapshot, then exit
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/devinfo/config.toml
//	       ├─────> host.NewTerminal()   Measure the controlling terminal
//	       ├─────> device.New()         Reporter: subscribers + debounce
//	       ├─────> ConfigWatcher.Run()  Hot reload (tui and watch)
//	       └─────> ui.Run() | watch()   Presenter (blocks)
//
//	Config hot reload:
//	┌─────────────────────────────────────────┐
//	│ fsnotify event on the config file       │
//	│  ├─> settle (debounce)                  │
//	│  ├─> config.Load()                      │
//	│  ├─> terminal.Configure()               │
//	│  └─> reporter.Changed()                 │
//	│      └─> subscribers get a new snapshot │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Unknown mode or format
//   - Invalid configuration file
//   - Unwritable log file
//
// Recoverable errors (logged, the run continues):
//   - Invalid configuration while hot reloading
//   - Config directory missing (reloading is disabled)
//   - Failed writes of individual watch lines
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Mode: "watch", Format: "json"}); err != nil {
//		log.Fatalf("devinfo failed: %v", err)
//	}
package app
