// Package config handles loading devinfo's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/devinfo/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	debounce_ms = 250              # resize quiet period before a broadcast
//	initial_delay_ms = 1           # delay before an attached observer's first snapshot
//	default_font_size = "16px"     # used when the terminal reports no pixel geometry
//	fallback_width = 80            # size of last resort
//	fallback_height = 24
//	user_agent = ""                # empty synthesises one from TERM_PROGRAM
//	log_file = ""                  # empty discards TUI logs
//
// Every field is optional. Tilde expansion is performed for log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors and out-of-range timings. A missing file
// is not an error.
package config
