package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "does-not-exist.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Debounce != defaultDebounce {
		t.Fatalf("Debounce = %v, want %v", cfg.Debounce, defaultDebounce)
	}
	if cfg.InitialDelay != defaultInitialDelay {
		t.Fatalf("InitialDelay = %v, want %v", cfg.InitialDelay, defaultInitialDelay)
	}
	if cfg.DefaultFontSize != defaultFontSize {
		t.Fatalf("DefaultFontSize = %q, want %q", cfg.DefaultFontSize, defaultFontSize)
	}
	if cfg.FallbackWidth != defaultFallbackWidth || cfg.FallbackHeight != defaultFallbackHeight {
		t.Fatalf("fallback = %dx%d, want %dx%d", cfg.FallbackWidth, cfg.FallbackHeight, defaultFallbackWidth, defaultFallbackHeight)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
debounce_ms = 100
initial_delay_ms = 5
default_font_size = "  14px  "
fallback_width = 132
fallback_height = 43
user_agent = "  Mozilla/5.0 (X11; Linux x86_64)  "
log_file = "  ~/.local/state/devinfo.log  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Debounce != 100*time.Millisecond {
		t.Fatalf("Debounce = %v, want 100ms", cfg.Debounce)
	}
	if cfg.InitialDelay != 5*time.Millisecond {
		t.Fatalf("InitialDelay = %v, want 5ms", cfg.InitialDelay)
	}
	if cfg.DefaultFontSize != "14px" {
		t.Fatalf("DefaultFontSize = %q, want %q", cfg.DefaultFontSize, "14px")
	}
	if cfg.FallbackWidth != 132 || cfg.FallbackHeight != 43 {
		t.Fatalf("fallback = %dx%d, want 132x43", cfg.FallbackWidth, cfg.FallbackHeight)
	}
	if cfg.UserAgent != "Mozilla/5.0 (X11; Linux x86_64)" {
		t.Fatalf("UserAgent = %q", cfg.UserAgent)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
default_font_size = "   "
fallback_width = 0
initial_delay_ms = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DefaultFontSize != defaultFontSize {
		t.Fatalf("DefaultFontSize = %q, want %q", cfg.DefaultFontSize, defaultFontSize)
	}
	if cfg.FallbackWidth != defaultFallbackWidth {
		t.Fatalf("FallbackWidth = %d, want %d", cfg.FallbackWidth, defaultFallbackWidth)
	}
	if cfg.InitialDelay != defaultInitialDelay {
		t.Fatalf("InitialDelay = %v, want %v", cfg.InitialDelay, defaultInitialDelay)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`debounce_ms = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsNonPositiveDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("debounce_ms = 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "debounce_ms") {
		t.Fatalf("Load error = %v, want debounce_ms error", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
