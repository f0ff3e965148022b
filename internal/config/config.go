package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures devinfo's tunables.
type Config struct {
	Path            string // resolved file location, whether or not it exists
	Debounce        time.Duration
	InitialDelay    time.Duration
	DefaultFontSize string
	FallbackWidth   int
	FallbackHeight  int
	UserAgent       string
	LogFile         string
}

const (
	defaultConfigPath     = "~/.config/devinfo/config.toml"
	defaultDebounce       = 250 * time.Millisecond
	defaultInitialDelay   = time.Millisecond
	defaultFontSize       = "16px"
	defaultFallbackWidth  = 80
	defaultFallbackHeight = 24
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Debounce:        defaultDebounce,
		InitialDelay:    defaultInitialDelay,
		DefaultFontSize: defaultFontSize,
		FallbackWidth:   defaultFallbackWidth,
		FallbackHeight:  defaultFallbackHeight,
	}
}

// Load locates and parses the devinfo config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DebounceMS      *int   `toml:"debounce_ms"`
		InitialDelayMS  *int   `toml:"initial_delay_ms"`
		DefaultFontSize string `toml:"default_font_size"`
		FallbackWidth   int    `toml:"fallback_width"`
		FallbackHeight  int    `toml:"fallback_height"`
		UserAgent       string `toml:"user_agent"`
		LogFile         string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.DebounceMS != nil {
		if *raw.DebounceMS <= 0 {
			return Config{}, fmt.Errorf("parse config: debounce_ms must be positive, got %d", *raw.DebounceMS)
		}
		cfg.Debounce = time.Duration(*raw.DebounceMS) * time.Millisecond
	}
	if raw.InitialDelayMS != nil {
		if *raw.InitialDelayMS < 0 {
			return Config{}, fmt.Errorf("parse config: initial_delay_ms must not be negative, got %d", *raw.InitialDelayMS)
		}
		if *raw.InitialDelayMS > 0 {
			cfg.InitialDelay = time.Duration(*raw.InitialDelayMS) * time.Millisecond
		}
	}

	if fs := strings.TrimSpace(raw.DefaultFontSize); fs != "" {
		cfg.DefaultFontSize = fs
	}
	if raw.FallbackWidth > 0 {
		cfg.FallbackWidth = raw.FallbackWidth
	}
	if raw.FallbackHeight > 0 {
		cfg.FallbackHeight = raw.FallbackHeight
	}
	cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
