package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds carpool's settings.
type Config struct {
	RegistryURL    string
	LogFile        string
	LogLevel       slog.Level
	PageSize       int
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/carpool/config.toml"
	defaultLogFile        = "~/.local/state/carpool/carpool.log"
	defaultRegistryURL    = "http://localhost:3000"
	defaultPageSize       = 10
	defaultRequestTimeout = 10 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RegistryURL:    defaultRegistryURL,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       slog.LevelInfo,
		PageSize:       defaultPageSize,
		RequestTimeout: defaultRequestTimeout,
	}
}

// Load reads the config at path, or the default path when empty, falling
// back to defaults when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

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
		RegistryURL    string  `toml:"registry_url"`
		LogFile        string  `toml:"log_file"`
		LogLevel       string  `toml:"log_level"`
		PageSize       int     `toml:"page_size"`
		RequestTimeout *string `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if url := strings.TrimSpace(raw.RegistryURL); url != "" {
		cfg.RegistryURL = url
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse log_level %q: %w", level, err)
		}
	}
	switch raw.PageSize {
	case 0:
	case 5, 10, 20:
		cfg.PageSize = raw.PageSize
	default:
		return Config{}, fmt.Errorf("page_size %d: must be 5, 10 or 20", raw.PageSize)
	}
	if raw.RequestTimeout != nil {
		timeout, err := parseTimeout(*raw.RequestTimeout)
		if err != nil {
			return Config{}, err
		}
		cfg.RequestTimeout = timeout
	}

	return cfg, nil
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func parseTimeout(value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse request_timeout %q: %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("request_timeout %q: must not be negative", value)
	}
	return d, nil
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
