package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/five82/carpool/internal/config"
	"github.com/five82/carpool/internal/nav"
	"github.com/five82/carpool/internal/prefs"
	"github.com/five82/carpool/internal/registry"
	"github.com/five82/carpool/internal/ui"
)

// Options configure the carpool application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses ~/.config/carpool/prefs.toml
	Open        string // initial location; empty starts at home
	RegistryURL string // overrides the config file
}

// Run boots the carpool TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.RegistryURL != "" {
		cfg.RegistryURL = opts.RegistryURL
	}

	start, err := startLocation(opts.Open)
	if err != nil {
		return err
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	logger, closeLog, err := openLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := registry.NewClient(cfg.RegistryURL, cfg.RequestTimeout, logger)
	if err != nil {
		return fmt.Errorf("init registry client: %w", err)
	}
	logger.Info("carpool starting",
		"component", "app",
		"registry", client.BaseURL(),
		"location", start.String(),
		"page_size", cfg.PageSize,
		"request_timeout", cfg.RequestTimeout.String(),
	)

	return ui.Run(ui.Options{
		Context:        ctx,
		Client:         client,
		Logger:         logger,
		RegistryURL:    client.BaseURL(),
		PageSize:       cfg.PageSize,
		RequestTimeout: cfg.RequestTimeout,
		LogFile:        cfg.LogFile,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      prefsPath,
		Role:           userPrefs.Role,
		Start:          start,
	})
}

// startLocation parses the --open value and rejects locations no page
// serves.
func startLocation(raw string) (nav.Location, error) {
	loc, err := nav.Parse(raw)
	if err != nil {
		return nav.Location{}, fmt.Errorf("open: %w", err)
	}
	if nav.Match(loc).Page == nav.PageNotFound {
		return nav.Location{}, fmt.Errorf("open: no page at %q", loc.String())
	}
	return loc, nil
}

// openLogger returns a JSON logger appending to path. The terminal belongs
// to the TUI, so an empty path discards records instead.
func openLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { _ = file.Close() }, nil
}
