package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/outline"
	"github.com/five82/folio/internal/storage"
	"github.com/five82/folio/internal/ui"
	"github.com/five82/folio/internal/uistore"
)

// Options configure the Folio application.
type Options struct {
	ConfigPath string
	PollEvery  int // seconds; zero uses the configured interval
}

// Run boots the Folio TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load folio config: %w", err)
	}

	logger, closeLog, err := NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	store := OpenStorage(cfg, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close storage", "error", err)
		}
	}()

	source, err := NewSource(cfg)
	if err != nil {
		return fmt.Errorf("init wiki source: %w", err)
	}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	uiStore := uistore.New(uistore.Options{Storage: store, Logger: logger})
	cat := &catalog.Store{}
	poller := &Poller{Source: source, Store: cat, Interval: interval, Logger: logger}

	logger.Info("folio starting",
		"offline", cfg.Offline(),
		"storage_driver", cfg.StorageDriver,
		"poll_interval", interval,
	)

	// Start background poller
	poller.Start(ctx)

	return ui.Run(ctx, ui.Options{
		Context: ctx,
		Store:   uiStore,
		Catalog: cat,
		Refresh: poller.Refresh,
		Logger:  logger,
	})
}

// NewLogger returns a text logger appending to path. An empty path discards
// output. The returned func closes the file.
func NewLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

// OpenStorage opens the configured backend. A backend that cannot be opened
// is replaced by storage.Disabled so the UI still runs with default state.
func OpenStorage(cfg config.Config, logger *slog.Logger) storage.Storage {
	store, err := storage.Open(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		logger.Warn("ui state storage unavailable, changes will not persist",
			"driver", cfg.StorageDriver,
			"path", cfg.StoragePath,
			"error", err,
		)
		return storage.Disabled{}
	}
	return store
}

// NewSource picks the catalog source: the wiki API when api_url is set,
// otherwise the catalog_file fixture (or an empty catalog).
func NewSource(cfg config.Config) (outline.Source, error) {
	if !cfg.Offline() {
		client, err := outline.NewClient(cfg.APIURL, cfg.APIToken)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	if cfg.CatalogFile == "" {
		return &outline.Fixture{}, nil
	}
	fixture, err := outline.LoadFixture(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	return fixture, nil
}
