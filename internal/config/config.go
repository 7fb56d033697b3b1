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

// Config captures Folio's settings.
type Config struct {
	APIURL        string
	APIToken      string
	CatalogFile   string
	StorageDriver string
	StoragePath   string
	PollInterval  time.Duration
	LogFile       string
	LogLevel      slog.Level
}

// TokenEnv overrides api_token when set.
const TokenEnv = "FOLIO_API_TOKEN"

const (
	defaultConfigPath    = "~/.config/folio/config.toml"
	defaultStorageDriver = "file"
	defaultLogFile       = "~/.local/state/folio/folio.log"
	defaultPollInterval  = 30 * time.Second
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func defaults() Config {
	return Config{
		StorageDriver: defaultStorageDriver,
		PollInterval:  defaultPollInterval,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      slog.LevelInfo,
	}
}

// Load locates and parses the Folio config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
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
		APIURL        string `toml:"api_url"`
		APIToken      string `toml:"api_token"`
		CatalogFile   string `toml:"catalog_file"`
		StorageDriver string `toml:"storage_driver"`
		StoragePath   string `toml:"storage_path"`
		PollSeconds   int    `toml:"poll_seconds"`
		LogFile       string `toml:"log_file"`
		LogLevel      string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(raw.APIURL)
	cfg.APIToken = strings.TrimSpace(raw.APIToken)

	if catalog := strings.TrimSpace(raw.CatalogFile); catalog != "" {
		cfg.CatalogFile = mustExpand(catalog)
	}
	if driver := strings.ToLower(strings.TrimSpace(raw.StorageDriver)); driver != "" {
		cfg.StorageDriver = driver
	}
	if storagePath := strings.TrimSpace(raw.StoragePath); storagePath != "" {
		cfg.StoragePath = mustExpand(storagePath)
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Offline reports whether the catalog comes from a fixture file instead of the API.
func (c Config) Offline() bool {
	return strings.TrimSpace(c.APIURL) == ""
}

func (c *Config) applyEnv() {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		c.APIToken = token
	}
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
