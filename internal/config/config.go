// Package config resolves where brewlog keeps its files and how the
// process is tuned, from environment variables with sensible defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

const (
	slotsFile      = "fermenter_data.json"
	archiveFile    = "brew_history.json"
	brewConfigFile = "brew_config.json"
)

type Config struct {
	DataDir   string // BREWLOG_DATA_DIR (default "~/.local/state/brewlog")
	HTTPAddr  string // BREWLOG_HTTP_ADDR (default ":8080")
	SlotCount int    // BREWLOG_SLOT_COUNT (default 5)
}

func Load() (*Config, error) {
	c := &Config{
		DataDir:  os.Getenv("BREWLOG_DATA_DIR"),
		HTTPAddr: envOrDefault("BREWLOG_HTTP_ADDR", ":8080"),
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("BREWLOG_DATA_DIR is unset and the home directory is unknown: %w", err)
		}
		c.DataDir = filepath.Join(home, ".local", "state", "brewlog")
	}

	countStr := envOrDefault("BREWLOG_SLOT_COUNT", "5")
	n, err := strconv.Atoi(countStr)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("BREWLOG_SLOT_COUNT: %q is not a positive integer", countStr)
	}
	c.SlotCount = n

	return c, nil
}

// SlotsPath is the active-fermenter state file inside DataDir.
func (c *Config) SlotsPath() string { return filepath.Join(c.DataDir, slotsFile) }

// ArchivePath is the brew history file inside DataDir.
func (c *Config) ArchivePath() string { return filepath.Join(c.DataDir, archiveFile) }

// BrewConfigPath is the optional JSON file overriding categories, stages,
// event types, and the display timezone.
func (c *Config) BrewConfigPath() string { return filepath.Join(c.DataDir, brewConfigFile) }

// EnsureDataDir creates DataDir if needed.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// LoadBrewConfig reads the brew configuration from path. A missing file
// yields the built-in defaults; a present file must be valid, since a
// half-read config would silently reject good input later.
func LoadBrewConfig(path string) (*model.BrewConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.DefaultBrewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read brew config: %w", err)
	}

	cfg := model.DefaultBrewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse brew config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("brew config %s: %w", path, err)
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
