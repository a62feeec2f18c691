package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage backend constants
const (
	StorageJSON   = "json"   // one JSON file per collection
	StorageSQLite = "sqlite" // all collections in one SQLite database
)

// Config represents the flat trove configuration
type Config struct {
	Version string `json:"version"`
	Storage string `json:"storage"`            // "json" or "sqlite"
	DataDir string `json:"data_dir,omitempty"` // overrides <home>/data
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{Version: "1", Storage: StorageJSON}
}

// Home returns the trove home directory. TROVE_HOME overrides the
// default ~/.trove.
func Home() (string, error) {
	if dir := os.Getenv("TROVE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".trove"), nil
}

// LoadConfig reads config.json from the trove home directory. A missing
// file yields the defaults; a present but unreadable one is an error.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Storage == "" {
		cfg.Storage = StorageJSON
	}
	return &cfg, nil
}

// SaveConfig writes config.json to the trove home directory.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create trove dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// IsValidStorage reports whether name is a known storage backend.
func IsValidStorage(name string) bool {
	return name == StorageJSON || name == StorageSQLite
}

// DataDirPath returns the directory record collections live in.
func (c *Config) DataDirPath(home string) string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(home, "data")
}
