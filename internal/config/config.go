package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Config holds the application configuration.
type Config struct {
	WeekStart string `json:"week_start"` // "mon" or "sun"; first column of the picker grid
	Clock     int    `json:"clock"`      // 12 or 24; how stored times are displayed
}

// DefaultConfig returns the defaults: weeks start Monday, 24-hour display.
func DefaultConfig() Config {
	return Config{WeekStart: "mon", Clock: 24}
}

// Validate checks field values.
func (c Config) Validate() error {
	if !slices.Contains([]string{"mon", "sun"}, c.WeekStart) {
		return fmt.Errorf("invalid week_start %q, expected \"mon\" or \"sun\"", c.WeekStart)
	}
	if c.Clock != 12 && c.Clock != 24 {
		return fmt.Errorf("invalid clock %d, expected 12 or 24", c.Clock)
	}
	return nil
}

// configDir returns the config directory path.
// Exported as a var for testing.
var configDir = defaultConfigDir

func defaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nlcal")
}

func configPath() string {
	return filepath.Join(configDir(), "config.json")
}

// Exists returns true if a config file has been saved.
func Exists() bool {
	_, err := os.Stat(configPath())
	return err == nil
}

// Load reads the config file. Returns default config if file doesn't exist.
func Load() (Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := configDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0o600)
}
