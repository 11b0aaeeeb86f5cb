package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DB   DBConfig   `toml:"database"`
	API  APIConfig  `toml:"api"`
	Sync SyncConfig `toml:"sync"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

type APIConfig struct {
	BaseURL string `toml:"base_url"` // Remote weight service, e.g. https://api.bulkup.fit
}

type SyncConfig struct {
	LookbackWeeks int `toml:"lookback_weeks"` // Prior weeks fetched alongside the current one.
}

const defaultLookbackWeeks = 4

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "bulkup")
	return filepath.Join(dir, "config.toml"), nil
}

// Reads the configuration from the config file.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Sync.LookbackWeeks <= 0 {
		cfg.Sync.LookbackWeeks = defaultLookbackWeeks
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = "file:./local.db?cache=shared&mode=rwc"
	}

	return &cfg, nil
}
