// Package config handles global CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in
// ~/.config/terralens/config.yml.
type GlobalConfig struct {
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	Workers int    `yaml:"workers,omitempty" json:"workers,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "terralens"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// CacheDBFile is the scene-metadata cache database name.
	CacheDBFile = "scenes.db"
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/terralens/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// CacheDBPath returns the path to the local scene-metadata cache.
// Respects XDG_CACHE_HOME via os.UserCacheDir.
func CacheDBPath() string {
	cacheHome, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cacheHome, GlobalConfigDir, CacheDBFile)
}

// Load reads the global configuration file. Returns an empty config
// (not an error) if the file doesn't exist.
func Load() (*GlobalConfig, error) {
	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}
	return &cfg, nil
}

// Save writes the global configuration file, creating the config
// directory if needed.
func (c *GlobalConfig) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}
	return nil
}

// Set updates a single key. Valid keys: base_url, api_key, workers.
func (c *GlobalConfig) Set(key, value string) error {
	switch key {
	case "base_url":
		c.BaseURL = value
	case "api_key":
		c.APIKey = value
	case "workers":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 1 {
			return fmt.Errorf("invalid workers value: %s", value)
		}
		c.Workers = n
	default:
		return fmt.Errorf("unknown config key: %s (valid: base_url, api_key, workers)", key)
	}
	return nil
}
