// ABOUTME: Gymbot configuration management.
// ABOUTME: Handles the config file, environment overrides, and reference store factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/storage"
)

// DefaultListen is the address the reference server binds by default.
const DefaultListen = "localhost:8080"

// Config stores gymbot configuration.
type Config struct {
	// APIURL is the base URL of the record store, including the /api prefix.
	APIURL string `json:"api_url,omitempty"`

	// DataDir is where the reference server keeps gymbot.db.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/gymbot.
	DataDir string `json:"data_dir,omitempty"`

	// Listen is the reference server bind address.
	Listen string `json:"listen,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`
}

// GetAPIURL returns the configured record store URL, defaulting to the
// local reference server.
func (c *Config) GetAPIURL() string {
	if c.APIURL == "" {
		return api.DefaultBaseURL
	}
	return strings.TrimRight(c.APIURL, "/")
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListen returns the reference server bind address.
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// GetLogLevel parses the configured log level, defaulting to info.
func (c *Config) GetLogLevel() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// ApplyEnv overrides fields from GYMBOT_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GYMBOT_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("GYMBOT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("GYMBOT_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("GYMBOT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the reference server's SQLite store under DataDir.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), "gymbot.db"))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gymbot", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.ApplyEnv()
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
