// Package config handles the XDG configuration directory, the optional
// config.yml and .env files, and server URL resolution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskgenie"

	// SessionKey names the persisted session record.
	SessionKey = "TaskGenie"

	// SessionFile is the stored session filename.
	SessionFile = SessionKey + ".json"

	// ConfigFile is the optional YAML settings filename.
	ConfigFile = "config.yml"

	// LogFile receives the developer log of the interactive UI under --debug.
	LogFile = "debug.log"

	// EnvFile is the optional dotenv filename inside the config directory.
	EnvFile = ".env"

	// DefaultServerURL is used when nothing else names a backend.
	DefaultServerURL = "http://localhost:3000"

	// EnvServerURL overrides the server URL from config.yml.
	EnvServerURL = "TASKGENIE_SERVER_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the backend origin.
	ServerURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings mirrors config.yml.
type fileSettings struct {
	Server string `yaml:"server"`
	Debug  bool   `yaml:"debug"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskgenie or $HOME/.config/taskgenie.
// A .env file in the directory is loaded first; it never overrides variables
// already present in the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	if err := godotenv.Load(cfg.EnvPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
	}

	settings, err := readSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg.Debug = settings.Debug
	cfg.ServerURL = resolveServerURL(settings.Server)
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SetServerURL overrides the resolved server URL (the --server flag).
func (c *Config) SetServerURL(url string) {
	if url = strings.TrimSpace(url); url != "" {
		c.ServerURL = strings.TrimRight(url, "/")
	}
}

// SessionPath returns the path to the persisted session record.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// SettingsPath returns the path to config.yml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnvPath returns the path to the .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// LogPath returns the path of the interactive UI's debug log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSession checks if the session file exists.
func (c *Config) HasSession() bool {
	_, err := os.Stat(c.SessionPath())
	return err == nil
}

// resolveServerURL applies env var > config file > default.
func resolveServerURL(fromFile string) string {
	url := DefaultServerURL
	if fromFile != "" {
		url = fromFile
	}
	if env := os.Getenv(EnvServerURL); env != "" {
		url = env
	}
	return strings.TrimRight(url, "/")
}

// readSettings loads config.yml; a missing file yields zero settings.
func readSettings(path string) (fileSettings, error) {
	var s fileSettings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return s, nil
}
