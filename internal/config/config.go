package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Config represents the application configuration
type Config struct {
	Health  HealthConfig  `json:"health"`
	Display DisplayConfig `json:"display"`
	Log     LogConfig     `json:"log"`
}

// HealthConfig controls the health data access request
type HealthConfig struct {
	Enabled              bool   `json:"enabled"`
	PlaceholderAge       int    `json:"placeholder_age"`
	PlaceholderRestingHR int    `json:"placeholder_resting_hr"`
	RequestTimeout       string `json:"request_timeout"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	ShowChart bool `json:"show_chart"`
}

// LogConfig holds logging settings.
// Logs go to File when set, since the TUI owns the terminal.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

const defaultRequestTimeout = 5 * time.Second

// maxPlaceholder keeps placeholder readings within the form's field width
const maxPlaceholder = 999

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Health: HealthConfig{
			Enabled:              true,
			PlaceholderAge:       30,
			PlaceholderRestingHR: 70,
			RequestTimeout:       defaultRequestTimeout.String(),
		},
		Display: DisplayConfig{
			ShowChart: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from ~/.pulserun/config.json
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path.
// Fields missing from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for zeroed values
	defaults := DefaultConfig()
	if cfg.Health.PlaceholderAge == 0 {
		cfg.Health.PlaceholderAge = defaults.Health.PlaceholderAge
	}
	if cfg.Health.PlaceholderRestingHR == 0 {
		cfg.Health.PlaceholderRestingHR = defaults.Health.PlaceholderRestingHR
	}
	if cfg.Health.RequestTimeout == "" {
		cfg.Health.RequestTimeout = defaults.Health.RequestTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.pulserun/config.json
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists.
// It reports whether a file was written.
func CreateExample() (bool, error) {
	path, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return false, nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	if err := Save(&example); err != nil {
		return false, err
	}
	return true, nil
}

// Validate checks that the config values are usable
func (c *Config) Validate() error {
	if c.Health.PlaceholderAge > maxPlaceholder {
		return fmt.Errorf("health.placeholder_age must be at most %d, got %d", maxPlaceholder, c.Health.PlaceholderAge)
	}
	if c.Health.PlaceholderRestingHR > maxPlaceholder {
		return fmt.Errorf("health.placeholder_resting_hr must be at most %d, got %d", maxPlaceholder, c.Health.PlaceholderRestingHR)
	}
	if c.Health.PlaceholderAge <= 0 {
		return fmt.Errorf("health.placeholder_age must be positive, got %d", c.Health.PlaceholderAge)
	}
	if c.Health.PlaceholderRestingHR <= 0 {
		return fmt.Errorf("health.placeholder_resting_hr must be positive, got %d", c.Health.PlaceholderRestingHR)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// RequestTimeout returns the parsed health request timeout
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Health.RequestTimeout == "" {
		return defaultRequestTimeout, nil
	}
	d, err := time.ParseDuration(c.Health.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("health.request_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("health.request_timeout must be positive, got %s", d)
	}
	return d, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pulserun"), nil
}
