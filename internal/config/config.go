// Package config loads client configuration from an optional YAML file,
// filling in defaults for anything not set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arnoutzw/Anenji-smartess/internal/transport"
)

// Config holds everything needed to construct a client. Retries is a
// pointer so an explicit `retries: 0` disables retrying, while leaving
// it unset keeps the transport default.
type Config struct {
	BaseURL        string        `yaml:"baseUrl"`
	Language       string        `yaml:"language"`
	Timeout        time.Duration `yaml:"timeout"`
	Retries        *uint         `yaml:"retries"`
	RetryDelay     time.Duration `yaml:"retryDelay"`
	CredentialsDir string        `yaml:"credentialsDir"`
	CacheDir       string        `yaml:"cacheDir"`
}

// Default returns a Config with every field set to its default value.
func Default() *Config {
	return &Config{
		BaseURL:    transport.DefaultBaseURL,
		Language:   "en",
		Timeout:    transport.DefaultTimeout,
		RetryDelay: transport.DefaultRetryDelay,
	}
}

// Load reads the YAML file at path and merges it over the defaults. An
// empty path or a missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	cfg.merge(&file)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location under the
// user's home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".smartess", "config.yaml")
}

// Transport builds the transport configuration described by cfg.
func (c *Config) Transport() transport.Config {
	return transport.Config{
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		Retries:    c.Retries,
		RetryDelay: c.RetryDelay,
	}
}

func (c *Config) merge(file *Config) {
	if file.BaseURL != "" {
		c.BaseURL = file.BaseURL
	}
	if file.Language != "" {
		c.Language = file.Language
	}
	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}
	if file.Retries != nil {
		c.Retries = file.Retries
	}
	if file.RetryDelay > 0 {
		c.RetryDelay = file.RetryDelay
	}
	if file.CredentialsDir != "" {
		c.CredentialsDir = file.CredentialsDir
	}
	if file.CacheDir != "" {
		c.CacheDir = file.CacheDir
	}
}

func (c *Config) validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retryDelay must not be negative, got %s", c.RetryDelay)
	}
	return nil
}
