// Package config loads the application's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	TMDB    TMDBConfig    `yaml:"tmdb"`
	Client  ClientConfig  `yaml:"client"`
	Storage StorageConfig `yaml:"storage"`
}

// TMDBConfig holds metadata provider settings
type TMDBConfig struct {
	APIKey          string `yaml:"api_key"`
	Language        string `yaml:"language"`
	Region          string `yaml:"region"`
	TVOriginCountry string `yaml:"tv_origin_country"`
}

// ClientConfig holds HTTP client tuning
type ClientConfig struct {
	TimeoutSeconds   int `yaml:"timeout_seconds"`
	MaxAttempts      int `yaml:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms"`
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Timeout returns the configured HTTP timeout.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// InitialBackoff returns the configured first retry delay.
func (c ClientConfig) InitialBackoff() time.Duration {
	return time.Duration(c.InitialBackoffMs) * time.Millisecond
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand ~ to home directory if present
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.TMDB.APIKey == "" || cfg.TMDB.APIKey == "your_api_key_here" {
		return nil, fmt.Errorf("TMDB API key is required. Get one from https://www.themoviedb.org/settings/api")
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TMDB.Language == "" {
		c.TMDB.Language = "ko-KR"
	}
	if c.TMDB.Region == "" {
		c.TMDB.Region = "KR"
	}
	if c.TMDB.TVOriginCountry == "" {
		c.TMDB.TVOriginCountry = "KR"
	}
	if c.Client.TimeoutSeconds <= 0 {
		c.Client.TimeoutSeconds = 30
	}
	if c.Client.MaxAttempts <= 0 {
		c.Client.MaxAttempts = 3
	}
	if c.Client.InitialBackoffMs <= 0 {
		c.Client.InitialBackoffMs = 1000
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath()
	}
}

func defaultStoragePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "whattowatch", "settings.db")
	}
	return "whattowatch.db"
}
