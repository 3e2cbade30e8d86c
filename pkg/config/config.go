// Package config loads proxy configuration from YAML files with
// environment variable expansion.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the docstore-proxy configuration.
type Config struct {
	// Listen is the address the proxy binds to.
	Listen string `yaml:"listen"`

	// RedisAddr is the Redis host:port for caching and rate limit state.
	RedisAddr string `yaml:"redis_addr"`

	// RedisPassword is the optional Redis password.
	RedisPassword string `yaml:"redis_password"`

	// BaseURL is the upstream Docstore API base URL.
	BaseURL string `yaml:"base_url"`

	// UserAgent identifies the proxy to the upstream API.
	UserAgent string `yaml:"user_agent"`

	// Database is the default database ID for export requests.
	Database string `yaml:"database"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogPretty enables human-readable console logs.
	LogPretty bool `yaml:"log_pretty"`
}

// Default returns the default proxy configuration.
func Default() *Config {
	return &Config{
		Listen:    ":8080",
		RedisAddr: "localhost:6379",
		UserAgent: "docstore-proxy/0.1.0",
		Database:  "main",
		LogLevel:  "info",
	}
}

// Load reads a YAML config file, expands ${VAR} and $VAR references from
// the environment, and unmarshals it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML config data over the defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.Expand(string(data), os.Getenv)

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("redis address is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent is required")
	}
	return nil
}
