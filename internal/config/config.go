// ABOUTME: Configuration for the Docs MCP server and CLI.
// ABOUTME: YAML file in the XDG config dir, overridable via DOCS_* env vars.

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds connection and behavior settings for the Docs API.
type Config struct {
	// BaseURL is the Docs instance, e.g. https://docs.example.gouv.fr.
	BaseURL string `yaml:"base_url"`

	// APIToken authenticates every request.
	APIToken string `yaml:"api_token"`

	// APIVersion selects the REST API version path segment.
	APIVersion string `yaml:"api_version"`

	// Timeout bounds a single request.
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries caps retry attempts on connection/timeout failures.
	MaxRetries int `yaml:"max_retries"`

	// RateLimit is the maximum request rate in requests per second.
	RateLimit float64 `yaml:"rate_limit"`

	// CacheEnabled turns on the local badger document cache.
	CacheEnabled bool `yaml:"cache_enabled"`

	// CacheTTL is how long cached documents stay fresh.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults. BaseURL and
// APIToken have no defaults; they must come from the file or environment.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:   "v1.0",
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RateLimit:    10,
		CacheEnabled: true,
		CacheTTL:     5 * time.Minute,
		LogLevel:     "info",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "docs-mcp")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads the config file if present, then applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", ConfigPath(), err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(), 0750); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0600)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DOCS_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("DOCS_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("DOCS_API_VERSION"); v != "" {
		c.APIVersion = v
	}
	if v := os.Getenv("DOCS_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("DOCS_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("DOCS_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimit = f
		}
	}
	if v := os.Getenv("DOCS_CACHE_ENABLED"); v != "" {
		c.CacheEnabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DOCS_CACHE_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.CacheTTL = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// Validate checks the settings a request cannot work without.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required (set DOCS_BASE_URL or %s)", ConfigPath())
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q is not a valid http(s) URL", c.BaseURL)
	}
	if c.APIToken == "" {
		return fmt.Errorf("api_token is required (set DOCS_API_TOKEN or %s)", ConfigPath())
	}
	if len(strings.TrimSpace(c.APIToken)) < 10 {
		return fmt.Errorf("api_token looks truncated: must be at least 10 characters")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	return nil
}

// APIBaseURL returns the versioned API root, without trailing slash.
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/api/" + c.APIVersion
}
