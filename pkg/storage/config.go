package storage

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

// Supported storage providers.
const (
	ProviderAzure = "azure"
	ProviderS3    = "s3"
	ProviderLocal = "local"
)

var providers = []string{ProviderAzure, ProviderS3, ProviderLocal}

// Config holds asset storage settings for every supported provider.
// Only the fields relevant to Provider are validated.
type Config struct {
	Provider        string `toml:"provider"`
	ContainerName   string `toml:"container_name"`
	MaxListSize     int32  `toml:"max_list_size"`
	RetentionDays   int    `toml:"retention_days"`
	CleanupInterval string `toml:"cleanup_interval"`

	// azure
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`

	// s3
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
	PublicURL string `toml:"public_url"`
	URLExpiry string `toml:"url_expiry"`

	// local
	LocalPath string `toml:"local_path"`
	BaseURL   string `toml:"base_url"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider         string
	ContainerName    string
	MaxListSize      string
	RetentionDays    string
	CleanupInterval  string
	ConnectionString string
	AccountURL       string
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Region           string
	UseSSL           string
	PublicURL        string
	URLExpiry        string
	LocalPath        string
	BaseURL          string
}

// URLExpiryDuration returns URLExpiry as a time.Duration.
func (c *Config) URLExpiryDuration() time.Duration {
	d, _ := time.ParseDuration(c.URLExpiry)
	return d
}

// CleanupIntervalDuration returns CleanupInterval as a time.Duration.
// Zero disables periodic cleanup.
func (c *Config) CleanupIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.CleanupInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. UseSSL only applies when true.
func (c *Config) Merge(overlay *Config) {
	mergeString(&c.Provider, overlay.Provider)
	mergeString(&c.ContainerName, overlay.ContainerName)
	mergeString(&c.CleanupInterval, overlay.CleanupInterval)
	mergeString(&c.ConnectionString, overlay.ConnectionString)
	mergeString(&c.AccountURL, overlay.AccountURL)
	mergeString(&c.Endpoint, overlay.Endpoint)
	mergeString(&c.AccessKey, overlay.AccessKey)
	mergeString(&c.SecretKey, overlay.SecretKey)
	mergeString(&c.Region, overlay.Region)
	mergeString(&c.PublicURL, overlay.PublicURL)
	mergeString(&c.URLExpiry, overlay.URLExpiry)
	mergeString(&c.LocalPath, overlay.LocalPath)
	mergeString(&c.BaseURL, overlay.BaseURL)

	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
	if overlay.RetentionDays != 0 {
		c.RetentionDays = overlay.RetentionDays
	}
	if overlay.UseSSL {
		c.UseSSL = true
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.ContainerName == "" {
		c.ContainerName = "brand-assets"
	}
	if c.MaxListSize == 0 {
		c.MaxListSize = 50
	}
	if c.MaxListSize > MaxListCap {
		c.MaxListSize = MaxListCap
	}
	if c.RetentionDays == 0 {
		c.RetentionDays = 30
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.URLExpiry == "" {
		c.URLExpiry = "24h"
	}
	if c.LocalPath == "" {
		c.LocalPath = "storage"
	}
	if c.BaseURL == "" {
		c.BaseURL = "/api/v1/storage"
	}
}

func (c *Config) loadEnv(env *Env) {
	envString(&c.Provider, env.Provider)
	envString(&c.ContainerName, env.ContainerName)
	envString(&c.CleanupInterval, env.CleanupInterval)
	envString(&c.ConnectionString, env.ConnectionString)
	envString(&c.AccountURL, env.AccountURL)
	envString(&c.Endpoint, env.Endpoint)
	envString(&c.AccessKey, env.AccessKey)
	envString(&c.SecretKey, env.SecretKey)
	envString(&c.Region, env.Region)
	envString(&c.PublicURL, env.PublicURL)
	envString(&c.URLExpiry, env.URLExpiry)
	envString(&c.LocalPath, env.LocalPath)
	envString(&c.BaseURL, env.BaseURL)

	if env.MaxListSize != "" {
		if v := os.Getenv(env.MaxListSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxListSize = min(int32(n), MaxListCap)
			}
		}
	}
	if env.RetentionDays != "" {
		if v := os.Getenv(env.RetentionDays); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.RetentionDays = n
			}
		}
	}
	if env.UseSSL != "" {
		if v := os.Getenv(env.UseSSL); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.UseSSL = b
			}
		}
	}
}

func (c *Config) validate() error {
	if !slices.Contains(providers, c.Provider) {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative")
	}
	if _, err := time.ParseDuration(c.URLExpiry); err != nil {
		return fmt.Errorf("invalid url_expiry: %w", err)
	}
	if c.CleanupInterval != "" {
		if _, err := time.ParseDuration(c.CleanupInterval); err != nil {
			return fmt.Errorf("invalid cleanup_interval: %w", err)
		}
	}

	switch c.Provider {
	case ProviderAzure:
		if c.ConnectionString == "" && c.AccountURL == "" {
			return fmt.Errorf("connection_string or account_url required")
		}
	case ProviderS3:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint required")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return fmt.Errorf("access_key and secret_key required")
		}
	}
	return nil
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envString(dst *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
