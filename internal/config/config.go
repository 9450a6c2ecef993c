// Package config loads the service configuration from config.toml, an
// optional environment overlay, a .env file, and BRANDKIT_ variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/brandkit/pkg/database"
	"github.com/JaimeStill/brandkit/pkg/logging"
	"github.com/JaimeStill/brandkit/pkg/mail"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvBrandkitEnv             = "BRANDKIT_ENV"
	EnvBrandkitShutdownTimeout = "BRANDKIT_SHUTDOWN_TIMEOUT"
	EnvBrandkitVersion         = "BRANDKIT_VERSION"
)

var databaseEnv = &database.Env{
	Enabled:         "BRANDKIT_DB_ENABLED",
	DSN:             "BRANDKIT_DB_DSN",
	Host:            "BRANDKIT_DB_HOST",
	Port:            "BRANDKIT_DB_PORT",
	Name:            "BRANDKIT_DB_NAME",
	User:            "BRANDKIT_DB_USER",
	Password:        "BRANDKIT_DB_PASSWORD",
	SSLMode:         "BRANDKIT_DB_SSL_MODE",
	MaxOpenConns:    "BRANDKIT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BRANDKIT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BRANDKIT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BRANDKIT_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "BRANDKIT_STORAGE_PROVIDER",
	ContainerName:    "BRANDKIT_STORAGE_CONTAINER_NAME",
	MaxListSize:      "BRANDKIT_STORAGE_MAX_LIST_SIZE",
	RetentionDays:    "BRANDKIT_STORAGE_RETENTION_DAYS",
	CleanupInterval:  "BRANDKIT_STORAGE_CLEANUP_INTERVAL",
	ConnectionString: "BRANDKIT_STORAGE_CONNECTION_STRING",
	AccountURL:       "BRANDKIT_STORAGE_ACCOUNT_URL",
	Endpoint:         "BRANDKIT_STORAGE_ENDPOINT",
	AccessKey:        "BRANDKIT_STORAGE_ACCESS_KEY",
	SecretKey:        "BRANDKIT_STORAGE_SECRET_KEY",
	Region:           "BRANDKIT_STORAGE_REGION",
	UseSSL:           "BRANDKIT_STORAGE_USE_SSL",
	PublicURL:        "BRANDKIT_STORAGE_PUBLIC_URL",
	URLExpiry:        "BRANDKIT_STORAGE_URL_EXPIRY",
	LocalPath:        "BRANDKIT_STORAGE_LOCAL_PATH",
	BaseURL:          "BRANDKIT_STORAGE_BASE_URL",
}

var loggingEnv = &logging.Env{
	Level:      "BRANDKIT_LOG_LEVEL",
	Format:     "BRANDKIT_LOG_FORMAT",
	File:       "BRANDKIT_LOG_FILE",
	MaxSizeMB:  "BRANDKIT_LOG_MAX_SIZE_MB",
	MaxBackups: "BRANDKIT_LOG_MAX_BACKUPS",
	MaxAgeDays: "BRANDKIT_LOG_MAX_AGE_DAYS",
	Compress:   "BRANDKIT_LOG_COMPRESS",
}

var emailEnv = &mail.Env{
	Provider: "BRANDKIT_EMAIL_PROVIDER",
	Host:     "BRANDKIT_EMAIL_SMTP_HOST",
	Port:     "BRANDKIT_EMAIL_SMTP_PORT",
	Username: "BRANDKIT_EMAIL_USERNAME",
	Password: "BRANDKIT_EMAIL_PASSWORD",
	From:     "BRANDKIT_EMAIL_FROM",
	Timeout:  "BRANDKIT_EMAIL_TIMEOUT",
}

// Config is the root configuration for the brand kit service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	API             APIConfig        `toml:"api"`
	Logging         logging.Config   `toml:"logging"`
	Storage         storage.Config   `toml:"storage"`
	Database        database.Config  `toml:"database"`
	Generation      GenerationConfig `toml:"generation"`
	Email           mail.Config      `toml:"email"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the BRANDKIT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBrandkitEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads .env into the process environment, then the base config (if
// present), applies any environment overlay, and finalizes all values.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
	c.Database.Merge(&overlay.Database)
	c.Generation.Merge(&overlay.Generation)
	c.Email.Merge(&overlay.Email)
}

// Finalize applies defaults, environment variable overrides, and validation
// to every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.Storage.BaseURL == "" {
		c.Storage.BaseURL = c.API.BasePath + "/v1/storage"
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Generation.Finalize(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if err := c.Email.Finalize(emailEnv); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBrandkitShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBrandkitVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBrandkitEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
