package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "BRANDKIT_SERVER_HOST"
	EnvServerPort              = "BRANDKIT_SERVER_PORT"
	EnvServerReadTimeout       = "BRANDKIT_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "BRANDKIT_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "BRANDKIT_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "BRANDKIT_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "BRANDKIT_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds the HTTP listener settings. WriteTimeout bounds a
// synchronous generate call, so its default is generous.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// durationField ties a duration setting to its key, env var, and default.
type durationField struct {
	key      string
	env      string
	fallback string
	value    *string
}

func (c *ServerConfig) durations() []durationField {
	return []durationField{
		{"read_timeout", EnvServerReadTimeout, "1m", &c.ReadTimeout},
		{"read_header_timeout", EnvServerReadHeaderTimeout, "10s", &c.ReadHeaderTimeout},
		{"write_timeout", EnvServerWriteTimeout, "15m", &c.WriteTimeout},
		{"idle_timeout", EnvServerIdleTimeout, "2m", &c.IdleTimeout},
		{"shutdown_timeout", EnvServerShutdownTimeout, "30s", &c.ShutdownTimeout},
	}
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration       { return parsedDuration(c.ReadTimeout) }
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return parsedDuration(c.ReadHeaderTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration      { return parsedDuration(c.WriteTimeout) }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration       { return parsedDuration(c.IdleTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration   { return parsedDuration(c.ShutdownTimeout) }

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}

	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if port, err := strconv.Atoi(os.Getenv(EnvServerPort)); err == nil {
		c.Port = port
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	for _, f := range c.durations() {
		if *f.value == "" {
			*f.value = f.fallback
		}
		if v := os.Getenv(f.env); v != "" {
			*f.value = v
		}
		if d, err := time.ParseDuration(*f.value); err != nil || d < 0 {
			return fmt.Errorf("invalid %s: %q", f.key, *f.value)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}

	theirs := overlay.durations()
	for i, f := range c.durations() {
		if v := *theirs[i].value; v != "" {
			*f.value = v
		}
	}
}

// parsedDuration parses a value Finalize has already validated.
func parsedDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
