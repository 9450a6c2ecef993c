package openapi

import (
	"os"
	"strconv"
)

// Config controls the generated API document. Enabled is a pointer so an
// overlay can switch the document off; nil means on.
type Config struct {
	Enabled     *bool  `toml:"enabled"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Contact     string `toml:"contact"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Enabled     string
	Title       string
	Description string
	Contact     string
}

const (
	defaultTitle       = "Brandkit API"
	defaultDescription = "Brand kit generation: logo concepts, color palettes, typography, and brand copy."
)

// IsEnabled reports whether /openapi.json should be served.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Description == "" {
		c.Description = defaultDescription
	}

	if env == nil {
		return nil
	}
	if env.Enabled != "" {
		if b, err := strconv.ParseBool(os.Getenv(env.Enabled)); err == nil {
			c.Enabled = &b
		}
	}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{env.Title, &c.Title},
		{env.Description, &c.Description},
		{env.Contact, &c.Contact},
	} {
		if f.name == "" {
			continue
		}
		if v := os.Getenv(f.name); v != "" {
			*f.dst = v
		}
	}
	return nil
}

// Merge overwrites fields set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Contact != "" {
		c.Contact = overlay.Contact
	}
}
