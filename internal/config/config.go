// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Configuration is loaded once at start-up and passed explicitly; nothing
//   reads it from package globals.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"

	"github.com/artamananda/portfolio/internal/domain/catalog"
	"github.com/artamananda/portfolio/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// UsageURL is the upstream usage API relayed by GET /api/usage.
	UsageURL string `koanf:"usage_url"`

	// UsageTimeoutMS bounds one upstream round trip.
	UsageTimeoutMS int `koanf:"usage_timeout_ms"`

	// UsageMaxBodyBytes caps the upstream payload size.
	UsageMaxBodyBytes int64 `koanf:"usage_max_body_bytes"`

	// Author is the site owner's identity.
	Author model.Profile `koanf:"author"`

	// Projects is the portfolio listing in display order.
	Projects []model.Project `koanf:"projects"`
}

// UsageTimeout returns UsageTimeoutMS as a duration.
func (c *Config) UsageTimeout() time.Duration {
	return time.Duration(c.UsageTimeoutMS) * time.Millisecond
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":3000",
		UsageURL:          "https://info.artamananda.my.id/",
		UsageTimeoutMS:    10_000,
		UsageMaxBodyBytes: 1 << 20,
		Author:            catalog.DefaultProfile(),
		Projects:          catalog.DefaultProjects(),
	}
}
