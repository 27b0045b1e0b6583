package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	envPrefix     = "PORTFOLIO_"
	envConfigFile = "PORTFOLIO_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PORTFOLIO_CONFIG is set
//  3. env (prefix PORTFOLIO_, "__" separates nested keys)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// PORTFOLIO_USAGE_URL -> usage_url, PORTFOLIO_AUTHOR__SOCIAL__GITHUB -> author.social.github.
	// Single underscores are preserved to match koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	// A configured listing replaces the defaults instead of being merged
	// element by element into them.
	if k.Exists("projects") {
		cfg.Projects = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the service relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.UsageURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: usage_url must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.UsageURL)
	}
	if c.UsageTimeoutMS <= 0 {
		return fmt.Errorf("%w: usage_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.UsageMaxBodyBytes <= 0 {
		return fmt.Errorf("%w: usage_max_body_bytes must be positive", ErrInvalidConfig)
	}
	if err := c.Author.Validate(); err != nil {
		return fmt.Errorf("%w: author: %v", ErrInvalidConfig, err)
	}
	for i, p := range c.Projects {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: projects[%d]: %v", ErrInvalidConfig, i, err)
		}
	}
	return nil
}
