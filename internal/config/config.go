package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultRegistryURL is the upstream registry used when none is configured.
	DefaultRegistryURL = "https://pypi.org"

	// DefaultRequestTimeout bounds registry HTTP requests when no timeout is configured.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultCacheTTL is how long cached registry responses remain valid.
	DefaultCacheTTL = 1 * time.Hour

	// DefaultCacheSize is the maximum number of cached registry responses.
	DefaultCacheSize = 256

	// DefaultHealthInterval is the default interval between registry health probes.
	DefaultHealthInterval = 30 * time.Second

	// DefaultHealthTimeout is the default timeout for a registry health probe.
	DefaultHealthTimeout = 5 * time.Second
)

// Load reads and validates configuration from the given path.
// A missing file is not an error: defaults apply for every setting.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return &cfg, nil
}

// RegistryURL returns the configured registry base URL, or the default.
func (c *Config) RegistryURL() string {
	if c.Registry != nil && c.Registry.URL != nil {
		return strings.TrimSuffix(strings.TrimSpace(*c.Registry.URL), "/")
	}
	return DefaultRegistryURL
}

// RequestTimeout returns the configured registry request timeout, or the default.
func (c *Config) RequestTimeout() time.Duration {
	if c.Registry != nil && c.Registry.RequestTimeout != nil {
		return time.Duration(*c.Registry.RequestTimeout)
	}
	return DefaultRequestTimeout
}

// UserAgent returns the configured User-Agent override, or empty when unset.
func (c *Config) UserAgent() string {
	if c.Registry != nil && c.Registry.UserAgent != nil {
		return strings.TrimSpace(*c.Registry.UserAgent)
	}
	return ""
}

// CacheEnabled reports whether registry response caching is enabled.
// Caching is on unless explicitly disabled.
func (c *Config) CacheEnabled() bool {
	if c.Cache != nil && c.Cache.Enable != nil {
		return *c.Cache.Enable
	}
	return true
}

// CacheTTL returns the configured cache TTL, or the default.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache != nil && c.Cache.TTL != nil {
		return time.Duration(*c.Cache.TTL)
	}
	return DefaultCacheTTL
}

// CacheSize returns the configured cache size, or the default.
func (c *Config) CacheSize() int {
	if c.Cache != nil && c.Cache.Size != nil {
		return *c.Cache.Size
	}
	return DefaultCacheSize
}

// APIAddr returns the configured API bind address, or empty when the API is not configured.
func (c *Config) APIAddr() string {
	if c.API != nil && c.API.Addr != nil {
		return strings.TrimSpace(*c.API.Addr)
	}
	return ""
}

// CORS returns the configured CORS section, which may be nil.
func (c *Config) CORS() *CORSConfigSection {
	if c.API == nil {
		return nil
	}
	return c.API.CORS
}

// HealthInterval returns the configured health probe interval, or the default.
func (c *Config) HealthInterval() time.Duration {
	if c.Health != nil && c.Health.Interval != nil {
		return time.Duration(*c.Health.Interval)
	}
	return DefaultHealthInterval
}

// HealthTimeout returns the configured health probe timeout, or the default.
func (c *Config) HealthTimeout() time.Duration {
	if c.Health != nil && c.Health.Timeout != nil {
		return time.Duration(*c.Health.Timeout)
	}
	return DefaultHealthTimeout
}

// validate orchestrates validation of configuration structure.
func (c *Config) validate() error {
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateHealth(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if c.Registry == nil {
		return nil
	}

	if c.Registry.URL != nil {
		raw := strings.TrimSpace(*c.Registry.URL)
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid registry URL '%s': %w", raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid registry URL '%s': scheme must be http or https", raw)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid registry URL '%s': missing host", raw)
		}
	}

	if c.Registry.RequestTimeout != nil && time.Duration(*c.Registry.RequestTimeout) <= 0 {
		return fmt.Errorf("registry request timeout must be positive, got %s", c.Registry.RequestTimeout)
	}

	return nil
}

func (c *Config) validateCache() error {
	if c.Cache == nil {
		return nil
	}

	if c.Cache.TTL != nil && time.Duration(*c.Cache.TTL) <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Size != nil && *c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", *c.Cache.Size)
	}

	return nil
}

func (c *Config) validateHealth() error {
	if c.Health == nil {
		return nil
	}

	if c.Health.Interval != nil && time.Duration(*c.Health.Interval) <= 0 {
		return fmt.Errorf("health interval must be positive, got %s", c.Health.Interval)
	}
	if c.Health.Timeout != nil && time.Duration(*c.Health.Timeout) <= 0 {
		return fmt.Errorf("health timeout must be positive, got %s", c.Health.Timeout)
	}

	return nil
}
