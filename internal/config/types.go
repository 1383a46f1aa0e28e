package config

import (
	"fmt"
	"time"
)

var _ Loader = (*DefaultLoader)(nil)

// Loader loads application configuration from a file path.
type Loader interface {
	Load(path string) (*Config, error)
}

type DefaultLoader struct{}

// Config represents the .pypulse.toml file structure.
// All sections are optional; accessor methods apply defaults for missing values.
type Config struct {
	Registry *RegistryConfigSection `json:"registry,omitempty" toml:"registry,omitempty" yaml:"registry,omitempty"`
	Cache    *CacheConfigSection    `json:"cache,omitempty"    toml:"cache,omitempty"    yaml:"cache,omitempty"`
	API      *APIConfigSection      `json:"api,omitempty"      toml:"api,omitempty"      yaml:"api,omitempty"`
	Health   *HealthConfigSection   `json:"health,omitempty"   toml:"health,omitempty"   yaml:"health,omitempty"`
}

// RegistryConfigSection contains upstream package registry settings.
type RegistryConfigSection struct {
	// URL is the base URL of the registry (e.g. "https://pypi.org").
	URL *string `json:"url,omitempty" toml:"url,omitempty" yaml:"url,omitempty"`

	// RequestTimeout bounds individual registry HTTP requests.
	RequestTimeout *Duration `json:"requestTimeout,omitempty" toml:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`

	// UserAgent overrides the User-Agent header sent to the registry.
	UserAgent *string `json:"userAgent,omitempty" toml:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// CacheConfigSection contains settings for the in-memory response cache.
type CacheConfigSection struct {
	// Enable toggles caching of registry responses.
	Enable *bool `json:"enable,omitempty" toml:"enable,omitempty" yaml:"enable,omitempty"`

	// TTL is how long cached entries remain valid.
	TTL *Duration `json:"ttl,omitempty" toml:"ttl,omitempty" yaml:"ttl,omitempty"`

	// Size is the maximum number of cached entries.
	Size *int `json:"size,omitempty" toml:"size,omitempty" yaml:"size,omitempty"`
}

// APIConfigSection contains HTTP API server settings.
type APIConfigSection struct {
	// Address to bind the API server (e.g., "0.0.0.0:8090").
	// Maps to CLI flag --addr
	Addr *string `json:"addr,omitempty" toml:"addr,omitempty" yaml:"addr,omitempty"`

	// Nested CORS configuration for cross-origin requests.
	CORS *CORSConfigSection `json:"cors,omitempty" toml:"cors,omitempty" yaml:"cors,omitempty"`
}

// CORSConfigSection contains Cross-Origin Resource Sharing (CORS) configuration.
type CORSConfigSection struct {
	// Enable CORS support.
	Enable *bool `json:"enable,omitempty" toml:"enable,omitempty" yaml:"enable,omitempty"`

	// Allowed origins for CORS requests.
	Origins []string `json:"allowOrigins,omitempty" toml:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`

	// Allowed HTTP methods for CORS requests.
	Methods []string `json:"allowMethods,omitempty" toml:"allow_methods,omitempty" yaml:"allow_methods,omitempty"`

	// Allowed headers for CORS requests.
	Headers []string `json:"allowHeaders,omitempty" toml:"allow_headers,omitempty" yaml:"allow_headers,omitempty"`

	// Headers exposed to the client.
	ExposeHeaders []string `json:"exposeHeaders,omitempty" toml:"expose_headers,omitempty" yaml:"expose_headers,omitempty"`

	// Allow credentials in CORS requests.
	Credentials *bool `json:"allowCredentials,omitempty" toml:"allow_credentials,omitempty" yaml:"allow_credentials,omitempty"`

	// Maximum age for CORS preflight cache.
	MaxAge *Duration `json:"maxAge,omitempty" toml:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// HealthConfigSection contains upstream registry health probe settings.
type HealthConfigSection struct {
	// Interval between health probes.
	Interval *Duration `json:"interval,omitempty" toml:"interval,omitempty" yaml:"interval,omitempty"`

	// Timeout for an individual health probe.
	Timeout *Duration `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler for Duration.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(*d).String()), nil
}

// String returns a human-readable string representation of the duration.
func (d *Duration) String() string {
	if d == nil {
		return ""
	}

	duration := time.Duration(*d)

	// List of duration units in descending order.
	units := []struct {
		unit   time.Duration
		suffix string
	}{
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
		{time.Millisecond, "ms"},
		{time.Microsecond, "µs"},
		{time.Nanosecond, "ns"},
	}

	for _, u := range units {
		if duration%u.unit == 0 {
			return fmt.Sprintf("%d%s", duration/u.unit, u.suffix)
		}
	}

	// Fallback to nanoseconds if no exact match.
	return fmt.Sprintf("%dns", duration)
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}
