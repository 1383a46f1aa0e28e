package cache

import (
	"fmt"
	"time"
)

const (
	// DefaultTTL is the time-to-live applied to cache entries when not configured.
	DefaultTTL = 1 * time.Hour

	// DefaultSize is the maximum number of cache entries when not configured.
	DefaultSize = 256
)

// Option defines a functional option for configuring Cache.
type Option func(*Options) error

// Options contains optional configuration for the cache.
type Options struct {
	// ttl is the time-to-live for cached entries.
	ttl time.Duration

	// size is the maximum number of entries held before LRU eviction.
	size int

	// enabled determines if caching is enabled.
	enabled bool
}

func NewOptions(opts ...Option) (Options, error) {
	// Default options.
	o := Options{
		ttl:     DefaultTTL,
		size:    DefaultSize,
		enabled: true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) error {
		if ttl <= 0 {
			return fmt.Errorf("TTL must be positive, got %v", ttl)
		}
		o.ttl = ttl
		return nil
	}
}

// WithSize sets the maximum number of cache entries.
func WithSize(size int) Option {
	return func(o *Options) error {
		if size <= 0 {
			return fmt.Errorf("size must be positive, got %d", size)
		}
		o.size = size
		return nil
	}
}

// WithCaching configures whether caching is enabled.
func WithCaching(enabled bool) Option {
	return func(o *Options) error {
		o.enabled = enabled
		return nil
	}
}
