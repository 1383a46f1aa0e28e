// Package cache provides the in-memory TTL cache that guards remote
// registry fetches. Entries expire after a fixed TTL and the cache holds a
// bounded number of entries, evicting least-recently-used entries first.
package cache

import (
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a TTL-bounded, size-bounded in-memory cache keyed by string.
// NewCache should be used to create instances of Cache.
// It is safe for concurrent use.
type Cache[V any] struct {
	// entries is the underlying expirable LRU store.
	entries *expirable.LRU[string, V]

	// enabled determines if caching is enabled.
	enabled bool

	// logger is used for logging cache operations.
	logger hclog.Logger
}

// NewCache creates a new in-memory cache for registry responses.
func NewCache[V any](logger hclog.Logger, opts ...Option) (*Cache[V], error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Cache[V]{
		entries: expirable.NewLRU[string, V](options.size, nil, options.ttl),
		enabled: options.enabled,
		logger:  logger.Named("cache"),
	}, nil
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	if !c.enabled {
		var zero V
		return zero, false
	}

	value, ok := c.entries.Get(key)
	if ok {
		c.logger.Debug("Cache hit", "key", key)
	} else {
		c.logger.Debug("Cache miss", "key", key)
	}

	return value, ok
}

// Set stores value under key, replacing any existing entry.
func (c *Cache[V]) Set(key string, value V) {
	if !c.enabled {
		return
	}

	c.entries.Add(key, value)
	c.logger.Debug("Cache store", "key", key)
}

// Purge removes all entries from the cache.
func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

// Len returns the number of live entries in the cache.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}
