package pypi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pypulse/pypulse/internal/cache"
)

const (
	// DefaultBaseURL is the public PyPI registry endpoint.
	DefaultBaseURL = "https://pypi.org"

	// DefaultTimeout is applied to the HTTP client when none is supplied.
	DefaultTimeout = 30 * time.Second

	defaultUserAgent = "pypulse"
)

// Option defines a functional option for configuring the PyPI registry.
type Option func(*Options) error

// Options contains optional configuration for the PyPI registry.
type Options struct {
	// baseURL is the registry endpoint, without a trailing slash.
	baseURL string

	// client is the HTTP client used for all registry calls.
	client *http.Client

	// userAgent is sent on every registry request.
	userAgent string

	// now supplies the current instant for maintenance scoring.
	now func() time.Time

	// cacheOpts configure the response cache.
	cacheOpts []cache.Option
}

func NewOptions(opts ...Option) (Options, error) {
	// Default options.
	o := Options{
		baseURL:   DefaultBaseURL,
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: defaultUserAgent,
		now:       time.Now,
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

// WithBaseURL sets the registry endpoint.
func WithBaseURL(url string) Option {
	return func(o *Options) error {
		url = strings.TrimSpace(url)
		if url == "" {
			return fmt.Errorf("base URL cannot be empty")
		}
		o.baseURL = strings.TrimSuffix(url, "/")
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) error {
		if client == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		o.client = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent to the registry.
func WithUserAgent(ua string) Option {
	return func(o *Options) error {
		ua = strings.TrimSpace(ua)
		if ua == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		o.userAgent = ua
		return nil
	}
}

// WithClock sets the source of the current time used for maintenance scoring.
// Intended for tests; production code should rely on the default.
func WithClock(now func() time.Time) Option {
	return func(o *Options) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.now = now
		return nil
	}
}

// WithCacheOptions configures the response cache.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(o *Options) error {
		o.cacheOpts = append(o.cacheOpts, opts...)
		return nil
	}
}
