package options

import (
	"fmt"
)

const (
	// DefaultSearchLimit is the number of search results returned when no limit is requested.
	DefaultSearchLimit = 10

	// MaxSearchLimit bounds the number of search results a caller may request.
	MaxSearchLimit = 100
)

type SearchOption func(*SearchOptions) error

type SearchOptions struct {
	// Limit is the maximum number of results to return.
	Limit int
}

func defaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit: DefaultSearchLimit,
	}
}

func NewSearchOptions(opt ...SearchOption) (SearchOptions, error) {
	opts := defaultSearchOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return SearchOptions{}, err
		}
	}
	return opts, nil
}

func WithSearchLimit(limit int) SearchOption {
	return func(o *SearchOptions) error {
		if limit < 1 || limit > MaxSearchLimit {
			return fmt.Errorf("limit must be between 1 and %d, got %d", MaxSearchLimit, limit)
		}
		o.Limit = limit
		return nil
	}
}
