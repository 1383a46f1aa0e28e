package options

import (
	"strings"
)

type ResolveOption func(*ResolveOptions) error

type ResolveOptions struct {
	// Version pins the reported version; empty means latest.
	Version string
}

func defaultResolveOptions() ResolveOptions {
	return ResolveOptions{}
}

func NewResolveOptions(opt ...ResolveOption) (ResolveOptions, error) {
	opts := defaultResolveOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return ResolveOptions{}, err
		}
	}
	return opts, nil
}

func WithResolveVersion(version string) ResolveOption {
	return func(o *ResolveOptions) error {
		o.Version = strings.TrimSpace(version)
		return nil
	}
}
