package options

import (
	"github.com/pypulse/pypulse/internal/cmd"
	"github.com/pypulse/pypulse/internal/config"
	"github.com/pypulse/pypulse/internal/registry"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader    config.Loader
	RegistryBuilder registry.Builder
}

func defaultOptions() CmdOptions {
	return CmdOptions{
		ConfigLoader:    &config.DefaultLoader{},
		RegistryBuilder: &cmd.BaseCmd{},
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		o.ConfigLoader = l
		return nil
	}
}

func WithRegistryBuilder(b registry.Builder) CmdOption {
	return func(o *CmdOptions) error {
		o.RegistryBuilder = b
		return nil
	}
}
