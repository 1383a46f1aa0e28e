package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/pypulse/pypulse/internal/cache"
	"github.com/pypulse/pypulse/internal/config"
	"github.com/pypulse/pypulse/internal/flags"
	"github.com/pypulse/pypulse/internal/registry"
	"github.com/pypulse/pypulse/internal/registry/pypi"
)

type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	// Configure logger output.
	// Stdout carries the MCP protocol so logs must never be written there.
	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, discarding logs\n", logPath, err)
		} else {
			output = f
		}
	}

	// Using flags/env for fallback logger
	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "pypulse-default",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// Build constructs the configured upstream registry.
// Implements registry.Builder.
func (c *BaseCmd) Build() (registry.PackageProvider, error) {
	l := c.Logger().Named("registry")

	loader := &config.DefaultLoader{}
	cfg, err := loader.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	return BuildRegistry(l, cfg)
}

// BuildRegistry creates a PyPI registry from the loaded configuration.
func BuildRegistry(logger hclog.Logger, cfg *config.Config) (registry.PackageProvider, error) {
	opts := []pypi.Option{
		pypi.WithBaseURL(cfg.RegistryURL()),
		pypi.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		pypi.WithCacheOptions(
			cache.WithCaching(cfg.CacheEnabled()),
			cache.WithTTL(cfg.CacheTTL()),
			cache.WithSize(cfg.CacheSize()),
		),
	}
	if ua := cfg.UserAgent(); ua != "" {
		opts = append(opts, pypi.WithUserAgent(ua))
	}

	reg, err := pypi.NewRegistry(logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	return reg, nil
}
