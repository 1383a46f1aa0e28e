package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pypulse/pypulse/internal/cmd"
	cmdopts "github.com/pypulse/pypulse/internal/cmd/options"
	"github.com/pypulse/pypulse/internal/config"
	"github.com/pypulse/pypulse/internal/daemon"
	"github.com/pypulse/pypulse/internal/flags"
	"github.com/pypulse/pypulse/internal/registry"
)

// DaemonCmd should be used to represent the 'daemon' command.
type DaemonCmd struct {
	*cmd.BaseCmd
	Addr            string
	cfgLoader       config.Loader
	registryBuilder registry.Builder
}

// NewDaemonCmd creates a newly configured (Cobra) command.
func NewDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DaemonCmd{
		BaseCmd:         baseCmd,
		cfgLoader:       opts.ConfigLoader,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCommand := &cobra.Command{
		Use:   "daemon [--addr]",
		Short: "Runs the MCP server over stdio",
		Long: "Runs the MCP server over stdio, exposing PyPI package search and detail tools. " +
			"Optionally serves an HTTP API when an address is configured.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Addr,
		"addr",
		"",
		"Optional address to bind the HTTP API (e.g. 0.0.0.0:8090); the API is disabled when unset",
	)

	return cobraCommand, nil
}

// run is configured (via NewDaemonCmd) to be called by the Cobra framework when the command is executed.
func (c *DaemonCmd) run(_ *cobra.Command, _ []string) error {
	logger := c.Logger()

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	// The flag takes precedence over the config file.
	addr := strings.TrimSpace(c.Addr)
	if addr == "" {
		addr = cfg.APIAddr()
	}
	if addr != "" {
		if err := daemon.IsValidAddr(addr); err != nil {
			return fmt.Errorf("invalid api address '%s': %w", addr, err)
		}
	}

	provider, err := c.registryBuilder.Build()
	if err != nil {
		return fmt.Errorf("failed to create registry: %w", err)
	}

	daemonOpts := []daemon.Option{
		daemon.WithHealthCheckInterval(cfg.HealthInterval()),
		daemon.WithHealthCheckTimeout(cfg.HealthTimeout()),
	}
	if addr != "" {
		daemonOpts = append(daemonOpts, daemon.WithAPIAddr(addr))
		daemonOpts = append(daemonOpts, daemon.WithAPIOptions(apiOptions(cfg)...))
	}

	d, err := daemon.NewDaemon(logger, provider, daemonOpts...)
	if err != nil {
		return fmt.Errorf("failed to create daemon instance: %w", err)
	}

	// Create the signal handling context for the application.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	runErr := make(chan error, 1)
	go func() {
		if err := d.StartAndManage(daemonCtx); err != nil && !errors.Is(err, context.Canceled) {
			runErr <- err
		}
		close(runErr)
	}()

	select {
	case <-daemonCtx.Done():
		logger.Info("Shutting down daemon")
		err := <-runErr // Wait for cleanup and deferred logging.
		return err      // Graceful Ctrl+C / SIGTERM.
	case err := <-runErr:
		if err != nil {
			logger.Error("daemon exited with error", "error", err)
		}
		return err // Propagate daemon failure.
	}
}

// apiOptions converts the config file CORS section into API server options.
func apiOptions(cfg *config.Config) []daemon.APIOption {
	var opts []daemon.APIOption

	cors := cfg.CORS()
	if cors == nil {
		return opts
	}

	if cors.Enable != nil {
		opts = append(opts, daemon.WithCORSEnabled(*cors.Enable))
	}
	if cors.Origins != nil {
		opts = append(opts, daemon.WithCORSAllowOrigins(cors.Origins))
	}
	if cors.Methods != nil {
		opts = append(opts, daemon.WithCORSAllowMethods(cors.Methods))
	}
	if cors.Headers != nil {
		opts = append(opts, daemon.WithCORSAllowHeaders(cors.Headers))
	}
	if cors.ExposeHeaders != nil {
		opts = append(opts, daemon.WithCORSExposeHeaders(cors.ExposeHeaders))
	}
	if cors.Credentials != nil {
		opts = append(opts, daemon.WithCORSAllowCredentials(*cors.Credentials))
	}
	if cors.MaxAge != nil {
		opts = append(opts, daemon.WithCORSMaxAge(time.Duration(*cors.MaxAge)))
	}

	return opts
}
