package daemon

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/pypulse/pypulse/internal/contracts"
	"github.com/pypulse/pypulse/internal/domain"
	"github.com/pypulse/pypulse/internal/registry"
)

// Daemon runs the MCP server over stdio, alongside the optional HTTP API and
// the upstream registry health probe.
// NewDaemon should be used to create instances of Daemon.
type Daemon struct {
	logger        hclog.Logger
	provider      registry.PackageProvider
	healthTracker *HealthTracker
	mcpServer     *server.MCPServer
	apiServer     *APIServer

	healthCheckInterval time.Duration
	healthCheckTimeout  time.Duration
}

// NewDaemon creates a daemon serving the given package provider.
func NewDaemon(logger hclog.Logger, provider registry.PackageProvider, opt ...Option) (*Daemon, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if provider == nil || reflect.ValueOf(provider).IsNil() {
		return nil, fmt.Errorf("package provider cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon options: %w", err)
	}

	healthTracker := NewHealthTracker(provider.ID())

	var apiServer *APIServer
	if opts.APIAddr != "" {
		deps, err := NewAPIDependencies(logger, provider, healthTracker, opts.APIAddr)
		if err != nil {
			return nil, err
		}

		apiServer, err = NewAPIServer(deps, opts.APIOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to create daemon API server: %w", err)
		}
	}

	return &Daemon{
		logger:              logger.Named("daemon"),
		provider:            provider,
		healthTracker:       healthTracker,
		mcpServer:           newMCPServer(logger, provider),
		apiServer:           apiServer,
		healthCheckInterval: opts.HealthCheckInterval,
		healthCheckTimeout:  opts.HealthCheckTimeout,
	}, nil
}

// HealthTracker exposes the daemon's registry health records.
func (d *Daemon) HealthTracker() contracts.RegistryHealthMonitor {
	return d.healthTracker
}

// StartAndManage starts the MCP stdio server, the HTTP API when configured,
// and the health probe loop, blocking until the context is canceled or one
// of them fails.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.logger.Info("Serving MCP over stdio")
		stdio := server.NewStdioServer(d.mcpServer)
		stdio.SetErrorLogger(d.logger.Named("mcp").StandardLogger(&hclog.StandardLoggerOptions{
			InferLevels: true,
		}))
		if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !stdErrors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio server error: %w", err)
		}
		return nil
	})

	if d.apiServer != nil {
		g.Go(func() error {
			if err := d.apiServer.Start(ctx); err != nil && !stdErrors.Is(err, context.Canceled) {
				return fmt.Errorf("API server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		d.healthCheckLoop(ctx)
		return nil
	})

	return g.Wait()
}

// healthCheckLoop periodically probes the upstream registry until the context is canceled.
func (d *Daemon) healthCheckLoop(ctx context.Context) {
	pinger, ok := d.provider.(contracts.RegistryPinger)
	if !ok {
		d.logger.Debug("Provider does not support health probes", "registry", d.provider.ID())
		return
	}

	ticker := time.NewTicker(d.healthCheckInterval)
	defer ticker.Stop()

	d.probe(ctx, pinger)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Stopping registry health checks")
			return
		case <-ticker.C:
			d.probe(ctx, pinger)
		}
	}
}

// probe pings the upstream registry once and records the outcome.
func (d *Daemon) probe(ctx context.Context, pinger contracts.RegistryPinger) {
	pingCtx, cancel := context.WithTimeout(ctx, d.healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := pinger.Ping(pingCtx)
	latency := time.Since(start)

	switch {
	case err == nil:
		d.healthTracker.Update(domain.HealthStatusOK, &latency)
		d.logger.Debug("Registry probe successful", "latency", latency)
	case stdErrors.Is(err, context.DeadlineExceeded):
		d.healthTracker.Update(domain.HealthStatusTimeout, nil)
		d.logger.Warn("Registry probe timed out", "timeout", d.healthCheckTimeout)
	default:
		d.healthTracker.Update(domain.HealthStatusUnreachable, nil)
		d.logger.Warn("Registry unreachable", "error", err)
	}
}

// IsValidAddr returns an error if the address is not a valid "host:port" string.
func IsValidAddr(addr string) error {
	return validateAddr(addr)
}
