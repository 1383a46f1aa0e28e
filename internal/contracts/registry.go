package contracts

import (
	"context"
	"time"

	"github.com/pypulse/pypulse/internal/domain"
)

// RegistryHealthMonitor provides a way to interact with the health status of the upstream registry.
type RegistryHealthMonitor interface {
	// Status returns the most recent health record for the upstream registry.
	Status() (domain.RegistryHealth, error)

	// Update records the outcome of a health probe.
	// Latency can be nil if the probe failed or was not measured.
	Update(status domain.HealthStatus, latency *time.Duration)
}

// RegistryPinger probes the upstream registry for reachability.
type RegistryPinger interface {
	Ping(ctx context.Context) error
}
