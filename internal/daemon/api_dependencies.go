package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/pypulse/pypulse/internal/contracts"
	"github.com/pypulse/pypulse/internal/registry"
)

// APIDependencies contains the required external dependencies for the API server.
// NewAPIDependencies should be used to create instances of APIDependencies.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "0.0.0.0:8090").
	Addr string

	// Provider serves package search and resolution requests.
	Provider registry.PackageProvider

	// HealthTracker monitors upstream registry health status.
	HealthTracker contracts.RegistryHealthMonitor

	// Logger for API server operations.
	Logger hclog.Logger
}

// NewAPIDependencies creates and validates APIDependencies.
func NewAPIDependencies(
	logger hclog.Logger,
	provider registry.PackageProvider,
	healthTracker contracts.RegistryHealthMonitor,
	addr string,
) (APIDependencies, error) {
	deps := APIDependencies{
		Addr:          addr,
		Provider:      provider,
		HealthTracker: healthTracker,
		Logger:        logger,
	}

	if err := deps.Validate(); err != nil {
		return APIDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := validateAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if d.Provider == nil || reflect.ValueOf(d.Provider).IsNil() {
		return fmt.Errorf("package provider cannot be nil")
	}
	if d.HealthTracker == nil || reflect.ValueOf(d.HealthTracker).IsNil() {
		return fmt.Errorf("health tracker cannot be nil")
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}
