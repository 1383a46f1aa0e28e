package daemon

import (
	"sync"
	"time"

	"github.com/pypulse/pypulse/internal/domain"
	"github.com/pypulse/pypulse/internal/errors"
)

// HealthTracker records the outcome of periodic health probes against the
// upstream registry. NewHealthTracker should be used to create instances of HealthTracker.
type HealthTracker struct {
	mu     sync.RWMutex
	health domain.RegistryHealth
}

func NewHealthTracker(registryName string) *HealthTracker {
	return &HealthTracker{
		health: domain.RegistryHealth{
			Name:   registryName,
			Status: domain.HealthStatusUnknown,
		},
	}
}

// Status returns the most recent health record for the upstream registry.
// It returns an error until the first probe has completed.
func (h *HealthTracker) Status() (domain.RegistryHealth, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.health.LastChecked == nil {
		return domain.RegistryHealth{}, errors.ErrHealthNotTracked
	}

	return h.health, nil
}

// Update records a health probe outcome.
// The current time is recorded as LastChecked, and LastSuccessful is updated
// only if status is HealthStatusOK.
// Latency can be nil if the probe failed or was not measured.
func (h *HealthTracker) Update(status domain.HealthStatus, latency *time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now().UTC()

	lastSuccessful := h.health.LastSuccessful
	if status == domain.HealthStatusOK {
		lastSuccessful = &now
	}

	h.health = domain.RegistryHealth{
		Name:           h.health.Name,
		Status:         status,
		Latency:        latency,
		LastChecked:    &now,
		LastSuccessful: lastSuccessful,
	}
}
