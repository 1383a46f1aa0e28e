package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pypulse/pypulse/internal/contracts"
	"github.com/pypulse/pypulse/internal/domain"
)

const (
	HealthStatusOK          HealthStatus = "ok"
	HealthStatusTimeout     HealthStatus = "timeout"
	HealthStatusUnreachable HealthStatus = "unreachable"
	HealthStatusUnknown     HealthStatus = "unknown"
)

// DomainRegistryHealth is a wrapper that allows receivers to be declared in the API package that deal with domain types.
type DomainRegistryHealth domain.RegistryHealth

// HealthStatus represents the current status of the upstream package registry when establishing its health.
type HealthStatus string

// RegistryHealth is used to provide information about ongoing health checks performed on the upstream registry.
type RegistryHealth struct {
	Name           string       `json:"name"`
	Status         HealthStatus `json:"status"`
	Latency        *string      `json:"latency,omitempty"`
	LastChecked    *time.Time   `json:"lastChecked,omitempty"`
	LastSuccessful *time.Time   `json:"lastSuccessful,omitempty"`
}

// RegistryHealthResponse represents the wrapped API response for a RegistryHealth.
type RegistryHealthResponse struct {
	Body RegistryHealth
}

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainRegistryHealth) ToAPIType() (RegistryHealth, error) {
	status, err := parseHealthStatus(d.Status)
	if err != nil {
		return RegistryHealth{}, err
	}

	var latency *string
	if d.Latency != nil {
		s := d.Latency.String()
		latency = &s
	}
	return RegistryHealth{
		Name:           d.Name,
		Status:         status,
		Latency:        latency,
		LastChecked:    d.LastChecked,
		LastSuccessful: d.LastSuccessful,
	}, nil
}

// RegisterHealthRoutes sets up health-related API endpoint routes.
func RegisterHealthRoutes(routerAPI huma.API, monitor contracts.RegistryHealthMonitor, apiPathPrefix string) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Health"}

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "getRegistryHealth",
			Method:      http.MethodGet,
			Path:        "/registry",
			Summary:     "Get the health status of the upstream package registry",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*RegistryHealthResponse, error) {
			return handleRegistryHealth(monitor)
		},
	)
}

// handleRegistryHealth is the handler for retrieving the current health of the upstream registry.
func handleRegistryHealth(monitor contracts.RegistryHealthMonitor) (*RegistryHealthResponse, error) {
	health, err := monitor.Status()
	if err != nil {
		return nil, err
	}

	data, err := DomainRegistryHealth(health).ToAPIType()
	if err != nil {
		return nil, err
	}

	response := RegistryHealthResponse{}
	response.Body = data

	return &response, nil
}

func parseHealthStatus(status domain.HealthStatus) (HealthStatus, error) {
	switch status {
	case domain.HealthStatusOK:
		return HealthStatusOK, nil
	case domain.HealthStatusTimeout:
		return HealthStatusTimeout, nil
	case domain.HealthStatusUnreachable:
		return HealthStatusUnreachable, nil
	case domain.HealthStatusUnknown:
		return HealthStatusUnknown, nil
	default:
		return "", fmt.Errorf("unknown health status: %s", status)
	}
}
