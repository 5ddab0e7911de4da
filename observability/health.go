package observability

import (
	"context"
	"time"
)

// HealthStatus is the health state of a component.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes one component.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ServiceHealth is the body of a health endpoint.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth creates a ServiceHealth with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service:   service,
		Status:    HealthStatusUp,
		Version:   version,
		CheckedAt: time.Now().UTC(),
	}
}

// AddComponent records ch and degrades the overall status if needed.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)

	switch ch.Status {
	case HealthStatusDown:
		sh.Status = HealthStatusDown
	case HealthStatusDegraded:
		if sh.Status != HealthStatusDown {
			sh.Status = HealthStatusDegraded
		}
	}
}

// Probe runs check and turns its result into a Health entry.
func Probe(ctx context.Context, name string, check func(context.Context) error) Health {
	if err := check(ctx); err != nil {
		return Health{Name: name, Status: HealthStatusDown, Message: err.Error()}
	}
	return Health{Name: name, Status: HealthStatusUp}
}
