package component

import (
	"context"

	"github.com/kbukum/mallkit/observability"
)

// Component is a lifecycle-managed part of a process.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) observability.Health
}

// Func adapts plain functions into a Component. Nil funcs are no-ops and a
// nil health check reports up.
type Func struct {
	ID      string
	OnStart func(ctx context.Context) error
	OnStop  func(ctx context.Context) error
	Check   func(ctx context.Context) error
}

func (f Func) Name() string { return f.ID }

func (f Func) Start(ctx context.Context) error {
	if f.OnStart == nil {
		return nil
	}
	return f.OnStart(ctx)
}

func (f Func) Stop(ctx context.Context) error {
	if f.OnStop == nil {
		return nil
	}
	return f.OnStop(ctx)
}

func (f Func) Health(ctx context.Context) observability.Health {
	if f.Check == nil {
		return observability.Health{Name: f.ID, Status: observability.HealthStatusUp}
	}
	return observability.Probe(ctx, f.ID, f.Check)
}
