package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/observability"
)

// DefaultStopTimeout bounds each component's Stop.
const DefaultStopTimeout = 10 * time.Second

type entry struct {
	component Component
	started   bool
}

// Registry manages component lifecycle with deterministic ordering.
type Registry struct {
	entries     []*entry
	lookup      map[string]*entry
	log         *logger.Logger
	stopTimeout time.Duration
	mu          sync.Mutex
}

// NewRegistry creates an empty registry that logs through log.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		lookup:      make(map[string]*entry),
		log:         log,
		stopTimeout: DefaultStopTimeout,
	}
}

// Register appends c. Register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if name == "" {
		return errors.New("component: empty name")
	}
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component: %s already registered", name)
	}
	e := &entry{component: c}
	r.entries = append(r.entries, e)
	r.lookup[name] = e
	r.log.Debug("Component registered", logger.Fields("component", name))
	return nil
}

// StartAll starts every component in order. On failure the components that
// already started are stopped again and the start error is returned.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting components", logger.Fields("count", len(r.entries)))
	for _, e := range r.entries {
		name := e.component.Name()
		if err := e.component.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.Fields("component", name, logger.FieldError, err.Error()))
			if stopErr := r.stopStarted(context.WithoutCancel(ctx)); stopErr != nil {
				r.log.Warn("Rollback incomplete", logger.Fields(logger.FieldError, stopErr.Error()))
			}
			return fmt.Errorf("component: start %s: %w", name, err)
		}
		e.started = true
		r.log.Debug("Component started", logger.Fields("component", name))
	}
	return nil
}

// StopAll stops started components in reverse order and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopStarted(ctx)
}

func (r *Registry) stopStarted(ctx context.Context) error {
	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if !e.started {
			continue
		}
		name := e.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, r.stopTimeout)
		if err := e.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("component: stop %s: %w", name, err))
			r.log.Error("Component stop failed", logger.Fields("component", name, logger.FieldError, err.Error()))
		} else {
			r.log.Info("Component stopped", logger.Fields("component", name))
		}
		cancel()
		e.started = false
	}
	return errors.Join(errs...)
}

// Health collects every component's health into one report.
func (r *Registry) Health(ctx context.Context, service, version string) *observability.ServiceHealth {
	r.mu.Lock()
	components := make([]Component, 0, len(r.entries))
	for _, e := range r.entries {
		components = append(components, e.component)
	}
	r.mu.Unlock()

	sh := observability.NewServiceHealth(service, version)
	for _, c := range components {
		sh.AddComponent(c.Health(ctx))
	}
	return sh
}

// Get returns the component registered as name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.lookup[name]; ok {
		return e.component
	}
	return nil
}
