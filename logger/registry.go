package logger

import (
	"sync"
)

// Component names used across mallkit.
const (
	ComponentRequest    = "request"
	ComponentTransport  = "httpclient"
	ComponentCredential = "credential"
	ComponentEffect     = "effect"
	ComponentMock       = "mockserver"
	ComponentAPI        = "api"
	ComponentStorefront = "storefront"
	ComponentConfig     = "config"
)

var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. Unregistered names get the global logger
// tagged with the requested component.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults seeds the registry with the mallkit component loggers
// derived from the current global logger. Call it after Init.
func RegisterDefaults() {
	for _, name := range []string{
		ComponentRequest, ComponentTransport, ComponentCredential, ComponentEffect, ComponentMock,
		ComponentAPI, ComponentStorefront, ComponentConfig,
	} {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
