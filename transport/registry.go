package transport

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-clouds/core"
)

// Settings are the transport options a service hands to Build.
type Settings struct {
	Timeout              time.Duration
	MaxResponseBodyBytes int64
	UserAgent            string
}

// ParseSettings reads the timeout, max_response_body_bytes and user_agent
// keys. Timeouts may be a time.Duration, whole seconds or a duration string.
func ParseSettings(config map[string]any) (Settings, error) {
	var settings Settings
	switch value := config["timeout"].(type) {
	case nil:
	case time.Duration:
		settings.Timeout = value
	case int:
		settings.Timeout = time.Duration(value) * time.Second
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return Settings{}, fmt.Errorf("transport: invalid timeout %q: %w", value, err)
		}
		settings.Timeout = parsed
	default:
		return Settings{}, fmt.Errorf("transport: unsupported timeout type %T", value)
	}

	switch value := config["max_response_body_bytes"].(type) {
	case nil:
	case int64:
		settings.MaxResponseBodyBytes = value
	case int:
		settings.MaxResponseBodyBytes = int64(value)
	default:
		return Settings{}, fmt.Errorf("transport: unsupported max_response_body_bytes type %T", value)
	}
	if settings.Timeout < 0 || settings.MaxResponseBodyBytes < 0 {
		return Settings{}, fmt.Errorf("transport: timeout and body limit must be >= 0")
	}

	if agent, ok := config["user_agent"].(string); ok {
		settings.UserAgent = strings.TrimSpace(agent)
	}
	return settings, nil
}

// Factory builds an adapter for one service.
type Factory func(settings Settings) (core.TransportAdapter, error)

// Registry resolves a transport kind to an adapter. It satisfies
// core.TransportResolver.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// NewDefaultRegistry knows the REST adapter.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.Register(KindREST, func(settings Settings) (core.TransportAdapter, error) {
		return NewRESTAdapterWithSettings(settings), nil
	})
	return registry
}

func (r *Registry) Register(kind string, factory Factory) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return fmt.Errorf("transport: kind is required")
	}
	if factory == nil {
		return fmt.Errorf("transport: factory for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("transport: kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// Pin registers adapter under its own kind. Build returns it unchanged,
// ignoring settings, which suits scripted adapters in tests.
func (r *Registry) Pin(adapter core.TransportAdapter) error {
	if adapter == nil {
		return fmt.Errorf("transport: adapter is nil")
	}
	return r.Register(adapter.Kind(), func(Settings) (core.TransportAdapter, error) {
		return adapter, nil
	})
}

func (r *Registry) Build(kind string, config map[string]any) (core.TransportAdapter, error) {
	if r == nil {
		return nil, fmt.Errorf("transport: registry is nil")
	}
	key := strings.ToLower(strings.TrimSpace(kind))
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("transport: kind %q is not registered", kind)
	}

	settings, err := ParseSettings(config)
	if err != nil {
		return nil, err
	}
	adapter, err := factory(settings)
	if err != nil {
		return nil, err
	}
	if adapter == nil {
		return nil, fmt.Errorf("transport: factory for %q returned no adapter", key)
	}
	return adapter, nil
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

var _ core.TransportResolver = (*Registry)(nil)
