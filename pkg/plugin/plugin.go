// Package plugin loads named bundles of predicates into an
// assertion manager.
package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"digital.vasic.assertions/pkg/assertion"
)

// Registrar is the part of an assertion manager a plugin writes
// predicates into. *assertion.Manager satisfies it.
type Registrar interface {
	AddToInstance(p assertion.Predicate, name string, override bool) error
	Has(name string) bool
}

// Plugin contributes predicates to a Registrar.
type Plugin interface {
	// Name returns the plugin's unique name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
	// Init registers the plugin's predicates through ctx.
	Init(ctx *PluginContext) error
}

// PluginContext carries the target registrar and loader settings
// into Init.
type PluginContext struct {
	Predicates Registrar
	// Override replaces predicates that are already registered.
	Override   bool
	// Config holds per-plugin settings keyed by plugin name.
	Config     map[string]interface{}
}

// Register adds p to the context's registrar.
func (c *PluginContext) Register(p assertion.Predicate, name string) error {
	if c == nil {
		return errNoRegistrar
	}
	return c.register(p, name, c.Override)
}

func (c *PluginContext) register(p assertion.Predicate, name string, override bool) error {
	if c == nil || c.Predicates == nil {
		return errNoRegistrar
	}
	return c.Predicates.AddToInstance(p, name, override)
}

// Settings returns the Config entry for the named plugin, or nil.
func (c *PluginContext) Settings(plugin string) (map[string]interface{}, error) {
	if c == nil || c.Config == nil {
		return nil, nil
	}
	raw, ok := c.Config[plugin]
	if !ok || raw == nil {
		return nil, nil
	}
	settings, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("plugin %q: settings must be a map, got %T", plugin, raw)
	}
	return settings, nil
}

var errNoRegistrar = errors.New("plugin context has no predicate registrar")

// Registry manages plugin registration and initialization.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	loaded  map[string]bool
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		loaded:  make(map[string]bool),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	return nil
}

// Get retrieves a registered plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// InitAll initializes, in name order, every plugin that has not
// been loaded yet.
func (r *Registry) InitAll(ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.sortedLocked() {
		if r.loaded[name] {
			continue
		}
		if err := r.plugins[name].Init(ctx); err != nil {
			return fmt.Errorf("init plugin %q: %w", name, err)
		}
		r.loaded[name] = true
	}
	return nil
}

// Init initializes a specific plugin by name.
func (r *Registry) Init(name string, ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plugins[name]
	if !ok {
		return fmt.Errorf("plugin %q not found", name)
	}
	if r.loaded[name] {
		return nil
	}
	if err := p.Init(ctx); err != nil {
		return fmt.Errorf("init plugin %q: %w", name, err)
	}
	r.loaded[name] = true
	return nil
}

// List returns all registered plugin names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked()
}

func (r *Registry) sortedLocked() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLoaded checks if a plugin has been initialized.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
