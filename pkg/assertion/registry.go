package assertion

import (
	"fmt"
	"maps"
	"sort"
	"sync"
)

// registry maps predicate names to predicates. It is safe for
// concurrent use.
type registry struct {
	mu         sync.RWMutex
	predicates map[string]Predicate
}

func newRegistry() *registry {
	return &registry{
		predicates: make(map[string]Predicate),
	}
}

// register adds p under name. Returns an error wrapping ErrUsage
// if the name is taken and override is false.
func (r *registry) register(
	name string,
	p Predicate,
	override bool,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.predicates[name]; exists && !override {
		return fmt.Errorf(
			"%w: predicate already registered: %s",
			ErrUsage, name,
		)
	}

	r.predicates[name] = p
	return nil
}

// get retrieves a predicate by name.
func (r *registry) get(name string) (Predicate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.predicates[name]
	if !exists {
		return Predicate{}, fmt.Errorf(
			"%w: predicate not found: %s", ErrUsage, name,
		)
	}
	return p, nil
}

// has reports whether name is registered.
func (r *registry) has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.predicates[name]
	return exists
}

// names returns all registered names sorted.
func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// clone returns an independent registry with the same entries.
func (r *registry) clone() *registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &registry{predicates: maps.Clone(r.predicates)}
}
