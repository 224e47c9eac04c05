package selection

import (
	"slices"
	"sync"
)

// Registry maps content kinds to strategies. Each kind has at most one
// strategy; Kinds reports them in registration order.
type Registry struct {
	mu     sync.RWMutex
	byKind map[string]Strategy
	order  []string
}

// NewRegistry creates a registry with the given strategies.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{byKind: make(map[string]Strategy)}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// Register adds or replaces the strategy for its kind. A replaced kind
// keeps its original position.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKind[s.Kind()]; !ok {
		r.order = append(r.order, s.Kind())
	}
	r.byKind[s.Kind()] = s
}

// Unregister removes the strategy for kind.
func (r *Registry) Unregister(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byKind, kind)
	r.order = slices.DeleteFunc(r.order, func(k string) bool { return k == kind })
}

// Get returns the strategy for kind.
func (r *Registry) Get(kind string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byKind[kind]
	return s, ok
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}
