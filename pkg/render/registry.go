package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned by Registry.Get for unregistered names.
var ErrUnknownRenderer = errors.New("render: renderer not found")

// Registry stores renderers by name so the dev server and CLI can pick an
// output format from configuration.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds renderers by their Name(). Duplicate or empty names stop
// registration at the offending renderer.
func (r *Registry) Register(renderers ...Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, renderer := range renderers {
		if renderer == nil {
			return fmt.Errorf("render: renderer is required")
		}
		name := renderer.Name()
		if name == "" {
			return fmt.Errorf("render: renderer name is required")
		}
		if _, exists := r.renderers[name]; exists {
			return fmt.Errorf("render: renderer %q already registered", name)
		}
		r.renderers[name] = renderer
	}
	return nil
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// Resolve returns the first registered renderer among names, skipping blanks
// and unknown entries. A request-level format can be listed ahead of the
// configured default.
func (r *Registry) Resolve(names ...string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		if renderer, ok := r.renderers[strings.TrimSpace(name)]; ok {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, names)
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}
