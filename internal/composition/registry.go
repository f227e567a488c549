package composition

import (
	"fmt"
	"sync"
)

// Registry holds compositions by id in registration order
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*Composition
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Composition)}
}

// Register validates c and adds it
func (r *Registry) Register(c *Composition) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

// MustRegister is Register for the built-in catalog
func (r *Registry) MustRegister(cs ...*Composition) {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Get returns the composition with id
func (r *Registry) Get(id string) (*Composition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

// List returns all compositions in registration order
func (r *Registry) List() []*Composition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Composition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry holding the built-in catalog
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.MustRegister(Catalog()...)
	})
	return defaultRegistry
}
