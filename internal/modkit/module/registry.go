package module

import (
	"fmt"
	"sync"
)

// Registry records the port sets of mounted modules by name
type Registry struct {
	mu    sync.RWMutex
	ports map[string]any
	order []string
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{ports: map[string]any{}} }

// Register stores m's ports; registering a name twice is a wiring bug and panics
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ports[m.Name()]; dup {
		panic(fmt.Sprintf("module: %q registered twice", m.Name()))
	}
	r.ports[m.Name()] = m.Ports()
	r.order = append(r.order, m.Name())
}

// Names lists registered modules in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Lookup fetches the port set registered under name as T
func Lookup[T any](r *Registry, name string) (T, bool) {
	r.mu.RLock()
	v, ok := r.ports[name]
	r.mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}
