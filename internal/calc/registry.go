package calc

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownCalculator indicates a lookup for an id that was never
	// registered. This is an integration bug, not a data-quality problem.
	ErrUnknownCalculator = errors.New("unknown calculator")

	// ErrDuplicateRegistration indicates two calculators claimed the same
	// id. Silent overwrite would let a later load shadow the real formula,
	// so registration fails loudly instead.
	ErrDuplicateRegistration = errors.New("duplicate calculator registration")
)

// Registry maps calculator ids to their definitions. It is populated once
// during startup and read-only afterward; the mutex guards concurrent
// registration from parallel package initializers.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry. Construct one per process (or per
// test) and hand it to whatever loads the calculator library.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register inserts a definition, rejecting duplicate ids and definitions
// without a run function.
func (r *Registry) Register(def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("register: id is required")
	}
	if def.Run == nil {
		return fmt.Errorf("register %q: run function is required", def.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("register %q: %w", def.ID, ErrDuplicateRegistration)
	}
	r.defs[def.ID] = def
	return nil
}

// MustRegister is Register for load-time wiring, where a failure means the
// binary is misassembled and starting up would mask a formula.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition for id.
func (r *Registry) Lookup(id string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownCalculator, id)
	}
	return def, nil
}

// IDs returns all registered calculator ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered calculators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
