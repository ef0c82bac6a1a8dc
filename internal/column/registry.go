package column

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownType is returned by Resolve for a name with no registered DType.
var ErrUnknownType = errors.New("unknown column type")

// Registry maps logical type names to their DType.
// Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	dtypes map[string]DType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dtypes: make(map[string]DType)}
}

// Register adds dt under dt.Name(). Registering a second type under the same
// name is an error; registering the same DType again is a no-op.
func (r *Registry) Register(dt DType) error {
	if dt == nil {
		return fmt.Errorf("register: nil dtype")
	}
	name := dt.Name()
	if name == "" {
		return fmt.Errorf("register: dtype has empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.dtypes[name]; ok {
		if existing == dt {
			return nil
		}
		return fmt.Errorf("register: dtype %q already registered", name)
	}
	r.dtypes[name] = dt
	return nil
}

// Lookup returns the DType registered under name.
func (r *Registry) Lookup(name string) (DType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dt, ok := r.dtypes[name]
	return dt, ok
}

// Resolve is Lookup for callers holding a persisted type name. The error
// wraps ErrUnknownType.
func (r *Registry) Resolve(name string) (DType, error) {
	dt, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
	}
	return dt, nil
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.dtypes))
	for name := range r.dtypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
