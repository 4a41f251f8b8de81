package blocks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownKind is returned when no factory is registered for a block kind.
var ErrUnknownKind = errors.New("unknown block kind")

// Factory builds a block from the keys of its [[block]] entry.
type Factory func(params map[string]any) (Block, error)

// Registry manages the available block kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Factory),
	}
}

// DefaultRegistry returns a registry holding the built-in kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("text", NewText)
	r.Register("time", NewTime)
	r.Register("command", NewCommand)
	r.Register("file", NewFile)
	r.Register("redis", NewRedis)
	return r
}

// Register adds a kind to the registry.
// If a kind with the same name exists, it is overwritten.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = f
}

// New looks up kind and builds a block from params.
func (r *Registry) New(kind string, params map[string]any) (Block, error) {
	r.mu.RLock()
	f, ok := r.kinds[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownKind, kind, strings.Join(r.Kinds(), ", "))
	}
	return f(params)
}

// Kinds lists the registered kinds in alphabetical order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
