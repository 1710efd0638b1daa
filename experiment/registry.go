package experiment

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownHasher is returned by Lookup for names that were never
	// registered.
	ErrUnknownHasher = errors.New("unknown hasher")

	// ErrDuplicateHasher is returned by Register for a name that is already
	// taken.
	ErrDuplicateHasher = errors.New("duplicate hasher")
)

// DefaultNoiseSeed seeds the Noise hasher of the default registry so that
// reports are reproducible.
const DefaultNoiseSeed uint64 = 0x5eed

// Registry maps hasher names to constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]func() Hasher
}

// NewRegistry returns a registry holding the built-in hashers.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[string]func() Hasher)}
	for _, ctor := range []func() Hasher{
		FNV1A32,
		FNV1A64,
		Murmur3,
		Terribad,
		Const,
		Runtime,
		func() Hasher { return Noise(DefaultNoiseSeed) },
	} {
		r.ctors[ctor().Name()] = ctor
	}
	return r
}

// Register adds a constructor under name.
func (r *Registry) Register(name string, ctor func() Hasher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ctors[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHasher, name)
	}
	r.ctors[name] = ctor
	return nil
}

// Lookup constructs the hasher registered under name.
func (r *Registry) Lookup(name string) (Hasher, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownHasher, name, r.Names())
	}
	return ctor(), nil
}

// LookupAll constructs the hashers registered under names, in order.
func (r *Registry) LookupAll(names ...string) ([]Hasher, error) {
	hashers := make([]Hasher, 0, len(names))
	for _, name := range names {
		h, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		hashers = append(hashers, h)
	}
	return hashers, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All constructs every registered hasher, sorted by name.
func (r *Registry) All() []Hasher {
	names := r.Names()
	hashers := make([]Hasher, 0, len(names))
	for _, name := range names {
		h, _ := r.Lookup(name)
		hashers = append(hashers, h)
	}
	return hashers
}

var defaultRegistry = NewRegistry()

// Lookup constructs the built-in hasher called name.
func Lookup(name string) (Hasher, error) {
	return defaultRegistry.Lookup(name)
}

// Default returns one of every built-in hasher, sorted by name.
func Default() []Hasher {
	return defaultRegistry.All()
}

// BuiltinNames returns the names of the built-in hashers.
func BuiltinNames() []string {
	return defaultRegistry.Names()
}
