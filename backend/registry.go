package backend

import (
	"slices"
	"sync"
)

// Factory creates a new engine instance.
type Factory func() Engine

// registry holds registered engines.
var (
	registryMu sync.RWMutex
	engines    = make(map[string]Factory)
	// Priority order for engine selection (first available wins).
	enginePriority = []string{EngineParallel, EngineSerial}
)

// Register registers an engine factory with the given name.
// If an engine with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	engines[name] = factory
}

// Unregister removes an engine from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(engines, name)
}

// Available returns the registered engine names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if an engine with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := engines[name]
	return ok
}

// Get returns an engine instance by name.
// Returns nil if the engine is not registered.
func Get(name string) Engine {
	registryMu.RLock()
	factory, ok := engines[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available engine based on priority.
// Priority order: parallel > serial, then any other registered engine.
// Returns nil if no engines are registered.
func Default() Engine {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range enginePriority {
		if factory, ok := engines[name]; ok {
			if e := factory(); e != nil {
				return e
			}
		}
	}

	// Fallback: first available in name order.
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if e := engines[name](); e != nil {
			return e
		}
	}
	return nil
}

// MustDefault returns the default engine or panics.
func MustDefault() Engine {
	e := Default()
	if e == nil {
		panic("backend: no engine available")
	}
	return e
}

// Lookup returns the named engine, or ErrEngineNotAvailable.
func Lookup(name string) (Engine, error) {
	e := Get(name)
	if e == nil {
		return nil, ErrEngineNotAvailable
	}
	return e, nil
}
