package platform

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Provider bundles the host backends for one source of screen content.
type Provider struct {
	Source   SnapshotSource
	Scroller Scroller
}

var (
	// ErrUnsupported is returned when no backend is registered under a name.
	ErrUnsupported = errors.New("backend not supported")
	// ErrNoWindow means the host has no readable window right now.
	ErrNoWindow = errors.New("no accessible window")
	// ErrEndOfHistory means the surface is already at its oldest content.
	ErrEndOfHistory = errors.New("already at the start of history")
	// ErrScrollUnsupported means the host cannot dispatch scroll gestures.
	ErrScrollUnsupported = errors.New("scroll gestures not supported")
)

// OpenFunc opens a backend for the given target (a file path, a device
// serial, ...). Backends register one via Register from an init function.
type OpenFunc func(target string) (*Provider, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]OpenFunc{}
)

// Register makes a backend available under name. Registering the same
// name twice replaces the earlier backend.
func Register(name string, open OpenFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = open
}

// Open returns a Provider from the backend registered under name.
func Open(name, target string) (*Provider, error) {
	registryMu.RLock()
	open, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnsupported, name, Backends())
	}
	return open(target)
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
