// Package memkv provides an in-memory KV backend. It backs the "memory"
// backend for throwaway sessions and serves as the test double for the
// topic store.
package memkv

import (
	"sync"

	"github.com/mesh-intelligence/topics/pkg/types"
)

var _ types.Backend = (*Backend)(nil)

// Backend is a map-backed types.Backend. A new Backend is usable without
// Attach; Detach makes it reject further access like the disk backends.
type Backend struct {
	mu       sync.RWMutex
	values   map[string]string
	detached bool
	sets     int
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{values: make(map[string]string)}
}

// NewWith returns a backend preloaded with values.
func NewWith(values map[string]string) *Backend {
	b := New()
	for k, v := range values {
		b.values[k] = v
	}
	return b
}

// Attach re-enables a detached backend. Config is only validated.
func (b *Backend) Attach(config types.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.detached {
		return types.ErrAlreadyAttached
	}
	b.detached = false
	return nil
}

// Detach stops the backend from serving requests. Values are kept so a
// later Attach sees them. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detached = true
	return nil
}

// Get returns the value stored under key.
func (b *Backend) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, types.ErrInvalidKey
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.detached {
		return "", false, types.ErrDetached
	}
	v, ok := b.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (b *Backend) Set(key, value string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detached {
		return types.ErrDetached
	}
	b.values[key] = value
	b.sets++
	return nil
}

// Sets returns how many successful Set calls the backend has served.
func (b *Backend) Sets() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sets
}
