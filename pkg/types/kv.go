package types

import "errors"

// Storage keys. The whole topic collection is stored as one blob under
// TopicsKey; ThemeKey holds the light/dark preference.
const (
	TopicsKey = "topics"
	ThemeKey  = "theme"
)

// KV is the key-value persistence collaborator supplied by the host.
// Implementations only ever receive serialized snapshots, never live Topic
// values.
type KV interface {
	// Get returns the value stored under key. ok is false when the key was
	// never written; err reports a storage failure.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any prior value.
	Set(key, value string) error
}

// Backend is a KV with the attach/detach lifecycle used by the CLI.
type Backend interface {
	KV

	// Attach connects the backend described by config. Creates DataDir if
	// it does not exist. Returns ErrAlreadyAttached if called twice.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Get and Set return ErrDetached.
	Detach() error
}

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
	ErrInvalidKey      = errors.New("invalid key")
)
