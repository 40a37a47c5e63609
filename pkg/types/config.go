package types

import "errors"

// Config holds backend selection and parameters for a KV backend Attach and
// for the topic store's write mode.
type Config struct {
	Backend      string `json:"backend" yaml:"backend"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	SyncStrategy string `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Sync strategies control when the topic store writes its snapshot.
const (
	SyncAsync     = "async"     // fire-and-forget background write (default)
	SyncImmediate = "immediate" // write inside the mutating call
	SyncOnClose   = "on_close"  // write once when the store is closed
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendFile:   true,
	BackendMemory: true,
}

var knownSyncStrategies = map[string]bool{
	SyncAsync:     true,
	SyncImmediate: true,
	SyncOnClose:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty SyncStrategy is valid and means
// SyncAsync.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.SyncStrategy != "" && !ValidSyncStrategy(c.SyncStrategy) {
		return ErrSyncStrategyUnknown
	}
	return nil
}

// ValidSyncStrategy reports whether strategy names a known sync strategy.
func ValidSyncStrategy(strategy string) bool {
	return knownSyncStrategies[strategy]
}

// GetSyncStrategy returns the effective sync strategy, defaulting to SyncAsync.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncAsync
	}
	return c.SyncStrategy
}
