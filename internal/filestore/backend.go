package filestore

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/mesh-intelligence/topics/pkg/types"
)

// fileExt is appended to the key to form the file name.
const fileExt = ".kv"

// validKey limits keys to names that are safe as file names on every
// platform.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend with one file per key.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
}

// NewBackend creates a file backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates DataDir if needed. Returns ErrAlreadyAttached if already
// attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	b.dataDir = dataDir
	b.attached = true
	return nil
}

// Detach marks the backend detached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = false
	return nil
}

// Get reads the file for key. A missing file means the key was never set.
func (b *Backend) Get(key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	path, err := b.pathLocked(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file for key.
func (b *Backend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	path, err := b.pathLocked(key)
	if err != nil {
		return err
	}

	return writeAtomic(path, func(w *bufio.Writer) error {
		if _, err := w.WriteString(value); err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
		return nil
	})
}

// pathLocked validates key and returns its file path. The caller must hold
// b.mu so Detach cannot run between the check and the file access.
func (b *Backend) pathLocked(key string) (string, error) {
	if key == "" || !validKey.MatchString(key) {
		return "", types.ErrInvalidKey
	}
	if !b.attached {
		return "", types.ErrDetached
	}
	return filepath.Join(b.dataDir, key+fileExt), nil
}
