package topics

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/topics/internal/memkv"
	"github.com/mesh-intelligence/topics/pkg/types"
)

var errDisk = errors.New("disk on fire")

// failingKV wraps a memkv backend and fails Get or Set on demand.
type failingKV struct {
	*memkv.Backend

	mu      sync.Mutex
	getErr  error
	setErr  error
	setTrys int
}

func newFailingKV() *failingKV {
	return &failingKV{Backend: memkv.New()}
}

func (f *failingKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Backend.Get(key)
}

func (f *failingKV) Set(key, value string) error {
	f.mu.Lock()
	f.setTrys++
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Backend.Set(key, value)
}

func (f *failingKV) attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setTrys
}

// openStore opens a store and registers Close with the test cleanup.
func openStore(t *testing.T, kv types.KV, opts ...Option) *Store {
	t.Helper()
	s, err := Open(kv, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// storedTopics decodes what the backend currently holds under TopicsKey.
func storedTopics(t *testing.T, kv types.KV) []types.Topic {
	t.Helper()
	v, ok, err := kv.Get(types.TopicsKey)
	require.NoError(t, err)
	require.True(t, ok, "expected a persisted snapshot")
	topics, err := DecodeSnapshot(v)
	require.NoError(t, err)
	return topics
}

// sequentialIDs returns an ID generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
