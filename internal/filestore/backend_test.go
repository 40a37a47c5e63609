package filestore

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/topics/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendFile, DataDir: dir}))
	t.Cleanup(func() { _ = b.Detach() })
	return b, dir
}

func TestGetSet(t *testing.T) {
	b, dir := attachTemp(t)

	_, ok, err := b.Get(types.TopicsKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(types.TopicsKey, `[]`))
	require.NoError(t, b.Set(types.TopicsKey, `[{"id":"1"}]`))

	v, ok, err := b.Get(types.TopicsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	data, err := os.ReadFile(filepath.Join(dir, "topics.kv"))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(data))
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	b, dir := attachTemp(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Set(types.ThemeKey, "dark"))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "theme.kv", entries[0].Name())
}

func TestInvalidKeys(t *testing.T) {
	b, _ := attachTemp(t)
	for _, key := range []string{"", "../escape", "a/b", `a\b`, "with space"} {
		assert.ErrorIs(t, b.Set(key, "x"), types.ErrInvalidKey, "key %q", key)
		_, _, err := b.Get(key)
		assert.ErrorIs(t, err, types.ErrInvalidKey, "key %q", key)
	}
}

func TestDetach(t *testing.T) {
	b, _ := attachTemp(t)
	require.NoError(t, b.Set(types.ThemeKey, "light"))
	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())

	_, _, err := b.Get(types.ThemeKey)
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.Set(types.ThemeKey, "dark"), types.ErrDetached)
}

func TestNoWriteLandsAfterDetach(t *testing.T) {
	b, dir := attachTemp(t)
	require.NoError(t, b.Set(types.TopicsKey, "start"))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if err := b.Set(types.TopicsKey, strconv.Itoa(w)+"-"+strconv.Itoa(i)); err != nil {
					assert.ErrorIs(t, err, types.ErrDetached)
					return
				}
			}
		}(w)
	}

	require.NoError(t, b.Detach())
	atDetach, err := os.ReadFile(filepath.Join(dir, "topics.kv"))
	require.NoError(t, err)

	wg.Wait()
	afterWriters, err := os.ReadFile(filepath.Join(dir, "topics.kv"))
	require.NoError(t, err)
	assert.Equal(t, string(atDetach), string(afterWriters))
}

func TestAttachTwice(t *testing.T) {
	b, dir := attachTemp(t)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendFile, DataDir: dir}), types.ErrAlreadyAttached)
}

func TestAttachValidatesConfig(t *testing.T) {
	assert.ErrorIs(t, NewBackend().Attach(types.Config{}), types.ErrBackendEmpty)
}
