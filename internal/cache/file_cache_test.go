package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func newTestCache(t *testing.T) *FileCache[sample] {
	t.Helper()
	t.Setenv("ROOT_PATH", t.TempDir())
	return NewFileCache[sample]("test_cache")
}

func TestFileCacheRoundTrip(t *testing.T) {
	fc := newTestCache(t)
	key := fc.GenerateKey("lisbon", "downtown", "2024-08-30")

	_, ok := fc.Get(key)
	assert.False(t, ok)

	want := sample{Name: "zonal", Value: 31.5}
	require.NoError(t, fc.Set(key, want))

	got, ok := fc.Get(key)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFileCacheKeyIsDeterministic(t *testing.T) {
	fc := newTestCache(t)

	k1 := fc.GenerateKey("lisbon", 1, 2.5)
	k2 := fc.GenerateKey("lisbon", 1, 2.5)
	k3 := fc.GenerateKey("porto", 1, 2.5)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestFileCacheRejectsCorruptedEntry(t *testing.T) {
	fc := newTestCache(t)
	key := fc.GenerateKey("corrupt")
	require.NoError(t, fc.Set(key, sample{Name: "ok"}))

	cacheFile := filepath.Join(fc.cacheDir, key+".json")
	require.NoError(t, os.WriteFile(cacheFile, []byte(`{"data":{"name":"tampered"},"checksum":"bad"}`), 0644))

	_, ok := fc.Get(key)
	assert.False(t, ok)
}
