package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("retrieval.top_k", 7))
	require.NoError(t, store.Set("retrieval.alpha", 0.65))
	require.NoError(t, store.Set("debug.enabled", true))
	require.NoError(t, store.Set("ingest.extensions", []string{".md", ".pdf"}))

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, 7, store.GetInt("retrieval.top_k"))
	assert.InDelta(t, 0.65, store.GetFloat("retrieval.alpha"), 1e-9)
	assert.True(t, store.GetBool("debug.enabled"))
	assert.Equal(t, []string{".md", ".pdf"}, store.GetStringSlice("ingest.extensions"))

	t.Run("wrong types return zero values", func(t *testing.T) {
		assert.Equal(t, "", store.GetString("retrieval.top_k"))
		assert.Equal(t, 0, store.GetInt("llm.provider"))
		assert.Zero(t, store.GetFloat("llm.provider"))
		assert.False(t, store.GetBool("llm.provider"))
		assert.Nil(t, store.GetStringSlice("llm.provider"))
	})

	t.Run("missing keys", func(t *testing.T) {
		_, ok := store.Get("nope")
		assert.False(t, ok)
		assert.Equal(t, "", store.GetString("nope"))
	})

	t.Run("integers read as floats", func(t *testing.T) {
		assert.InDelta(t, 7.0, store.GetFloat("retrieval.top_k"), 1e-9)
	})
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("retrieval.top_k", 3))
	require.NoError(t, store.Set("retrieval.alpha", 0.5))
	require.NoError(t, store.Set("gate.threshold", 0.25))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[retrieval]")
	assert.Contains(t, string(data), "[gate]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.GetInt("retrieval.top_k"))
	assert.InDelta(t, 0.5, reloaded.GetFloat("retrieval.alpha"), 1e-9)
	assert.InDelta(t, 0.25, reloaded.GetFloat("gate.threshold"), 1e-9)
	assert.Equal(t, []string{"gate.threshold", "retrieval.alpha", "retrieval.top_k"}, reloaded.Keys())
}

func TestConfigStore_HandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[chunking]
strategy = "overlap"
chunk_size = 400

[llm]
provider = "openai"
base_url = "https://api.groq.com/openai/v1"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "overlap", store.GetString("chunking.strategy"))
	assert.Equal(t, 400, store.GetInt("chunking.chunk_size"))
	assert.Equal(t, "https://api.groq.com/openai/v1", store.GetString("llm.base_url"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[broken"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("llm.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{"a.b": 1, "a.c": "x", "d": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": 1, "c": "x"},
		"d": true,
	}, nested)

	_, err = nestMap(map[string]any{"llm": "x", "llm.model": "y"})
	assert.Error(t, err)

	assert.Equal(t, map[string]any{"a.b": 1, "d": true},
		flattenMap(map[string]any{"a": map[string]any{"b": 1}, "d": true}, ""))
}
