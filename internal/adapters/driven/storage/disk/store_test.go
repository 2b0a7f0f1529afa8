package disk

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// setupTestStore creates a store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "1", Source: "docs/a.md", Text: "first chunk", Ordinal: 0, Meta: domain.ChunkMeta{Filename: "a.md", Index: 0}},
		{ID: "2", Source: "docs/a.md", Text: "second chunk", Ordinal: 1, Meta: domain.ChunkMeta{Filename: "a.md", Index: 1}},
	}
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	assert.DirExists(t, dir)
	assert.NoError(t, store.Close())
}

func TestChunkStore_MissingFileIsEmpty(t *testing.T) {
	chunks, err := setupTestStore(t).ChunkStore().Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)
}

func TestChunkStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	cs := store.ChunkStore()

	require.NoError(t, cs.Save(ctx, testChunks()))
	got, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testChunks(), got)

	t.Run("file is a JSON array with metadata", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(store.Dir(), ChunksFile))
		require.NoError(t, err)
		var raw []map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Len(t, raw, 2)
		assert.Equal(t, "docs/a.md", raw[0]["source"])
		assert.Equal(t, "a.md", raw[0]["meta"].(map[string]any)["filename"])
	})

	t.Run("save overwrites wholesale", func(t *testing.T) {
		require.NoError(t, cs.Save(ctx, testChunks()[:1]))
		got, err := cs.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("nil saves empty array", func(t *testing.T) {
		require.NoError(t, cs.Save(ctx, nil))
		data, err := os.ReadFile(filepath.Join(store.Dir(), ChunksFile))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}

func TestChunkStore_CorruptFile(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), ChunksFile), []byte("{bad"), 0600))
	_, err := store.ChunkStore().Load(context.Background())
	assert.Error(t, err)
}

func TestIndexStore_Lockstep(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	is := store.IndexStore()

	_, _, err := is.Load(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	model := &domain.TermModel{
		Backend:    domain.IndexBackendTFIDF,
		Vocabulary: []string{"a", "b"},
		IDF:        []float64{1, 2},
		CorpusSize: 1,
		BuiltAt:    time.Now().UTC().Truncate(time.Second),
	}
	matrix := &domain.WeightMatrix{Rows: []domain.SparseVector{{Indices: []int{1}, Values: []float64{1}}}}
	require.NoError(t, is.Save(ctx, model, matrix))

	m, x, err := is.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Vocabulary, m.Vocabulary)
	assert.Equal(t, matrix.Rows, x.Rows)

	t.Run("one artifact missing reads as no index", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(store.Dir(), IndexDir, MatrixFile)))
		_, _, err := is.Load(ctx)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("save replaces a half-written index", func(t *testing.T) {
		require.NoError(t, is.Save(ctx, model, matrix))
		_, _, err := is.Load(ctx)
		assert.NoError(t, err)
	})

	t.Run("no staging directories left behind", func(t *testing.T) {
		entries, err := os.ReadDir(store.Dir())
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp-")
		}
	})

	t.Run("clear removes both", func(t *testing.T) {
		require.NoError(t, is.Clear(ctx))
		_, _, err := is.Load(ctx)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoDirExists(t, filepath.Join(store.Dir(), IndexDir))
	})
}
