package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

func TestChunkStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewChunkStore()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, s.Save(ctx, []domain.Chunk{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, s.Save(ctx, []domain.Chunk{{ID: "c"}}))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, 2, s.Saves())

	got[0].ID = "mutated"
	again, _ := s.Load(ctx)
	assert.Equal(t, "c", again[0].ID)
}

func TestChunkStore_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewChunkStore(domain.Chunk{ID: "a"})
	assert.Error(t, s.Save(ctx, nil))
	_, err := s.Load(ctx)
	assert.Error(t, err)
}

func TestIndexStore_Lockstep(t *testing.T) {
	ctx := context.Background()
	s := NewIndexStore()

	_, _, err := s.Load(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	model := &domain.TermModel{Backend: domain.IndexBackendTFIDF, CorpusSize: 1}
	matrix := &domain.WeightMatrix{Rows: []domain.SparseVector{{}}}
	require.NoError(t, s.Save(ctx, model, matrix))

	m, x, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, model, m)
	assert.Same(t, matrix, x)

	s.DropMatrix()
	_, _, err = s.Load(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "half-written artifacts must read as missing")

	require.NoError(t, s.Save(ctx, model, matrix))
	require.NoError(t, s.Clear(ctx))
	_, _, err = s.Load(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 2, s.Saves())
	assert.Equal(t, 4, s.Loads())
}
