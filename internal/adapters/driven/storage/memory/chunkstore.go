package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore keeps the corpus in memory.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
	saves  int
}

// NewChunkStore creates a chunk store seeded with chunks.
func NewChunkStore(chunks ...domain.Chunk) *ChunkStore {
	return &ChunkStore{chunks: append([]domain.Chunk(nil), chunks...)}
}

// Save replaces the stored corpus.
func (s *ChunkStore) Save(ctx context.Context, chunks []domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append([]domain.Chunk(nil), chunks...)
	s.saves++
	return nil
}

// Load returns a copy of the stored corpus.
func (s *ChunkStore) Load(ctx context.Context) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Chunk{}, s.chunks...), nil
}

// Saves returns how many times Save succeeded.
func (s *ChunkStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
