package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps the index artifacts in memory.
type IndexStore struct {
	mu     sync.RWMutex
	model  *domain.TermModel
	matrix *domain.WeightMatrix
	saves  int
	loads  int
}

// NewIndexStore creates an empty index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Save stores both artifacts.
func (s *IndexStore) Save(ctx context.Context, model *domain.TermModel, matrix *domain.WeightMatrix) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model, s.matrix = model, matrix
	s.saves++
	return nil
}

// Load returns both artifacts or domain.ErrNotFound if either is missing.
func (s *IndexStore) Load(ctx context.Context) (*domain.TermModel, *domain.WeightMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.model == nil || s.matrix == nil {
		return nil, nil, domain.ErrNotFound
	}
	return s.model, s.matrix, nil
}

// Clear deletes both artifacts.
func (s *IndexStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model, s.matrix = nil, nil
	return nil
}

// DropMatrix removes only the matrix artifact, leaving the store
// in the half-written state a crash could produce.
func (s *IndexStore) DropMatrix() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matrix = nil
}

// Saves returns how many times Save succeeded.
func (s *IndexStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Loads returns how many times Load was called.
func (s *IndexStore) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}
