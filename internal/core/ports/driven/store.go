package driven

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// ChunkStore persists the corpus as a unit.
type ChunkStore interface {
	// Save replaces the stored corpus with chunks.
	Save(ctx context.Context, chunks []domain.Chunk) error

	// Load returns the stored corpus in order.
	// A missing corpus yields an empty slice and no error.
	Load(ctx context.Context) ([]domain.Chunk, error)
}

// IndexStore persists the two index artifacts in lockstep.
type IndexStore interface {
	// Save writes both artifacts. Either both are replaced or neither is.
	Save(ctx context.Context, model *domain.TermModel, matrix *domain.WeightMatrix) error

	// Load returns both artifacts. If either is missing it returns
	// domain.ErrNotFound and the index must be rebuilt.
	Load(ctx context.Context) (*domain.TermModel, *domain.WeightMatrix, error)

	// Clear deletes both artifacts.
	Clear(ctx context.Context) error
}
