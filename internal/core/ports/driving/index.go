package driving

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// IndexService owns the term index over the corpus.
type IndexService interface {
	// Build rebuilds the index from the stored corpus and persists it.
	Build(ctx context.Context) (*domain.IndexStats, error)

	// Invalidate drops the in-memory index and its persisted artifacts.
	Invalidate(ctx context.Context) error

	// Status reports the corpus and index state without building.
	Status(ctx context.Context) (*domain.IndexStats, error)
}
