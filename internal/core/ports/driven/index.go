package driven

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// Indexer fits a term index over the corpus.
type Indexer interface {
	// Backend names the index implementation.
	Backend() domain.IndexBackend

	// Build fits the index over texts. Row i of the matrix corresponds to texts[i].
	Build(ctx context.Context, texts []string) (*domain.TermModel, *domain.WeightMatrix, error)

	// Open wraps persisted artifacts in a queryable index.
	Open(model *domain.TermModel, matrix *domain.WeightMatrix) (Index, error)
}

// Index scores queries against every corpus row.
type Index interface {
	// Backend names the index implementation.
	Backend() domain.IndexBackend

	// Len returns the number of indexed rows.
	Len() int

	// Score returns one raw relevance score per row, in corpus order.
	// TF-IDF returns cosine similarity; BM25 returns unnormalised BM25.
	Score(query string) []float64
}
