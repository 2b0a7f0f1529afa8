package driven

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// Chunker splits sanitised document text into passages.
// Implementations are selected by the chunking strategy setting.
type Chunker interface {
	// Name returns the strategy name.
	Name() string

	// Split returns the passages of text in order.
	// Text with no qualifying passage yields an empty slice.
	Split(text string) []string
}

// PostProcessor transforms a batch of chunks after chunking.
// PostProcessors are chained in a pipeline (quality filter, deduplication).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the chunks to keep, in order.
	Process(ctx context.Context, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the chunks through all processors in order.
	Process(ctx context.Context, chunks []domain.Chunk) ([]domain.Chunk, error)
}
