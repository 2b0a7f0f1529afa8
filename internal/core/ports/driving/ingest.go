package driving

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// IngestService builds the corpus from files on disk.
type IngestService interface {
	// Ingest replaces the corpus with the chunks extracted from path
	// and invalidates the index. Zero chunks is not an error.
	Ingest(ctx context.Context, path string) (*domain.IngestReport, error)

	// Watch re-ingests path whenever files under it change, until ctx is done.
	// Each completed run is passed to onIngest.
	Watch(ctx context.Context, path string, onIngest func(*domain.IngestReport, error)) error
}
