package driving

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// QueryOptions configures a query.
type QueryOptions struct {
	// TopK is the number of evidence items to retrieve. Zero uses the configured default.
	TopK int

	// Debug attaches the ranked evidence to the result.
	Debug bool
}

// RetrievalService ranks corpus chunks against a query.
type RetrievalService interface {
	// Retrieve returns at most topK evidence items, best first.
	// An empty corpus yields an empty slice and no error.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.EvidenceItem, error)
}

// QueryService answers queries with evidence-grounded results.
type QueryService interface {
	// Query always returns a well-formed result. Failures are reported
	// through an error status; the error return is reserved for
	// cancellation of ctx.
	Query(ctx context.Context, text string, opts QueryOptions) (*domain.GenerationResult, error)
}
