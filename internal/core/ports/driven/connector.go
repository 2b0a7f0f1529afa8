package driven

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// Connector discovers documents under an ingestion root.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the ingestion root identifier.
	SourceID() string

	// Capabilities returns what this connector supports.
	Capabilities() ConnectorCapabilities

	// FullSync fetches all documents from the source.
	// Returns channels for documents and errors. Both are closed when
	// discovery finishes or the context is cancelled.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch listens for real-time changes.
	// Only available if SupportsWatch is true.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorCapabilities describes what a connector supports.
type ConnectorCapabilities struct {
	// SupportsWatch indicates the connector can push real-time events.
	SupportsWatch bool

	// SupportsBinary indicates the connector handles binary content.
	SupportsBinary bool
}
