package mcp

import (
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers use-case queries.
	Query driving.QueryService

	// Retrieval exposes ranked evidence.
	Retrieval driving.RetrievalService

	// Ingest rebuilds the corpus from files.
	Ingest driving.IngestService

	// Index builds and reports on the term index.
	Index driving.IndexService

	// Capabilities are the collaborators resolved at startup.
	Capabilities *domain.Capabilities
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// The remaining ports are optional; their tools report unavailability.
	return nil
}
