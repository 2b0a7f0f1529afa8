// Package tui provides an interactive terminal user interface for casegen.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Query generates use-cases. Required.
	Query driving.QueryService

	// Index reports and rebuilds the term index.
	Index driving.IndexService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	query driving.QueryService,
	index driving.IndexService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Query:    query,
		Index:    index,
		Settings: settings,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
