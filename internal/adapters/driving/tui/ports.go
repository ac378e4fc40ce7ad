// Package tui provides an interactive page reader for the terminal.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the reader.
type Ports struct {
	// Query answers page, verse and similarity queries.
	Query driving.QueryService

	// Settings supplies the default similarity limit. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
