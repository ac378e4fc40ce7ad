package mcp

import (
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Query answers page, verse and similarity queries.
	Query driving.QueryService

	// Corpus reloads the snapshot. Optional; without it the reload tool
	// is not registered.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
