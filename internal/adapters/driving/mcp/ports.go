package mcp

import (
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driving"
)

// Ports aggregates the ports required by the MCP server.
type Ports struct {
	// Audit runs the audit pipeline.
	Audit driving.AuditService

	// Prompts exposes the prompt templates as resources. Optional.
	Prompts driven.PromptStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Audit == nil {
		return ErrMissingAuditService
	}
	return nil
}
