// Package tui renders audit progress and results in the terminal.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Audit runs the audit pipeline.
	Audit driving.AuditService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Audit == nil {
		return ErrMissingAuditService
	}
	return nil
}
