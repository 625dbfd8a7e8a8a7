// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// LogLine carries one process log line from a running audit.
type LogLine struct {
	Line string
}

// AuditCompleted carries the audit outcome back to the model.
type AuditCompleted struct {
	Result *domain.AuditResult
	Err    error
}
