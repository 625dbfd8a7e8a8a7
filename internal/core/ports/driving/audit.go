package driving

import (
	"context"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// AuditService runs audits for external actors (HTTP, MCP, CLI).
type AuditService interface {
	// RunAudit executes the full pipeline for one report.
	// Returns domain.ErrNoReport when the request has neither file nor text.
	// Backend failures do not produce an error; they degrade sections of the result.
	RunAudit(ctx context.Context, req domain.AuditRequest) (*domain.AuditResult, error)
}
