package driven

import (
	"time"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// AuditMetrics records observations about audit runs.
type AuditMetrics interface {
	// ObserveAudit records the duration of a completed run.
	ObserveAudit(d time.Duration, degraded bool)

	// IncDegraded counts a section that fell back to a placeholder.
	IncDegraded(section domain.Section)
}
