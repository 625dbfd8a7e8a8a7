package driven

import (
	"context"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// DocumentRenderer lays out an audit result as a paginated document.
type DocumentRenderer interface {
	// Render returns the document bytes for result.
	Render(ctx context.Context, result *domain.AuditResult) ([]byte, error)

	// ContentType returns the MIME type of the rendered bytes.
	ContentType() string
}
