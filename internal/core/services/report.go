package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// ReportRenderer produces the transport-encoded report document.
type ReportRenderer struct {
	renderer driven.DocumentRenderer
}

// NewReportRenderer creates a report renderer over a document backend.
func NewReportRenderer(renderer driven.DocumentRenderer) *ReportRenderer {
	return &ReportRenderer{renderer: renderer}
}

// Render returns the base64 encoded document for result.
// Any failure yields an empty payload and the error.
func (r *ReportRenderer) Render(ctx context.Context, result *domain.AuditResult) (encoded string, err error) {
	if r.renderer == nil {
		return "", fmt.Errorf("%w: no renderer configured", domain.ErrRenderFailed)
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Warn("Report rendering panicked: %v", p)
			encoded, err = "", fmt.Errorf("%w: panic: %v", domain.ErrRenderFailed, p)
		}
	}()

	doc, err := r.renderer.Render(ctx, result)
	if err != nil {
		logger.Warn("Report rendering failed: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	if len(doc) == 0 {
		return "", fmt.Errorf("%w: empty document", domain.ErrRenderFailed)
	}

	logger.Debug("Rendered %s document: %d bytes", r.renderer.ContentType(), len(doc))
	return base64.StdEncoding.EncodeToString(doc), nil
}
