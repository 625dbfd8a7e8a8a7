package driven

import (
	"context"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// Extractor converts one document format into plain text.
// Each extractor handles a fixed set of file extensions (e.g., ".pdf").
type Extractor interface {
	// SupportedExtensions returns the lower-cased extensions, including the dot.
	SupportedExtensions() []string

	// Extract returns the document text.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// ExtractorRegistry dispatches a document to the extractor for its extension.
type ExtractorRegistry interface {
	// Extract selects an extractor by extension and runs it.
	// Returns domain.ErrUnsupportedType when no extractor matches.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedExtensions returns every extension that can be extracted.
	SupportedExtensions() []string
}
