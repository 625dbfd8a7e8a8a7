package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// DocumentExtractor turns an uploaded report into plain text.
type DocumentExtractor struct {
	registry driven.ExtractorRegistry
}

// NewDocumentExtractor creates an extractor backed by registry.
func NewDocumentExtractor(registry driven.ExtractorRegistry) *DocumentExtractor {
	return &DocumentExtractor{registry: registry}
}

// Extract returns the report text for content.
// On failure the returned text is a human-readable error message that the
// pipeline uses in place of the report, and the error is returned alongside.
func (e *DocumentExtractor) Extract(ctx context.Context, content []byte, fileName string) (text string, err error) {
	raw := &domain.RawDocument{FileName: fileName, Content: content}
	logger.Debug("Extracting %q (%d bytes, extension %q)", fileName, len(content), raw.Extension())

	if e.registry == nil {
		err = errors.New("no extractors configured")
		return parseErrorText(err), err
	}

	// Third-party parsers may panic on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract %s: panic: %v", fileName, r)
			text = parseErrorText(err)
		}
	}()

	text, err = e.registry.Extract(ctx, raw)
	if errors.Is(err, domain.ErrUnsupportedType) {
		logger.Warn("Unsupported file format: %q", raw.Extension())
		return "Unsupported file format: " + raw.Extension(), err
	}
	if err != nil {
		logger.Warn("Extraction failed for %q: %v", fileName, err)
		return parseErrorText(err), err
	}

	logger.Debug("Extracted %d characters", len(text))
	return text, nil
}

func parseErrorText(err error) string {
	return "An error occurred while parsing the file: " + err.Error()
}
