// Package csv extracts comma-separated files as a text table.
package csv

import (
	"bytes"
	"context"
	enccsv "encoding/csv"
	"fmt"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor handles CSV files.
type Extractor struct{}

// New creates a new CSV extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".csv"}
}

// Extract renders the file as a table whose header is the first record.
// Records may have differing field counts.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	r := enccsv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw.Content, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: parse csv: %v", domain.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: no columns to parse", domain.ErrInvalidInput)
	}
	return extractors.RenderTable(rows), nil
}
