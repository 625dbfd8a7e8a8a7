package domain

import (
	"path/filepath"
	"strings"
)

// RawDocument is an uploaded report before text extraction.
type RawDocument struct {
	// FileName is the client-supplied name; only its extension is significant.
	FileName string

	// Content is the raw bytes.
	Content []byte
}

// Extension returns the lower-cased file extension including the dot.
func (d RawDocument) Extension() string {
	return strings.ToLower(filepath.Ext(d.FileName))
}
