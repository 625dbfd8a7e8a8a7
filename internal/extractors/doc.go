// Package extractors turns uploaded report files into plain text.
//
// Each subpackage handles one file format and implements driven.Extractor.
// Extractors are registered with a Registry at startup and selected by the
// lower-cased file extension.
package extractors
