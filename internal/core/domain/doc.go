// Package domain defines the core business entities for the disclosure auditor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Criterion: One of the 14 fixed TNFD disclosure recommendations
//   - EvaluationRecord: The model's verdict on one criterion
//   - RetrievalResult: Guidance context and citations from the search backend
//   - SynthesisResult: Category averages and the narrative summary
//   - AuditResult: The aggregate returned for one audit run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
