// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for an audit to produce real results:
//
//   - LLMService: Generative backend used for evaluation and synthesis
//   - Retriever: Managed search backend returning guidance and citations
//   - ExtractorRegistry: Selects the text extractor for an uploaded file
//   - DocumentRenderer: Produces the PDF report
//   - PromptStore: Evaluation and synthesis prompt templates
//
// # Optional Interfaces
//
// These can be nil:
//
//   - AuditMetrics: Run duration and degraded section counters
//   - ConfigStore: Persistent settings; defaults and environment are used without it
//
// A failing required backend never aborts an audit. Services substitute a
// placeholder and mark the section as degraded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
