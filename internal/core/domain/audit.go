package domain

// Section names a pipeline stage that can degrade.
type Section string

// Pipeline sections, in execution order.
const (
	SectionExtraction Section = "extraction"
	SectionRetrieval  Section = "retrieval"
	SectionEvaluation Section = "evaluation"
	SectionSynthesis  Section = "synthesis"
	SectionRender     Section = "render"
)

// String returns the string representation.
func (s Section) String() string {
	return string(s)
}

// AuditRequest is the input to one audit run.
// At least one of FileContent or ReportText must be set; a file wins when both are.
type AuditRequest struct {
	// FileContent is the uploaded report, if any.
	FileContent []byte

	// FileName selects the extractor by extension.
	FileName string

	// ReportText is used verbatim when no file is supplied.
	ReportText string

	// OnLog, when set, receives each process log line as it is appended.
	OnLog func(line string)
}

// HasFile reports whether a file upload was supplied.
func (r AuditRequest) HasFile() bool {
	return len(r.FileContent) > 0
}

// Empty reports whether the request carries neither a file nor text.
func (r AuditRequest) Empty() bool {
	return !r.HasFile() && r.ReportText == ""
}

// AuditResult is the root aggregate of one audit run.
// It is built once per request and never persisted.
type AuditResult struct {
	// ID identifies the run in logs.
	ID string `json:"id"`

	// ProcessLogs are human-readable progress lines, in order.
	ProcessLogs []string `json:"process_logs"`

	// EvaluationTable holds one record per criterion, in model order.
	EvaluationTable []EvaluationRecord `json:"evaluation_table"`

	// Synthesis holds the averages and narrative.
	Synthesis SynthesisResult `json:"synthesis"`

	// RadarChartData is the chart reshape of the averages.
	RadarChartData ChartData `json:"radar_chart_data"`

	// RetrievedGuidance is the retrieval context text.
	RetrievedGuidance string `json:"retrieved_guidance"`

	// RetrievedCitations are the retrieval citations.
	RetrievedCitations []Citation `json:"retrieved_citations"`

	// PDFBase64 is the rendered report; empty when rendering failed.
	PDFBase64 string `json:"pdf_b64"`

	// Degraded lists sections whose output is a placeholder.
	Degraded []Section `json:"degraded_sections"`

	// Coverage reconciles the evaluation table with the catalogue.
	Coverage Coverage `json:"coverage"`
}

// IsDegraded reports whether the given section produced a placeholder.
func (r *AuditResult) IsDegraded(s Section) bool {
	for _, d := range r.Degraded {
		if d == s {
			return true
		}
	}
	return false
}
