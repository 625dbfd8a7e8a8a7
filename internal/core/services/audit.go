package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driving"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// Ensure AuditService implements the interface.
var _ driving.AuditService = (*AuditService)(nil)

// AuditService runs the audit pipeline.
// It holds no per-request state and is safe for concurrent use.
type AuditService struct {
	extractor   *DocumentExtractor
	retriever   *GuidanceRetriever
	evaluator   *Evaluator
	synthesizer *Synthesizer
	reporter    *ReportRenderer
	metrics     driven.AuditMetrics
	query       string
}

// NewAuditService wires the pipeline steps.
// Any backend may be nil; the corresponding section is then always degraded.
func NewAuditService(
	extractors driven.ExtractorRegistry,
	retriever driven.Retriever,
	llm driven.LLMService,
	promptStore driven.PromptStore,
	renderer driven.DocumentRenderer,
) *AuditService {
	return &AuditService{
		extractor:   NewDocumentExtractor(extractors),
		retriever:   NewGuidanceRetriever(retriever),
		evaluator:   NewEvaluator(llm, promptStore),
		synthesizer: NewSynthesizer(llm, promptStore),
		reporter:    NewReportRenderer(renderer),
		query:       GuidanceQuery,
	}
}

// SetMetrics sets the optional metrics recorder.
func (s *AuditService) SetMetrics(metrics driven.AuditMetrics) {
	s.metrics = metrics
}

// run carries the state of a single audit.
type run struct {
	result *domain.AuditResult
	onLog  func(string)
}

func (r *run) log(line string) {
	r.result.ProcessLogs = append(r.result.ProcessLogs, line)
	logger.Info("[%s] %s", r.result.ID, line)
	if r.onLog != nil {
		r.onLog(line)
	}
}

func (r *run) degrade(section domain.Section, err error, metrics driven.AuditMetrics) {
	logger.Warn("[%s] %s degraded: %v", r.result.ID, section, err)
	r.result.Degraded = append(r.result.Degraded, section)
	if metrics != nil {
		metrics.IncDegraded(section)
	}
}

// RunAudit executes extraction, retrieval, evaluation, synthesis, chart
// building and rendering in that order. Only an empty request is an error.
func (s *AuditService) RunAudit(ctx context.Context, req domain.AuditRequest) (*domain.AuditResult, error) {
	if req.Empty() {
		return nil, domain.ErrNoReport
	}

	start := time.Now()
	r := &run{
		result: &domain.AuditResult{
			ID:          uuid.NewString(),
			ProcessLogs: []string{},
			Degraded:    []domain.Section{},
		},
		onLog: req.OnLog,
	}
	logger.Section("Audit " + r.result.ID)

	// Step 1: report source. A file wins over text.
	r.log("Step 1: Parsing the report...")
	reportText := req.ReportText
	if req.HasFile() {
		text, err := s.extractor.Extract(ctx, req.FileContent, req.FileName)
		if err != nil {
			r.degrade(domain.SectionExtraction, err, s.metrics)
		}
		reportText = text
	}
	r.log("Report parsing completed.")

	// Step 2: guidance retrieval with the fixed query.
	r.log("Step 2: Searching reference guidance...")
	guidance, err := s.retriever.Retrieve(ctx, s.query)
	if err != nil {
		r.degrade(domain.SectionRetrieval, err, s.metrics)
	}
	r.result.RetrievedGuidance = guidance.Context
	r.result.RetrievedCitations = guidance.Citations
	r.log("Reference guidance search completed.")

	// Step 3: evaluation.
	r.log("Step 3: Evaluating the 14 disclosure items with the LLM... (this may take a while)")
	records, err := s.evaluator.Evaluate(ctx, reportText, guidance)
	if err != nil {
		r.degrade(domain.SectionEvaluation, err, s.metrics)
	}
	r.result.EvaluationTable = records
	r.log("Evaluation of the 14 items completed.")

	if err == nil {
		r.result.Coverage = domain.CheckCoverage(records)
		if !r.result.Coverage.Complete() {
			r.log(coverageLine(r.result.Coverage))
		}
	}

	// Step 4: synthesis.
	r.log("Step 4: Aggregating scores and generating the summary comment...")
	synthesis, err := s.synthesizer.Synthesize(ctx, records)
	if err != nil {
		r.degrade(domain.SectionSynthesis, err, s.metrics)
	}
	r.result.Synthesis = synthesis
	r.log("Aggregation and summary comment completed.")

	// Step 5: chart data.
	r.log("Step 5: Building radar chart data...")
	r.result.RadarChartData = BuildChart(synthesis.AverageScores)
	r.log("Radar chart data completed.")

	// Step 6: rendered report.
	r.log("Step 6: Generating the PDF report...")
	pdf, err := s.reporter.Render(ctx, r.result)
	if err != nil {
		r.degrade(domain.SectionRender, err, s.metrics)
	}
	r.result.PDFBase64 = pdf
	r.log("PDF report generation completed.")

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveAudit(elapsed, len(r.result.Degraded) > 0)
	}
	logger.Info("[%s] Audit finished in %s (degraded: %v)", r.result.ID, elapsed.Round(time.Millisecond), r.result.Degraded)

	return r.result, nil
}

func coverageLine(c domain.Coverage) string {
	var parts []string
	if len(c.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(c.Missing, "; "))
	}
	if len(c.Duplicates) > 0 {
		parts = append(parts, "duplicated: "+strings.Join(c.Duplicates, "; "))
	}
	if len(c.Unknown) > 0 {
		parts = append(parts, "unrecognised: "+strings.Join(c.Unknown, "; "))
	}
	return "Evaluation does not match the 14 disclosure items (" + strings.Join(parts, ", ") + ")."
}
