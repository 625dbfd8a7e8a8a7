package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// AuditInput is the input schema for the audit_report tool.
type AuditInput struct {
	ReportText string `json:"report_text,omitempty" jsonschema:"plain report text, used when file_path is empty"`
	FilePath   string `json:"file_path,omitempty" jsonschema:"path to a .pdf, .docx, .xlsx, .csv or .txt report on the local filesystem"`
	PDFOutput  string `json:"pdf_output,omitempty" jsonschema:"optional path to write the rendered PDF report to"`
}

// AuditOutput is the output schema for the audit_report tool.
type AuditOutput struct {
	ID               string                    `json:"id"`
	OverallAverage   float64                   `json:"overall_average"`
	AverageScores    map[string]float64        `json:"average_scores"`
	SummaryComment   string                    `json:"summary_comment"`
	Evaluation       []domain.EvaluationRecord `json:"evaluation_table"`
	Citations        []domain.Citation         `json:"citations"`
	DegradedSections []string                  `json:"degraded_sections,omitempty"`
	MissingCriteria  []string                  `json:"missing_criteria,omitempty"`
	ProcessLogs      []string                  `json:"process_logs"`
	PDFPath          string                    `json:"pdf_path,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "audit_report",
		Description: "Audit a sustainability report against the TNFD recommended disclosures. " +
			"Returns per-criterion scores, category averages and a narrative summary.",
	}, s.handleAudit)
}

// handleAudit handles the audit_report tool invocation.
func (s *Server) handleAudit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AuditInput,
) (*mcp.CallToolResult, AuditOutput, error) {
	req, err := buildRequest(input)
	if err != nil {
		return nil, AuditOutput{}, err
	}

	result, err := s.ports.Audit.RunAudit(ctx, req)
	if err != nil {
		return nil, AuditOutput{}, err
	}

	output := toOutput(result)
	if input.PDFOutput != "" && result.PDFBase64 != "" {
		if err := writePDF(input.PDFOutput, result.PDFBase64); err != nil {
			return nil, AuditOutput{}, err
		}
		output.PDFPath = input.PDFOutput
	}

	return nil, output, nil
}

func buildRequest(input AuditInput) (domain.AuditRequest, error) {
	req := domain.AuditRequest{ReportText: input.ReportText}
	if input.FilePath == "" {
		if input.ReportText == "" {
			return req, ErrNoReportInput
		}
		return req, nil
	}

	content, err := os.ReadFile(input.FilePath)
	if err != nil {
		return req, fmt.Errorf("reading report: %w", err)
	}
	req.FileContent = content
	req.FileName = filepath.Base(input.FilePath)
	return req, nil
}

func toOutput(result *domain.AuditResult) AuditOutput {
	out := AuditOutput{
		ID:              result.ID,
		OverallAverage:  result.Synthesis.OverallAverage,
		AverageScores:   result.Synthesis.AverageScores.Map(),
		SummaryComment:  result.Synthesis.SummaryComment,
		Evaluation:      result.EvaluationTable,
		Citations:       result.RetrievedCitations,
		MissingCriteria: result.Coverage.Missing,
		ProcessLogs:     result.ProcessLogs,
	}
	for _, section := range result.Degraded {
		out.DegradedSections = append(out.DegradedSections, section.String())
	}
	return out
}

func writePDF(path, encoded string) error {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding PDF: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
