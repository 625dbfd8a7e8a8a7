package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driving/tui"
	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driving"
)

var (
	auditText string
	auditJSON bool
	auditPDF  string
)

var auditCmd = &cobra.Command{
	Use:   "audit [file]",
	Short: "Audit a report",
	Long: `Audit a report file (.pdf, .docx, .xlsx, .csv, .txt) or text passed with --text.

When both are given the file is used. Progress is shown while the audit runs;
use --json for machine-readable output and --pdf to save the rendered report.

Examples:
  auditor audit report.pdf
  auditor audit --text "Our board oversees nature-related risks..."
  auditor audit report.docx --json > result.json
  auditor audit report.xlsx --pdf audit.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVarP(&auditText, "text", "t", "", "report text to audit")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "output the full result as JSON")
	auditCmd.Flags().StringVar(&auditPDF, "pdf", "", "write the rendered PDF report to this path")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	req, err := buildAuditRequest(args)
	if err != nil {
		return err
	}

	svc, err := ensureAuditService(cmd.Context())
	if err != nil {
		return err
	}

	var result *domain.AuditResult
	if !auditJSON && isInteractive() {
		result, err = runAuditTUI(cmd, svc, req)
	} else {
		result, err = svc.RunAudit(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if auditPDF != "" {
		if err := writeReportPDF(auditPDF, result.PDFBase64); err != nil {
			return err
		}
		if !auditJSON {
			cmd.Printf("PDF report written to %s\n", auditPDF)
		}
	}

	if auditJSON {
		return outputAuditJSON(cmd, result)
	}
	if !isInteractive() {
		cmd.Print(tui.RenderSummary(result, nil))
	}
	return nil
}

func buildAuditRequest(args []string) (domain.AuditRequest, error) {
	req := domain.AuditRequest{ReportText: auditText}
	if len(args) == 0 {
		if auditText == "" {
			return req, errors.New("provide a report file or --text")
		}
		return req, nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return req, fmt.Errorf("failed to read report: %w", err)
	}
	req.FileContent = content
	req.FileName = filepath.Base(args[0])
	return req, nil
}

func runAuditTUI(cmd *cobra.Command, svc driving.AuditService, req domain.AuditRequest) (*domain.AuditResult, error) {
	app, err := tui.NewApp(&tui.Ports{Audit: svc}, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}
	return app.Result(), app.Err()
}

func outputAuditJSON(cmd *cobra.Command, result *domain.AuditResult) error {
	data, err := domain.MarshalIndentUnescaped(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func writeReportPDF(path, encoded string) error {
	if encoded == "" {
		return errors.New("no PDF was rendered; see the process log")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode PDF: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// isInteractive reports whether stdout is a terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
