package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

func TestAuditCmd_Flags(t *testing.T) {
	flag := auditCmd.Flags().Lookup("text")
	require.NotNil(t, flag)
	assert.Equal(t, "t", flag.Shorthand)
	assert.NotNil(t, auditCmd.Flags().Lookup("json"))
	assert.NotNil(t, auditCmd.Flags().Lookup("pdf"))
}

func TestAuditCmd_AcceptsMaxOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "audit", "a.pdf", "b.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestAuditCmd_RequiresInput(t *testing.T) {
	env := setupTestServices(t)

	_, err := executeCommand(t, "", "audit")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provide a report file or --text")
	assert.Empty(t, env.audit.got.ReportText)
}

func TestAuditCmd_TextJSON(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "", "audit", "--text", "Our board oversees nature risks.", "--json")

	require.NoError(t, err)
	assert.Equal(t, "Our board oversees nature risks.", env.audit.got.ReportText)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "run-1", body["id"])
	assert.Contains(t, body, "evaluation_table")
	assert.Contains(t, body, "pdf_b64")
}

func TestAuditCmd_JSONKeepsCategoryNames(t *testing.T) {
	env := setupTestServices(t)
	env.audit.result.Synthesis.AverageScores = domain.CategoryAverages{
		{Classification: domain.ClassificationMetrics, Average: 2.5},
	}

	out, err := executeCommand(t, "", "audit", "--text", "report", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"Metrics & Targets": 2.5`)
}

func TestAuditCmd_FileSummary(t *testing.T) {
	env := setupTestServices(t)
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("file text"), 0o600))

	out, err := executeCommand(t, "", "audit", path)

	require.NoError(t, err)
	assert.Equal(t, "report.txt", env.audit.got.FileName)
	assert.Equal(t, []byte("file text"), env.audit.got.FileContent)
	assert.Contains(t, out, "Category Averages")
	assert.Contains(t, out, "A. Board oversight")
	assert.Contains(t, out, "Strong board oversight.")
}

func TestAuditCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "audit", filepath.Join(t.TempDir(), "nope.pdf"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read report")
}

func TestAuditCmd_WritesPDF(t *testing.T) {
	setupTestServices(t)
	out := filepath.Join(t.TempDir(), "audit.pdf")

	stdout, err := executeCommand(t, "", "audit", "--text", "x", "--pdf", out)

	require.NoError(t, err)
	assert.Contains(t, stdout, "PDF report written to "+out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestAuditCmd_NoPDFRendered(t *testing.T) {
	env := setupTestServices(t)
	env.audit.result.PDFBase64 = ""

	_, err := executeCommand(t, "", "audit", "--text", "x", "--pdf", filepath.Join(t.TempDir(), "audit.pdf"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no PDF was rendered")
}

func TestAuditCmd_ServiceError(t *testing.T) {
	env := setupTestServices(t)
	env.audit.err = errors.New("boom")

	_, err := executeCommand(t, "", "audit", "--text", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit failed: boom")
}
