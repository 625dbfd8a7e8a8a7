package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/config/file"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/services"
)

// stubValidator accepts every LLM configuration.
type stubValidator struct{}

func (stubValidator) ValidateLLM(_ *domain.LLMSettings) error { return nil }

// mockAuditService records requests and returns a fixed result.
type mockAuditService struct {
	result *domain.AuditResult
	err    error
	got    domain.AuditRequest
}

func (m *mockAuditService) RunAudit(_ context.Context, req domain.AuditRequest) (*domain.AuditResult, error) {
	m.got = req
	return m.result, m.err
}

// testEnv holds the services installed by setupTestServices.
type testEnv struct {
	store  *memory.ConfigStore
	audit  *mockAuditService
	prompt *file.PromptStore
}

// setupTestServices installs in-memory services and restores the previous
// ones when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	oldSettings, oldRuntime := settingsService, runtimeSettings
	oldAudit, oldPrompts, oldRegistry := auditService, promptStore, metricsRegistry
	oldInteractive := isInteractive
	t.Cleanup(func() {
		settingsService, runtimeSettings = oldSettings, oldRuntime
		auditService, promptStore, metricsRegistry = oldAudit, oldPrompts, oldRegistry
		isInteractive = oldInteractive
		auditText, auditJSON, auditPDF = "", false, ""
	})

	store := memory.NewConfigStore()
	prompts, err := file.NewPromptStore(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		store:  store,
		audit:  &mockAuditService{result: sampleAuditResult()},
		prompt: prompts,
	}

	svc := services.NewSettingsService(store, stubValidator{})
	settingsService = svc
	runtimeSettings = svc
	auditService = env.audit
	promptStore = prompts
	metricsRegistry = nil
	isInteractive = func() bool { return false }
	return env
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleAuditResult() *domain.AuditResult {
	return &domain.AuditResult{
		ID:          "run-1",
		ProcessLogs: []string{"1. Extracting text from the report...", "Audit process complete."},
		EvaluationTable: []domain.EvaluationRecord{
			{Classification: domain.ClassificationGovernance, Item: "A. Board oversight", Score: "4"},
		},
		Synthesis: domain.SynthesisResult{
			AverageScores: domain.CategoryAverages{
				{Classification: domain.ClassificationGovernance, Average: 4},
			},
			OverallAverage: 4,
			SummaryComment: "Strong board oversight.",
		},
		RadarChartData: domain.ChartData{Labels: []string{domain.ClassificationGovernance}, Data: []float64{4}},
		PDFBase64:      "JVBERi0xLjM=", // "%PDF-1.3"
	}
}
