// Package cli provides the cobra command tree for the auditor binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/ai"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/config/env"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/config/file"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/metrics"
	pdfrender "github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/render/pdf"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/search/discoveryengine"
	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driving"
	"github.com/custodia-labs/disclosure-auditor/internal/core/services"
	"github.com/custodia-labs/disclosure-auditor/internal/extractors"
	"github.com/custodia-labs/disclosure-auditor/internal/extractors/csv"
	"github.com/custodia-labs/disclosure-auditor/internal/extractors/docx"
	"github.com/custodia-labs/disclosure-auditor/internal/extractors/pdf"
	"github.com/custodia-labs/disclosure-auditor/internal/extractors/plaintext"
	"github.com/custodia-labs/disclosure-auditor/internal/extractors/xlsx"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// llmPingTimeout bounds the startup connectivity check of the LLM provider.
const llmPingTimeout = 10 * time.Second

var (
	verbose   bool
	configDir string
)

// Services shared by commands. Tests assign them directly.
var (
	// settingsService reads and writes the config file only.
	settingsService driving.SettingsService

	// runtimeSettings overlays AUDITOR_* environment variables on the config file.
	runtimeSettings driving.SettingsService

	auditService    driving.AuditService
	promptStore     promptCatalog
	metricsRegistry *prometheus.Registry
)

// promptCatalog is the prompt store as seen by the prompts commands.
type promptCatalog interface {
	driven.PromptStore
	Reset() error
	Dir() string
	Path(name string) string
	Names() []string
}

var rootCmd = &cobra.Command{
	Use:   "auditor",
	Short: "Audit sustainability reports against the TNFD recommended disclosures",
	Long: `Auditor scores a sustainability report against the 14 TNFD recommended
disclosures. It extracts the report text, retrieves guidance from a Vertex AI
Search engine, asks an LLM to evaluate every criterion, and renders the result
as JSON, a terminal summary, or a PDF report.

Configuration lives in ~/.auditor/config.toml. AUDITOR_* environment variables,
also read from a .env file in the working directory, override it at runtime.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return bootstrap()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.auditor)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// envBindings maps config keys to the environment variables that override them.
func envBindings() map[string]string {
	return map[string]string{
		services.KeyLLMProvider:     "AUDITOR_LLM_PROVIDER",
		services.KeyLLMModel:        "AUDITOR_LLM_MODEL",
		services.KeyLLMBaseURL:      "AUDITOR_LLM_BASE_URL",
		services.KeyLLMAPIKey:       "AUDITOR_LLM_API_KEY",
		services.KeyProjectID:       "AUDITOR_PROJECT_ID",
		services.KeyLocation:        "AUDITOR_LOCATION",
		services.KeyEngineID:        "AUDITOR_ENGINE_ID",
		services.KeyServingConfigID: "AUDITOR_SERVING_CONFIG_ID",
		services.KeyCredentialsFile: "AUDITOR_CREDENTIALS_FILE",
		services.KeyFontPath:        "AUDITOR_FONT_PATH",
		services.KeyServerAddr:      "AUDITOR_ADDR",
		services.KeyPromptDir:       "AUDITOR_PROMPT_DIR",
	}
}

// bootstrap creates the settings services once.
func bootstrap() error {
	if settingsService != nil && runtimeSettings != nil {
		return nil
	}

	env.LoadDotEnv()

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	logger.Debug("Config file: %s", store.Path())

	validator := ai.NewConfigValidator()
	settingsService = services.NewSettingsService(store, validator)
	runtimeSettings = services.NewSettingsService(env.NewOverlay(store, envBindings()), validator)
	return nil
}

// ensurePromptStore opens the prompt store named by the runtime settings.
func ensurePromptStore() (promptCatalog, error) {
	if promptStore != nil {
		return promptStore, nil
	}
	if runtimeSettings == nil {
		return nil, errors.New("settings service not configured")
	}

	settings, err := runtimeSettings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	store, err := file.NewPromptStore(settings.PromptDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt store: %w", err)
	}
	promptStore = store
	return promptStore, nil
}

// ensureAuditService wires the audit pipeline from the runtime settings.
// Unconfigured or unreachable backends are logged and left nil so that their
// sections degrade instead of failing every audit.
func ensureAuditService(ctx context.Context) (driving.AuditService, error) {
	if auditService != nil {
		return auditService, nil
	}
	if runtimeSettings == nil {
		return nil, errors.New("settings service not configured")
	}

	settings, err := runtimeSettings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	prompts, err := ensurePromptStore()
	if err != nil {
		return nil, err
	}

	registry := extractors.NewRegistry(
		pdf.New(),
		docx.New(),
		xlsx.New(),
		csv.New(),
		plaintext.New(),
	)

	svc := services.NewAuditService(
		registry,
		newRetriever(ctx, settings.Retrieval),
		newLLMService(ctx, &settings.LLM),
		prompts,
		pdfrender.New(settings.Render),
	)

	metricsRegistry = prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	svc.SetMetrics(metrics.New(metricsRegistry))

	auditService = svc
	return auditService, nil
}

func newRetriever(ctx context.Context, settings domain.RetrievalSettings) driven.Retriever {
	if !settings.IsConfigured() {
		logger.Warn("Search engine not configured; guidance retrieval will be degraded. Run 'auditor settings search' to fix.")
		return nil
	}

	r, err := discoveryengine.New(ctx, discoveryengine.Config{
		Settings:  settings,
		RateLimit: discoveryengine.DefaultRateLimit,
	})
	if err != nil {
		logger.Warn("Search engine unavailable; guidance retrieval will be degraded: %v", err)
		return nil
	}
	logger.Debug("Search engine: %s", settings.ServingConfig())
	return r
}

func newLLMService(ctx context.Context, settings *domain.LLMSettings) driven.LLMService {
	if !settings.IsConfigured() {
		logger.Warn("LLM provider %q not configured; evaluation and synthesis will be degraded. "+
			"Run 'auditor settings llm' to fix.", settings.Provider)
		return nil
	}

	svc, err := ai.CreateLLMService(settings)
	if err != nil {
		logger.Warn("LLM provider unavailable; evaluation and synthesis will be degraded: %v", err)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, llmPingTimeout)
	defer cancel()
	if err := svc.Ping(pingCtx); err != nil {
		logger.Warn("LLM provider %s did not answer a ping: %v", settings.Provider, err)
	}
	logger.Debug("LLM: %s (%s)", settings.Provider, settings.Model)
	return svc
}
