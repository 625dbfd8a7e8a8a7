package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/llm/langchain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, the search engine, and other options.

Use subcommands to configure specific settings or run the interactive wizard.
Settings are written to config.toml; AUDITOR_* environment variables override
them at runtime and are never written back.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used to evaluate reports and write the summary.`,
	RunE:  runSettingsLLM,
}

var settingsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Configure the guidance search engine",
	Long: `Configure the Vertex AI Search (Discovery Engine) engine that holds the
TNFD guidance documents.

Authentication uses a service account key file when one is given, otherwise
Application Default Credentials (gcloud auth application-default login).`,
	RunE: runSettingsSearch,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsSearchCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if runtimeSettings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := runtimeSettings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// LLM settings
	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s%s\n", settings.LLM.Provider.Description(), envNote(services.KeyLLMProvider))
	cmd.Printf("  Model: %s%s\n", settings.LLM.Model, envNote(services.KeyLLMModel))
	if settings.LLM.Provider.IsLocal() || settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s%s\n", settings.LLM.BaseURL, envNote(services.KeyLLMBaseURL))
	}
	if settings.LLM.UsesVertex() {
		cmd.Printf("  Vertex AI: %s (%s)\n", settings.LLM.CloudProject,
			langchain.VertexLocation(settings.LLM.CloudLocation))
	} else if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s%s\n", maskAPIKey(settings.LLM.APIKey), envNote(services.KeyLLMAPIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	// Search engine settings
	cmd.Println("[Search Engine]")
	cmd.Printf("  Project: %s%s\n", orNotSet(settings.Retrieval.ProjectID), envNote(services.KeyProjectID))
	cmd.Printf("  Location: %s%s\n", settings.Retrieval.Location, envNote(services.KeyLocation))
	cmd.Printf("  Engine: %s%s\n", orNotSet(settings.Retrieval.EngineID), envNote(services.KeyEngineID))
	cmd.Printf("  Serving config: %s%s\n", settings.Retrieval.ServingConfigID, envNote(services.KeyServingConfigID))
	if settings.Retrieval.CredentialsFile != "" {
		cmd.Printf("  Credentials: %s%s\n", settings.Retrieval.CredentialsFile, envNote(services.KeyCredentialsFile))
	} else {
		cmd.Println("  Credentials: Application Default Credentials")
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Retrieval.IsConfigured()))
	cmd.Println()

	// Report settings
	cmd.Println("[Report]")
	if settings.Render.FontPath != "" {
		cmd.Printf("  Font: %s (%s)%s\n", settings.Render.FontPath, settings.Render.FontFamily, envNote(services.KeyFontPath))
	} else {
		cmd.Println("  Font: Helvetica (built in)")
	}
	cmd.Println()

	// Server settings
	cmd.Println("[Server]")
	cmd.Printf("  Address: %s%s\n", settings.Server.Addr, envNote(services.KeyServerAddr))
	if settings.PromptDir != "" {
		cmd.Printf("  Prompt directory: %s%s\n", settings.PromptDir, envNote(services.KeyPromptDir))
	}
	cmd.Println()

	// Validation
	if err := runtimeSettings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'auditor settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Auditor Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Configure LLM Provider")
	cmd.Println("------------------------------")
	cmd.Println("The LLM scores the report and writes the summary.")
	cmd.Println()
	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Step 2: Configure Search Engine")
	cmd.Println("-------------------------------")
	cmd.Println("The search engine supplies TNFD guidance to the evaluation.")
	cmd.Println()
	if err := configureSearchEngine(cmd, reader); err != nil {
		return err
	}

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func runSettingsSearch(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureSearchEngine(cmd, reader)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		project := vertexProject(selectedProvider)
		if project != "" {
			cmd.Printf("Enter API key (empty uses Vertex AI in project %s): ", project)
		} else {
			cmd.Print("Enter API key: ")
		}
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" && project == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// vertexProject returns the Google project Gemini can run in without an
// API key, or "" when provider cannot.
func vertexProject(provider domain.AIProvider) string {
	if provider != domain.AIProviderGemini {
		return ""
	}
	settings, err := settingsService.Get()
	if err != nil {
		return ""
	}
	return settings.Retrieval.ProjectID
}

func configureSearchEngine(cmd *cobra.Command, reader *bufio.Reader) error {
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	r := &settings.Retrieval

	r.ProjectID = prompt(cmd, reader, "Google Cloud project ID", r.ProjectID)
	if r.ProjectID == "" {
		return errors.New("project ID is required")
	}
	r.Location = prompt(cmd, reader, "Location", r.Location)
	r.EngineID = prompt(cmd, reader, "Engine ID", r.EngineID)
	if r.EngineID == "" {
		return errors.New("engine ID is required")
	}
	r.ServingConfigID = prompt(cmd, reader, "Serving config ID", r.ServingConfigID)
	r.CredentialsFile = prompt(cmd, reader, "Service account key file (empty for ADC)", r.CredentialsFile)
	if r.CredentialsFile != "" {
		if _, err := os.Stat(r.CredentialsFile); err != nil {
			return fmt.Errorf("credentials file: %w", err)
		}
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save search settings: %w", err)
	}

	cmd.Printf("Search engine configured: %s\n\n", r.ServingConfig())
	return nil
}

// Helper functions.

// prompt asks for a value, returning current when the answer is empty.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}
	if input := readLine(reader); input != "" {
		return input
	}
	return current
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo on a terminal, otherwise a plain line.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// envNote marks values that come from an environment variable.
func envNote(key string) string {
	name, ok := envBindings()[key]
	if !ok {
		return ""
	}
	if val, set := os.LookupEnv(name); set && val != "" {
		return " (from " + name + ")"
	}
	return ""
}
