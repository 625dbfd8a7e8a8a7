package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyLLMProvider       = "llm.provider"
	KeyLLMModel          = "llm.model"
	KeyLLMBaseURL        = "llm.base_url"
	KeyLLMAPIKey         = "llm.api_key"
	KeyProjectID         = "retrieval.project_id"
	KeyLocation          = "retrieval.location"
	KeyEngineID          = "retrieval.engine_id"
	KeyServingConfigID   = "retrieval.serving_config_id"
	KeyCredentialsFile   = "retrieval.credentials_file"
	KeyExtractiveAnswers = "retrieval.extractive_answers"
	KeyFontPath          = "render.font_path"
	KeyFontFamily        = "render.font_family"
	KeyServerAddr        = "server.addr"
	KeyPromptDir         = "prompts.dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(KeyLLMProvider, defaults.LLM.Provider)
	model := s.configStore.GetString(KeyLLMModel)
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: provider,
			Model:    model,
			BaseURL:  s.configStore.GetString(KeyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(KeyLLMAPIKey),
		},
		Retrieval: domain.RetrievalSettings{
			ProjectID:         s.configStore.GetString(KeyProjectID),
			Location:          s.getString(KeyLocation, defaults.Retrieval.Location),
			EngineID:          s.configStore.GetString(KeyEngineID),
			ServingConfigID:   s.getString(KeyServingConfigID, defaults.Retrieval.ServingConfigID),
			CredentialsFile:   s.configStore.GetString(KeyCredentialsFile),
			ExtractiveAnswers: s.getBool(KeyExtractiveAnswers, defaults.Retrieval.ExtractiveAnswers),
		},
		Render: domain.RenderSettings{
			FontPath:   s.configStore.GetString(KeyFontPath),
			FontFamily: s.getString(KeyFontFamily, defaults.Render.FontFamily),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(KeyServerAddr, defaults.Server.Addr),
		},
		PromptDir: s.configStore.GetString(KeyPromptDir),
	}

	// Gemini without an API key shares the search engine's Google project.
	settings.LLM.CloudProject = settings.Retrieval.ProjectID
	settings.LLM.CloudLocation = settings.Retrieval.Location
	settings.LLM.CredentialsFile = settings.Retrieval.CredentialsFile

	return settings, nil
}

// Save persists application settings. Empty optional values are not written.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key      string
		value    any
		optional bool
	}{
		{KeyLLMProvider, settings.LLM.Provider.String(), false},
		{KeyLLMModel, settings.LLM.Model, false},
		{KeyLLMBaseURL, settings.LLM.BaseURL, false},
		{KeyLLMAPIKey, settings.LLM.APIKey, true},
		{KeyProjectID, settings.Retrieval.ProjectID, true},
		{KeyLocation, settings.Retrieval.Location, false},
		{KeyEngineID, settings.Retrieval.EngineID, true},
		{KeyServingConfigID, settings.Retrieval.ServingConfigID, false},
		{KeyCredentialsFile, settings.Retrieval.CredentialsFile, true},
		{KeyExtractiveAnswers, settings.Retrieval.ExtractiveAnswers, false},
		{KeyFontPath, settings.Render.FontPath, true},
		{KeyFontFamily, settings.Render.FontFamily, false},
		{KeyServerAddr, settings.Server.Addr, false},
		{KeyPromptDir, settings.PromptDir, true},
	}

	for _, v := range values {
		if str, ok := v.value.(string); ok && v.optional && str == "" {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return s.configStore.Save()
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	// Gemini may run keyless on Vertex AI when a Google project is set.
	candidate := settings.LLM
	candidate.Provider = provider
	candidate.APIKey = apiKey
	if provider.RequiresAPIKey() && apiKey == "" && !candidate.UsesVertex() {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that the LLM provider and search engine are configured.
// All problems are reported together.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var problems []string
	if !settings.LLM.IsConfigured() {
		problems = append(problems, fmt.Sprintf("LLM provider %q is not configured (set %s)",
			settings.LLM.Provider, KeyLLMAPIKey))
	}
	if !settings.Retrieval.IsConfigured() {
		var missing []string
		if settings.Retrieval.ProjectID == "" {
			missing = append(missing, KeyProjectID)
		}
		if settings.Retrieval.EngineID == "" {
			missing = append(missing, KeyEngineID)
		}
		if settings.Retrieval.Location == "" {
			missing = append(missing, KeyLocation)
		}
		if settings.Retrieval.ServingConfigID == "" {
			missing = append(missing, KeyServingConfigID)
		}
		problems = append(problems, "search engine is not configured (set "+strings.Join(missing, ", ")+")")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
