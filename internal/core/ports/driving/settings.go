package driving

import "github.com/custodia-labs/disclosure-auditor/internal/core/domain"

// SettingsService manages application configuration.
type SettingsService interface {
	// Get retrieves current settings, with defaults for anything unset.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the generative backend.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that the settings name a usable LLM and search engine.
	Validate() error

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
