package domain

const unknownDescription = "Unknown"

// AIProvider identifies a generative backend provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI API or any OpenAI-compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is Google's Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderGemini, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p != AIProviderOllama
}

// IsLocal returns true if the provider runs on the local machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds generative backend configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string

	// CloudProject, CloudLocation and CredentialsFile reach Gemini through
	// Vertex AI with Google credentials when no API key is set. They are
	// taken from the retrieval settings, never stored separately.
	CloudProject    string
	CloudLocation   string
	CredentialsFile string
}

// UsesVertex reports whether Gemini is reached through Vertex AI.
func (l LLMSettings) UsesVertex() bool {
	return l.Provider == AIProviderGemini && l.APIKey == "" && l.CloudProject != ""
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" && !l.UsesVertex() {
		return false
	}
	return true
}

// RetrievalSettings names the managed search engine instance.
type RetrievalSettings struct {
	ProjectID       string
	Location        string
	EngineID        string
	ServingConfigID string

	// CredentialsFile is a service account key; empty uses application default credentials.
	CredentialsFile string

	// ExtractiveAnswers requests extractive answers so page numbers can be filled.
	ExtractiveAnswers bool
}

// IsConfigured returns true if the engine is fully named.
func (r RetrievalSettings) IsConfigured() bool {
	return r.ProjectID != "" && r.Location != "" && r.EngineID != "" && r.ServingConfigID != ""
}

// ServingConfig returns the full serving config resource name.
func (r RetrievalSettings) ServingConfig() string {
	return "projects/" + r.ProjectID +
		"/locations/" + r.Location +
		"/collections/default_collection/engines/" + r.EngineID +
		"/servingConfigs/" + r.ServingConfigID
}

// RenderSettings configures the PDF renderer.
type RenderSettings struct {
	// FontPath is a UTF-8 TrueType font; empty uses the built-in Helvetica.
	FontPath string

	// FontFamily is the name the font is registered under.
	FontFamily string
}

// ServerSettings configures the HTTP endpoint.
type ServerSettings struct {
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM       LLMSettings
	Retrieval RetrievalSettings
	Render    RenderSettings
	Server    ServerSettings

	// PromptDir holds the user-editable prompt templates.
	PromptDir string
}

// DefaultAppSettings returns settings with sensible defaults.
// The engine ID and API key have no default and must be configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderGemini,
			Model:    DefaultLLMModels()[AIProviderGemini],
		},
		Retrieval: RetrievalSettings{
			Location:        "global",
			ServingConfigID: "default_search",
		},
		Render: RenderSettings{
			FontFamily: "ReportFont",
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderGemini,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI:    "gpt-4o",
		AIProviderGemini:    "gemini-2.5-pro",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderOllama:    "llama3.2",
	}
}
