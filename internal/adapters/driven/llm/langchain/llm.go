// Package langchain adapts langchaingo models (Gemini, Anthropic, Ollama)
// to driven.LLMService.
package langchain

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/googleai/vertex"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultOllamaURL is used when no base URL is configured for Ollama.
const DefaultOllamaURL = "http://localhost:11434"

// DefaultVertexLocation serves Gemini when the project location is empty or
// "global", which Vertex AI has no regional endpoint for.
const DefaultVertexLocation = "us-central1"

// Config selects and configures the backing model.
type Config struct {
	Provider domain.AIProvider
	Model    string
	BaseURL  string
	APIKey   string

	// Vertex AI, used for Gemini when APIKey is empty.
	CloudProject    string
	CloudLocation   string
	CredentialsFile string
}

// LLMService generates text through a langchaingo model.
type LLMService struct {
	model    llms.Model
	name     string
	provider domain.AIProvider
}

// New creates the model for cfg.Provider.
func New(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.Model == "" {
		cfg.Model = domain.DefaultLLMModels()[cfg.Provider]
	}

	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case domain.AIProviderGemini:
		switch {
		case cfg.APIKey != "":
			model, err = googleai.New(ctx,
				googleai.WithAPIKey(cfg.APIKey),
				googleai.WithDefaultModel(cfg.Model),
			)
		case cfg.CloudProject != "":
			model, err = vertex.New(ctx, vertexOptions(cfg)...)
		default:
			return nil, fmt.Errorf("gemini: API key or Google Cloud project is required")
		}

	case domain.AIProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic: API key is required")
		}
		opts := []anthropic.Option{
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		model, err = anthropic.New(opts...)

	case domain.AIProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		model, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(baseURL),
		)

	default:
		return nil, fmt.Errorf("unsupported langchain provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: create model: %w", cfg.Provider, err)
	}

	return NewWithModel(model, cfg.Provider, cfg.Model), nil
}

// vertexOptions builds the Vertex AI client options for cfg.
func vertexOptions(cfg Config) []googleai.Option {
	opts := []googleai.Option{
		googleai.WithCloudProject(cfg.CloudProject),
		googleai.WithCloudLocation(VertexLocation(cfg.CloudLocation)),
		googleai.WithDefaultModel(cfg.Model),
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, googleai.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

// VertexLocation maps a search engine location to a Vertex AI region.
func VertexLocation(location string) string {
	if location == "" || location == "global" {
		return DefaultVertexLocation
	}
	return location
}

// NewWithModel wraps an existing model.
func NewWithModel(model llms.Model, provider domain.AIProvider, name string) *LLMService {
	return &LLMService{model: model, name: name, provider: provider}
}

// Generate produces text completion from a single prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var callOpts []llms.CallOption
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("%s: generate: %w", s.provider, err)
	}
	return out, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.name
}

// Ping sends a one-token request to confirm the model answers.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := llms.GenerateFromSinglePrompt(ctx, s.model, "ping", llms.WithMaxTokens(1)); err != nil {
		return fmt.Errorf("%s: ping failed: %w", s.provider, err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	if c, ok := s.model.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
