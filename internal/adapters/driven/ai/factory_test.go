package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.LLMSettings
		wantModel   string
		wantErr     bool
		errContains string
	}{
		{
			name:        "nil settings",
			settings:    nil,
			wantErr:     true,
			errContains: "provider not configured",
		},
		{
			name:        "cloud provider without key",
			settings:    &domain.LLMSettings{Provider: domain.AIProviderGemini},
			wantErr:     true,
			errContains: "provider not configured",
		},
		{
			name:        "unknown provider",
			settings:    &domain.LLMSettings{Provider: "unknown", APIKey: "k"},
			wantErr:     true,
			errContains: "provider not configured",
		},
		{
			name: "openai",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o",
			},
			wantModel: "gpt-4o",
		},
		{
			name: "anthropic",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
				Model:    "claude-3-5-sonnet-latest",
			},
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name: "ollama without key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3.2",
			},
			wantModel: "llama3.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrLLMUnavailable))
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, svc)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestCreateAndValidateLLMService_NotConfigured(t *testing.T) {
	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{Provider: domain.AIProviderOpenAI})

	assert.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateAndValidateLLMService_Unreachable(t *testing.T) {
	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "test-key",
		BaseURL:  "http://127.0.0.1:1",
	})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, domain.ErrLLMUnavailable))
	assert.Contains(t, err.Error(), "service unreachable")
}

func TestValidateLLMConfig(t *testing.T) {
	t.Run("nil settings", func(t *testing.T) {
		assert.NoError(t, ValidateLLMConfig(nil))
	})

	t.Run("unconfigured settings", func(t *testing.T) {
		assert.NoError(t, ValidateLLMConfig(&domain.LLMSettings{}))
	})

	t.Run("unreachable openai endpoint", func(t *testing.T) {
		err := ValidateLLMConfig(&domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "test-key",
			BaseURL:  "http://127.0.0.1:1",
		})
		assert.Error(t, err)
	})
}
