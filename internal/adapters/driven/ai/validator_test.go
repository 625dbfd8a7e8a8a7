package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	assert.NotNil(t, NewConfigValidator())
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	v := NewConfigValidator()

	assert.NoError(t, v.ValidateLLM(nil))
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	v := NewConfigValidator()

	err := v.ValidateLLM(&domain.LLMSettings{Provider: domain.AIProviderAnthropic})

	assert.NoError(t, err)
}
