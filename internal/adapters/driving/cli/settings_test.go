package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/disclosure-auditor/internal/core/services"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"show", "wizard", "llm", "search"}, names)
}

func TestSettingsShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "Gemini (cloud)")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "[Search Engine]")
	assert.Contains(t, out, "Engine: (not set)")
	assert.Contains(t, out, "Application Default Credentials")
	assert.Contains(t, out, "Warning:")
}

func TestSettingsShow_MarksEnvironmentOverrides(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.store.Set(services.KeyServerAddr, ":9000"))
	t.Setenv("AUDITOR_ADDR", ":9000")

	out, err := executeCommand(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Address: :9000 (from AUDITOR_ADDR)")
}

func TestSettingsLLM_ConfiguresOllama(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "4\n\n", "settings", "llm")

	require.NoError(t, err)
	assert.Contains(t, out, "Validating configuration... OK")
	assert.Equal(t, "ollama", env.store.GetString(services.KeyLLMProvider))
	assert.Equal(t, "llama3.2", env.store.GetString(services.KeyLLMModel))
	assert.Equal(t, "http://localhost:11434", env.store.GetString(services.KeyLLMBaseURL))
}

func TestSettingsLLM_GeminiOnVertexWithoutKey(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.store.Set(services.KeyProjectID, "tnfd-project"))

	out, err := executeCommand(t, "2\n\n\n", "settings", "llm")

	require.NoError(t, err)
	assert.Contains(t, out, "empty uses Vertex AI in project tnfd-project")
	assert.Equal(t, "gemini", env.store.GetString(services.KeyLLMProvider))
	assert.Empty(t, env.store.GetString(services.KeyLLMAPIKey))

	out, err = executeCommand(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Vertex AI: tnfd-project (us-central1)")
}

func TestSettingsLLM_RequiresAPIKey(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "1\n\n\n", "settings", "llm")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestSettingsSearch_SavesEngine(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "my-project\n\nmy-engine\n\n\n", "settings", "search")

	require.NoError(t, err)
	assert.Contains(t, out,
		"projects/my-project/locations/global/collections/default_collection/engines/my-engine/servingConfigs/default_search")
	assert.Equal(t, "my-project", env.store.GetString(services.KeyProjectID))
	assert.Equal(t, "my-engine", env.store.GetString(services.KeyEngineID))
	assert.Equal(t, "global", env.store.GetString(services.KeyLocation))
}

func TestSettingsSearch_RequiresEngine(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "my-project\n\n\n", "settings", "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine ID is required")
}

func TestSettingsWizard(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "4\n\nproj\n\neng\n\n\n", "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Auditor Settings Wizard")
	assert.Contains(t, out, "LLM provider configured: Ollama (local)")
	assert.Contains(t, out, "Search engine configured")
	assert.Contains(t, out, "All settings are valid and saved.")
}

func TestEnvNote(t *testing.T) {
	t.Setenv("AUDITOR_LLM_MODEL", "gpt-4.1")

	assert.Equal(t, " (from AUDITOR_LLM_MODEL)", envNote(services.KeyLLMModel))
	assert.Empty(t, envNote(services.KeyFontFamily))
}
