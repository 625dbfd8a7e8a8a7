package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range promptsCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"list", "path", "show", "reset"}, names)
}

func TestPromptsList(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "", "prompts", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "evaluation")
	assert.Contains(t, out, "synthesis")
	assert.Contains(t, out, env.prompt.Path("evaluation"))
}

func TestPromptsPath(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "", "prompts", "path")

	require.NoError(t, err)
	assert.Contains(t, out, env.prompt.Dir())
}

func TestPromptsShow(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "prompts", "show", "synthesis")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPromptsShow_Unknown(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "prompts", "show", "other")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown prompt "other"`)
}

func TestPromptsReset(t *testing.T) {
	env := setupTestServices(t)
	path := env.prompt.Path("evaluation")
	_, err := env.prompt.Load("evaluation")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("custom"), 0o600))

	out, err := executeCommand(t, "", "prompts", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "Restored default prompts")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "custom", string(data))
}
