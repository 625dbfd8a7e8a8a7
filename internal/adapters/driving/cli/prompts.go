package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage LLM prompt templates",
	Long: `List, inspect and reset the prompt templates sent to the LLM.

Templates are Go text/template files in the prompt directory
(default ~/.auditor/prompts). Edit them to change how reports are scored.`,
	RunE: runPromptsList,
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt templates and their files",
	RunE:  runPromptsList,
}

var promptsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the prompt directory",
	RunE:  runPromptsPath,
}

var promptsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the active template for a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsShow,
}

var promptsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default templates",
	RunE:  runPromptsReset,
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsPathCmd)
	promptsCmd.AddCommand(promptsShowCmd)
	promptsCmd.AddCommand(promptsResetCmd)
	rootCmd.AddCommand(promptsCmd)
}

func runPromptsList(cmd *cobra.Command, _ []string) error {
	store, err := ensurePromptStore()
	if err != nil {
		return err
	}

	cmd.Println("Prompt templates:")
	for _, name := range store.Names() {
		cmd.Printf("  %-12s %s\n", name, store.Path(name))
	}
	return nil
}

func runPromptsPath(cmd *cobra.Command, _ []string) error {
	store, err := ensurePromptStore()
	if err != nil {
		return err
	}
	cmd.Println(store.Dir())
	return nil
}

func runPromptsShow(cmd *cobra.Command, args []string) error {
	store, err := ensurePromptStore()
	if err != nil {
		return err
	}

	name := args[0]
	if !knownPrompt(store, name) {
		return fmt.Errorf("unknown prompt %q", name)
	}
	content, err := store.Load(name)
	if err != nil {
		return fmt.Errorf("failed to load prompt: %w", err)
	}
	cmd.Println(content)
	return nil
}

func runPromptsReset(cmd *cobra.Command, _ []string) error {
	store, err := ensurePromptStore()
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		return fmt.Errorf("failed to reset prompts: %w", err)
	}
	cmd.Printf("Restored default prompts in %s\n", store.Dir())
	return nil
}

func knownPrompt(store promptCatalog, name string) bool {
	for _, n := range store.Names() {
		if n == name {
			return true
		}
	}
	return false
}
