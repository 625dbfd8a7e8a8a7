// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the auditor config directory (~/.auditor).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable prompt templates with embedded defaults
//   - PromptWatcher: reloads the PromptStore when template files change
package file
