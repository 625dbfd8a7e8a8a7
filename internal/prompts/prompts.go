// Package prompts holds the default prompt templates and renders them.
//
// Templates use text/template syntax. User-edited copies are served by the
// file PromptStore; these defaults are the fallback.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

// Template names. They match driven.PromptEvaluation and driven.PromptSynthesis.
const (
	Evaluation = "evaluation"
	Synthesis  = "synthesis"
)

//go:embed evaluation.txt
var EvaluationPrompt string

//go:embed synthesis.txt
var SynthesisPrompt string

// Defaults returns the embedded templates keyed by name.
func Defaults() map[string]string {
	return map[string]string{
		Evaluation: EvaluationPrompt,
		Synthesis:  SynthesisPrompt,
	}
}

// Default returns the embedded template for name.
func Default(name string) (string, bool) {
	tmpl, ok := Defaults()[name]
	return tmpl, ok
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// Render executes baseTemplate with data.
func Render(name, baseTemplate string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(baseTemplate)
	if err != nil {
		return "", fmt.Errorf("parse %s prompt: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}

	return buf.String(), nil
}
