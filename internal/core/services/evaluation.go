package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
	"github.com/custodia-labs/disclosure-auditor/internal/prompts"
)

// noGuidance is used when retrieval produced no context at all.
const noGuidance = "No guidance was found."

// evaluationPromptData is the template data for driven.PromptEvaluation.
type evaluationPromptData struct {
	Context   string
	Citations string
	Report    string
	Criteria  []domain.Criterion
}

// Evaluator scores a report against every criterion with the LLM.
type Evaluator struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewEvaluator creates an evaluator.
// promptStore may be nil, in which case the built-in template is used.
func NewEvaluator(llm driven.LLMService, promptStore driven.PromptStore) *Evaluator {
	return &Evaluator{llm: llm, prompts: promptStore}
}

// Evaluate returns one record per criterion, in the order the model produced them.
// On failure it returns a single error record and the error.
func (e *Evaluator) Evaluate(
	ctx context.Context, reportText string, guidance domain.RetrievalResult,
) ([]domain.EvaluationRecord, error) {
	if e.llm == nil {
		return evaluationFailure(domain.ErrLLMUnavailable)
	}

	prompt, err := e.buildPrompt(reportText, guidance)
	if err != nil {
		return evaluationFailure(err)
	}
	logger.Debug("Evaluation prompt: %d characters", len(prompt))

	response, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return evaluationFailure(err)
	}

	records, err := ParseEvaluation(response)
	if err != nil {
		logger.Debug("Unparsable evaluation response: %q", truncate(response, 200))
		return evaluationFailure(err)
	}

	logger.Debug("Parsed %d evaluation records", len(records))
	return records, nil
}

func (e *Evaluator) buildPrompt(reportText string, guidance domain.RetrievalResult) (string, error) {
	guidanceText := guidance.Context
	if guidanceText == "" {
		guidanceText = noGuidance
	}

	data := evaluationPromptData{
		Context:   guidanceText,
		Citations: FormatCitations(guidance.Citations),
		Report:    reportText,
		Criteria:  domain.Catalogue(),
	}
	return renderPrompt(e.prompts, driven.PromptEvaluation, data)
}

// ParseEvaluation decodes the model's JSON array, tolerating a markdown code
// fence around it, and strips markdown from the free-text fields.
func ParseEvaluation(response string) ([]domain.EvaluationRecord, error) {
	body := strings.TrimSpace(response)
	body = strings.ReplaceAll(body, "```json", "")
	body = strings.ReplaceAll(body, "```", "")
	body = strings.TrimSpace(body)

	var records []domain.EvaluationRecord
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty evaluation list", domain.ErrInvalidResponse)
	}

	for i := range records {
		records[i].GoodPoint = CleanMarkdown(records[i].GoodPoint)
		records[i].ImprovementPoint = CleanMarkdown(records[i].ImprovementPoint)
		records[i].Reference = CleanMarkdown(records[i].Reference)
	}
	return records, nil
}

// FormatCitations renders citations as a bullet list for the prompt.
func FormatCitations(citations []domain.Citation) string {
	if len(citations) == 0 {
		return "None"
	}

	lines := make([]string, 0, len(citations))
	for _, c := range citations {
		lines = append(lines, fmt.Sprintf("- %s (Page: %s, URI: %s)",
			orNA(c.Title), orNA(c.PageNumber), orNA(c.URI)))
	}
	return strings.Join(lines, "\n")
}

func evaluationFailure(err error) ([]domain.EvaluationRecord, error) {
	logger.Warn("Evaluation failed: %v", err)
	msg := "An error occurred during evaluation by the LLM: " + err.Error()
	return []domain.EvaluationRecord{domain.ErrorRecord(msg)}, err
}

// renderPrompt loads name from store, falling back to the built-in template.
func renderPrompt(store driven.PromptStore, name string, data any) (string, error) {
	tmpl := ""
	if store != nil {
		loaded, err := store.Load(name)
		if err != nil {
			logger.Warn("Failed to load prompt %q, using default: %v", name, err)
		} else {
			tmpl = loaded
		}
	}
	if tmpl == "" {
		def, ok := prompts.Default(name)
		if !ok {
			return "", fmt.Errorf("no template for prompt %q", name)
		}
		tmpl = def
	}
	return prompts.Render(name, tmpl, data)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
