package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// synthesisPromptData is the template data for driven.PromptSynthesis.
type synthesisPromptData struct {
	OverallAverage string
	Averages       string
}

// Synthesizer aggregates evaluation scores and asks the LLM for a narrative.
type Synthesizer struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewSynthesizer creates a synthesizer.
// promptStore may be nil, in which case the built-in template is used.
func NewSynthesizer(llm driven.LLMService, promptStore driven.PromptStore) *Synthesizer {
	return &Synthesizer{llm: llm, prompts: promptStore}
}

// Synthesize computes the averages and generates the summary comment.
// Averages are always returned. When the narrative cannot be generated the
// summary comment describes the error, and the error is returned alongside.
func (s *Synthesizer) Synthesize(ctx context.Context, records []domain.EvaluationRecord) (domain.SynthesisResult, error) {
	averages, overall := AverageScores(records)
	result := domain.SynthesisResult{
		AverageScores:  averages,
		OverallAverage: overall,
	}
	logger.Debug("Overall average %.2f across %d classifications", overall, len(averages))

	summary, err := s.summarise(ctx, averages, overall)
	if err != nil {
		logger.Warn("Summary generation failed: %v", err)
		result.SummaryComment = "An error occurred while generating the summary comment: " + err.Error()
		return result, err
	}

	result.SummaryComment = CleanMarkdown(summary)
	return result, nil
}

func (s *Synthesizer) summarise(ctx context.Context, averages domain.CategoryAverages, overall float64) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	encoded, err := domain.MarshalIndentUnescaped(averages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode averages: %w", err)
	}

	prompt, err := renderPrompt(s.prompts, driven.PromptSynthesis, synthesisPromptData{
		OverallAverage: fmt.Sprintf("%.2f", overall),
		Averages:       string(encoded),
	})
	if err != nil {
		return "", err
	}

	return s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
}

// AverageScores groups parsable scores by classification in first-seen order
// and returns the per-classification means and the overall mean.
// Records whose score does not parse are skipped entirely.
func AverageScores(records []domain.EvaluationRecord) (domain.CategoryAverages, float64) {
	type bucket struct {
		sum   float64
		count int
	}

	var order []string
	buckets := make(map[string]*bucket)
	var total float64
	var count int

	for _, r := range records {
		score, ok := r.NumericScore()
		if !ok {
			logger.Debug("Skipping unparsable score %q for %q", r.Score, r.Key())
			continue
		}
		b, exists := buckets[r.Classification]
		if !exists {
			b = &bucket{}
			buckets[r.Classification] = b
			order = append(order, r.Classification)
		}
		b.sum += score
		b.count++
		total += score
		count++
	}

	averages := make(domain.CategoryAverages, 0, len(order))
	for _, c := range order {
		b := buckets[c]
		averages = append(averages, domain.CategoryAverage{
			Classification: c,
			Average:        b.sum / float64(b.count),
		})
	}

	if count == 0 {
		return averages, 0
	}
	return averages, total / float64(count)
}
