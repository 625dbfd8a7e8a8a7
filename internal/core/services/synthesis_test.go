package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

func TestAverageScores(t *testing.T) {
	tests := []struct {
		name        string
		records     []domain.EvaluationRecord
		wantAverage domain.CategoryAverages
		wantOverall float64
	}{
		{
			name: "unparsable score skipped",
			records: []domain.EvaluationRecord{
				{Classification: "Governance", Score: "4.0/5.0"},
				{Classification: "Governance", Score: "3.0/5.0"},
				{Classification: "Governance", Score: "bad"},
			},
			wantAverage: domain.CategoryAverages{{Classification: "Governance", Average: 3.5}},
			wantOverall: 3.5,
		},
		{
			name: "first-seen order",
			records: []domain.EvaluationRecord{
				{Classification: "Strategy", Score: "2.0/5.0"},
				{Classification: "Governance", Score: "4.0/5.0"},
				{Classification: "Strategy", Score: "3.0/5.0"},
			},
			wantAverage: domain.CategoryAverages{
				{Classification: "Strategy", Average: 2.5},
				{Classification: "Governance", Average: 4.0},
			},
			wantOverall: 3.0,
		},
		{
			name:        "no records",
			records:     nil,
			wantAverage: domain.CategoryAverages{},
			wantOverall: 0,
		},
		{
			name: "nothing parsable",
			records: []domain.EvaluationRecord{
				{Classification: "Strategy", Score: "N/A"},
			},
			wantAverage: domain.CategoryAverages{},
			wantOverall: 0,
		},
		{
			name: "non-finite scores skipped",
			records: []domain.EvaluationRecord{
				{Classification: "Strategy", Score: "NaN/5.0"},
				{Classification: "Strategy", Score: "Inf/5.0"},
				{Classification: "Strategy", Score: "-Infinity/5.0"},
				{Classification: "Strategy", Score: "2.0/5.0"},
			},
			wantAverage: domain.CategoryAverages{{Classification: "Strategy", Average: 2.0}},
			wantOverall: 2.0,
		},
		{
			name:        "error record counts as zero",
			records:     []domain.EvaluationRecord{domain.ErrorRecord("boom")},
			wantAverage: domain.CategoryAverages{{Classification: "error", Average: 0}},
			wantOverall: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			averages, overall := AverageScores(tt.records)

			assert.Equal(t, tt.wantAverage, averages)
			assert.InDelta(t, tt.wantOverall, overall, 1e-9)
		})
	}
}

func TestSynthesizer_Synthesize(t *testing.T) {
	llm := &mockLLM{responses: []string{"### 📈 **Overall Strengths**\nStrong governance."}}
	s := NewSynthesizer(llm, nil)

	result, err := s.Synthesize(context.Background(), []domain.EvaluationRecord{
		{Classification: "Governance", Score: "4.0/5.0"},
		{Classification: "Strategy", Score: "3.0/5.0"},
	})

	require.NoError(t, err)
	assert.InDelta(t, 3.5, result.OverallAverage, 1e-9)
	assert.Len(t, result.AverageScores, 2)
	assert.Equal(t, "Overall Strengths\nStrong governance.", result.SummaryComment)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Overall average: 3.50 / 5.0")
	assert.Contains(t, llm.prompts[0], `"Governance": 4`)
	assert.Contains(t, llm.prompts[0], `"Strategy": 3`)
}

func TestSynthesizer_Synthesize_PromptKeepsAmpersands(t *testing.T) {
	llm := &mockLLM{responses: []string{"summary"}}
	s := NewSynthesizer(llm, nil)

	_, err := s.Synthesize(context.Background(), []domain.EvaluationRecord{
		{Classification: "Risk & Impact Management", Score: "3.0/5.0"},
		{Classification: "Metrics & Targets", Score: "2.0/5.0"},
	})

	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], `"Risk & Impact Management": 3`)
	assert.Contains(t, llm.prompts[0], `"Metrics & Targets": 2`)
	assert.NotContains(t, llm.prompts[0], `\u0026`)
}

func TestSynthesizer_Synthesize_BackendError(t *testing.T) {
	s := NewSynthesizer(&mockLLM{err: errors.New("timeout")}, nil)

	result, err := s.Synthesize(context.Background(), []domain.EvaluationRecord{
		{Classification: "Governance", Score: "2.0/5.0"},
	})

	require.Error(t, err)
	assert.Equal(t, "An error occurred while generating the summary comment: timeout", result.SummaryComment)
	avg, ok := result.AverageScores.Get("Governance")
	assert.True(t, ok)
	assert.InDelta(t, 2.0, avg, 1e-9)
	assert.InDelta(t, 2.0, result.OverallAverage, 1e-9)
}

func TestSynthesizer_Synthesize_NoLLM(t *testing.T) {
	s := NewSynthesizer(nil, nil)

	result, err := s.Synthesize(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, result.SummaryComment, "An error occurred while generating the summary comment:")
}
