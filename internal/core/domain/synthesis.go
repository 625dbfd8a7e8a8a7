package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CategoryAverage is the mean score of one classification.
type CategoryAverage struct {
	Classification string
	Average        float64
}

// CategoryAverages keeps per-classification averages in first-seen order.
// It marshals to a JSON object whose keys preserve that order.
type CategoryAverages []CategoryAverage

// Get returns the average for a classification.
func (a CategoryAverages) Get(classification string) (float64, bool) {
	for _, c := range a {
		if c.Classification == classification {
			return c.Average, true
		}
	}
	return 0, false
}

// Map returns the averages as an unordered map.
func (a CategoryAverages) Map() map[string]float64 {
	m := make(map[string]float64, len(a))
	for _, c := range a {
		m[c.Classification] = c.Average
	}
	return m
}

// MarshalJSON writes the averages as an ordered JSON object.
// Keys are written without HTML escaping so "Metrics & Targets" stays readable.
func (a CategoryAverages) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, c := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(c.Classification); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(c.Average); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndentUnescaped is json.MarshalIndent without HTML escaping.
// json.Marshal escapes the output of MarshalJSON methods too, so callers that
// show JSON to people or models use this instead.
func MarshalIndentUnescaped(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON reads an object written by MarshalJSON, keeping key order.
func (a *CategoryAverages) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category averages: expected object: %w", ErrInvalidInput)
	}

	out := CategoryAverages{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("category averages: expected key: %w", ErrInvalidInput)
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = append(out, CategoryAverage{Classification: key, Average: v})
	}
	*a = out
	return nil
}

// SynthesisResult aggregates the evaluation table.
// Averages are deterministic; the narrative is generative.
type SynthesisResult struct {
	// AverageScores maps classification to mean score in first-seen order.
	AverageScores CategoryAverages `json:"average_scores"`

	// OverallAverage is the mean of all parsable scores, 0 if none parsed.
	OverallAverage float64 `json:"overall_average"`

	// SummaryComment is the strengths/weaknesses/action plan narrative,
	// or an error description.
	SummaryComment string `json:"summary_comment"`
}

// ChartData is the radar chart shape: index-aligned labels and values.
type ChartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}
