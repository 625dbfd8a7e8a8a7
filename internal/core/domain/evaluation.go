package domain

import (
	"math"
	"strconv"
	"strings"
)

// MaxScore is the upper bound of the scoring scale.
const MaxScore = 5.0

// EvaluationRecord is the model's assessment of one criterion.
// Records are immutable once produced.
type EvaluationRecord struct {
	// Classification is the pillar label returned by the model.
	Classification string `json:"classification"`

	// Item is the criterion sub-label returned by the model.
	Item string `json:"item"`

	// Score is formatted as "X.X/5.0".
	Score string `json:"score"`

	// GoodPoint describes what the report does well.
	GoodPoint string `json:"good_point"`

	// ImprovementPoint describes what is missing or weak.
	ImprovementPoint string `json:"improvement_point"`

	// Reference is a free-text citation label chosen by the model.
	// It is display text only and is never matched against Citation records.
	Reference string `json:"reference"`
}

// Key returns the classification/item pair used for catalogue lookups.
func (r EvaluationRecord) Key() string {
	return strings.TrimSpace(r.Classification) + " - " + strings.TrimSpace(r.Item)
}

// NumericScore parses the record's score. See ParseScore.
func (r EvaluationRecord) NumericScore() (float64, bool) {
	return ParseScore(r.Score)
}

// ParseScore returns the numeric part preceding "/" in a score string.
// It reports false when the separator is missing or the value is not a finite number.
func ParseScore(score string) (float64, bool) {
	head, _, found := strings.Cut(score, "/")
	if !found {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(head), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ErrorRecord builds the synthetic record that replaces a failed evaluation.
func ErrorRecord(message string) EvaluationRecord {
	return EvaluationRecord{
		Classification:   ClassificationError,
		Item:             "evaluation error",
		Score:            "0/5.0",
		GoodPoint:        "N/A",
		ImprovementPoint: message,
		Reference:        "N/A",
	}
}

// Coverage compares evaluation records against the criterion catalogue.
// Records are never dropped or reordered; this only reports discrepancies.
type Coverage struct {
	// Missing lists catalogue criteria with no matching record.
	Missing []string `json:"missing,omitempty"`

	// Duplicates lists criteria that appear more than once.
	Duplicates []string `json:"duplicates,omitempty"`

	// Unknown lists records that match no catalogue criterion.
	Unknown []string `json:"unknown,omitempty"`
}

// Complete reports whether every criterion appears exactly once with nothing extra.
func (c Coverage) Complete() bool {
	return len(c.Missing) == 0 && len(c.Duplicates) == 0 && len(c.Unknown) == 0
}

// CheckCoverage reconciles records against the catalogue.
// Matching ignores case and surrounding whitespace.
func CheckCoverage(records []EvaluationRecord) Coverage {
	known := make(map[string]string, len(catalogue))
	for _, c := range catalogue {
		known[strings.ToLower(c.Key())] = c.Key()
	}

	var cov Coverage
	seen := make(map[string]int, len(records))
	for _, r := range records {
		k := strings.ToLower(r.Key())
		if _, ok := known[k]; !ok {
			cov.Unknown = append(cov.Unknown, r.Key())
			continue
		}
		seen[k]++
		if seen[k] == 2 {
			cov.Duplicates = append(cov.Duplicates, known[k])
		}
	}

	for _, c := range catalogue {
		if seen[strings.ToLower(c.Key())] == 0 {
			cov.Missing = append(cov.Missing, c.Key())
		}
	}
	return cov
}
