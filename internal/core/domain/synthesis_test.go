package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAverages_MarshalPreservesOrder(t *testing.T) {
	avgs := CategoryAverages{
		{Classification: "Strategy", Average: 3.5},
		{Classification: "Governance", Average: 4},
		{Classification: "Metrics & Targets", Average: 2.25},
	}

	data, err := avgs.MarshalJSON()

	require.NoError(t, err)
	assert.Equal(t, `{"Strategy":3.5,"Governance":4,"Metrics & Targets":2.25}`, string(data))
}

func TestMarshalIndentUnescaped(t *testing.T) {
	avgs := CategoryAverages{
		{Classification: "Risk & Impact Management", Average: 3},
		{Classification: "Metrics & Targets", Average: 2.5},
	}

	data, err := MarshalIndentUnescaped(avgs, "", "  ")

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Risk & Impact Management\": 3,\n  \"Metrics & Targets\": 2.5\n}", string(data))
}

func TestMarshalIndentUnescaped_NestedAverages(t *testing.T) {
	result := SynthesisResult{
		AverageScores: CategoryAverages{{Classification: "Metrics & Targets", Average: 2}},
	}

	data, err := MarshalIndentUnescaped(result, "", "")

	require.NoError(t, err)
	assert.Contains(t, string(data), `"Metrics & Targets":2`)
	assert.NotContains(t, string(data), `\u0026`)
}

func TestCategoryAverages_MarshalRejectsNaN(t *testing.T) {
	_, err := CategoryAverages{{Classification: "x", Average: math.NaN()}}.MarshalJSON()

	assert.Error(t, err)
}

func TestCategoryAverages_MarshalNil(t *testing.T) {
	var s SynthesisResult

	data, err := json.Marshal(s)

	require.NoError(t, err)
	assert.Contains(t, string(data), `"average_scores":{}`)
}

func TestCategoryAverages_UnmarshalPreservesOrder(t *testing.T) {
	var avgs CategoryAverages

	err := json.Unmarshal([]byte(`{"b":1.5,"a":2,"c":0}`), &avgs)

	require.NoError(t, err)
	require.Len(t, avgs, 3)
	assert.Equal(t, "b", avgs[0].Classification)
	assert.Equal(t, "a", avgs[1].Classification)
	assert.Equal(t, "c", avgs[2].Classification)
	assert.Equal(t, 2.0, avgs[1].Average)
}

func TestCategoryAverages_UnmarshalRejectsArray(t *testing.T) {
	var avgs CategoryAverages
	err := json.Unmarshal([]byte(`[1,2]`), &avgs)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCategoryAverages_GetAndMap(t *testing.T) {
	avgs := CategoryAverages{{Classification: "A", Average: 1}}

	v, ok := avgs.Get("A")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = avgs.Get("B")
	assert.False(t, ok)

	assert.Equal(t, map[string]float64{"A": 1}, avgs.Map())
}

func TestAuditResult_IsDegraded(t *testing.T) {
	r := &AuditResult{Degraded: []Section{SectionRetrieval}}

	assert.True(t, r.IsDegraded(SectionRetrieval))
	assert.False(t, r.IsDegraded(SectionRender))
}

func TestAuditRequest_Empty(t *testing.T) {
	assert.True(t, AuditRequest{}.Empty())
	assert.True(t, AuditRequest{FileName: "x.pdf"}.Empty())
	assert.False(t, AuditRequest{ReportText: "text"}.Empty())
	assert.True(t, AuditRequest{FileContent: []byte("x"), FileName: "x.txt"}.HasFile())
}
