package services

import "github.com/custodia-labs/disclosure-auditor/internal/core/domain"

// BuildChart reshapes averages into index-aligned radar chart series.
// Input order is kept; nothing is sorted.
func BuildChart(averages domain.CategoryAverages) domain.ChartData {
	chart := domain.ChartData{
		Labels: make([]string, 0, len(averages)),
		Data:   make([]float64, 0, len(averages)),
	}
	for _, a := range averages {
		chart.Labels = append(chart.Labels, a.Classification)
		chart.Data = append(chart.Data, a.Average)
	}
	return chart
}
