package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// RenderSummary formats an audit result as averages, the evaluation table and
// the narrative. Styles degrade to plain text when stdout is not a terminal.
func RenderSummary(result *domain.AuditResult, s *styles.Styles) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	var b strings.Builder

	b.WriteString(s.Subtitle.Render("Category Averages"))
	b.WriteString("\n")
	b.WriteString(averagesTable(result.Synthesis, s))
	b.WriteString("\n\n")

	b.WriteString(s.Subtitle.Render("Detailed Evaluation"))
	b.WriteString("\n")
	b.WriteString(evaluationTable(result.EvaluationTable, s))
	b.WriteString("\n\n")

	if result.Synthesis.SummaryComment != "" {
		b.WriteString(s.Subtitle.Render("Overall Assessment"))
		b.WriteString("\n")
		b.WriteString(s.Normal.Render(result.Synthesis.SummaryComment))
		b.WriteString("\n\n")
	}

	if missing := result.Coverage.Missing; len(missing) > 0 {
		b.WriteString(s.Warning.Render(fmt.Sprintf("Not evaluated: %s", strings.Join(missing, "; "))))
		b.WriteString("\n")
	}
	if len(result.Degraded) > 0 {
		names := make([]string, len(result.Degraded))
		for i, d := range result.Degraded {
			names[i] = d.String()
		}
		b.WriteString(s.Warning.Render("Degraded sections: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

func averagesTable(synthesis domain.SynthesisResult, s *styles.Styles) string {
	rows := make([][]string, 0, len(synthesis.AverageScores)+1)
	for _, avg := range synthesis.AverageScores {
		rows = append(rows, []string{avg.Classification, fmt.Sprintf("%.2f", avg.Average)})
	}
	rows = append(rows, []string{"Overall", fmt.Sprintf("%.2f", synthesis.OverallAverage)})
	overall := len(rows) - 1

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Theme().Border)).
		Headers("Classification", "Average").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.TableHeader
			case row == overall:
				return s.TableCell.Bold(true)
			case col == 1:
				return scoreCell(rows[row][1], s)
			default:
				return s.TableCell
			}
		}).
		Render()
}

func evaluationTable(records []domain.EvaluationRecord, s *styles.Styles) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Classification, r.Item, r.Score}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Theme().Border)).
		Headers("Classification", "Item", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.TableHeader
			case col == 2:
				return scoreCell(rows[row][2], s)
			default:
				return s.TableCell
			}
		}).
		Render()
}

func scoreCell(score string, s *styles.Styles) lipgloss.Style {
	value, ok := domain.ParseScore(score)
	if !ok {
		return s.TableCell
	}
	return s.TableCell.Foreground(s.Score(value).GetForeground())
}
