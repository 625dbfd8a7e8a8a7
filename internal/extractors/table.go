package extractors

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders tabular data as a markdown-style text table.
// The first row is the header. A zero-based row index column is prepended,
// and short rows are padded so every row has the header's width.
func RenderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := append([]string{""}, pad(rows[0], width)...)
	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...)

	for i, row := range rows[1:] {
		t.Row(append([]string{strconv.Itoa(i)}, pad(row, width)...)...)
	}
	return t.String()
}

func pad(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
