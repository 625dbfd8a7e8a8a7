// Package pdf renders audit results as an A4 PDF report.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.DocumentRenderer = (*Renderer)(nil)

const (
	title          = "TNFD Report Evaluation"
	overallHeading = "Overall Assessment"
	detailHeading  = "Detailed Evaluation"

	coreFont    = "Helvetica"
	bodySize    = 10.0
	lineHeight  = 14.0
	cellPadding = 4.0
	headerExtra = 12.0
	gridWidth   = 1.0
)

var (
	columnHeaders = []string{"Item", "Score", "Good Points", "Improvements", "Reference"}
	columnWidths  = []float64{60, 40, 120, 120, 120}

	headerFill = [3]int{128, 128, 128}
	headerText = [3]int{245, 245, 245}
	bodyFill   = [3]int{245, 245, 220}
)

// Renderer draws the report with fpdf.
type Renderer struct {
	settings domain.RenderSettings
}

// New creates a renderer. An empty FontPath uses the built-in Helvetica,
// which only covers Windows-1252 text.
func New(settings domain.RenderSettings) *Renderer {
	if settings.FontFamily == "" {
		settings.FontFamily = domain.DefaultAppSettings().Render.FontFamily
	}
	return &Renderer{settings: settings}
}

// ContentType returns the MIME type of the rendered bytes.
func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Render returns the PDF bytes for result.
// A panic inside fpdf is reported as ErrRenderFailed.
func (r *Renderer) Render(ctx context.Context, result *domain.AuditResult) (out []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domain.ErrInvalidInput
	}

	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("%w: panic: %v", domain.ErrRenderFailed, p)
		}
	}()

	doc := fpdf.New("P", "pt", "A4", "")
	family, tr := r.setupFont(doc)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	w := &writer{doc: doc, family: family, tr: tr, core: r.settings.FontPath == ""}
	doc.SetAutoPageBreak(true, 56)
	doc.AddPage()

	w.heading(title, 18)
	doc.Ln(12)

	w.heading(overallHeading, 14)
	summary := result.Synthesis.SummaryComment
	if strings.TrimSpace(summary) == "" {
		summary = "N/A"
	}
	w.paragraphs(summary)
	doc.Ln(24)

	w.heading(detailHeading, 14)
	w.table(result.EvaluationTable)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) setupFont(doc *fpdf.Fpdf) (string, func(string) string) {
	if r.settings.FontPath == "" {
		return coreFont, doc.UnicodeTranslatorFromDescriptor("")
	}
	doc.AddUTF8Font(r.settings.FontFamily, "", r.settings.FontPath)
	return r.settings.FontFamily, func(s string) string { return s }
}

// writer carries the document and font state while drawing.
type writer struct {
	doc    *fpdf.Fpdf
	family string
	tr     func(string) string

	// core is set for the built-in font, whose translated text is
	// single-byte cp1252 rather than UTF-8.
	core bool
}

func (w *writer) heading(text string, size float64) {
	w.doc.SetFont(w.family, "", size)
	w.doc.SetTextColor(0, 0, 0)
	w.doc.CellFormat(0, size*1.4, w.tr(text), "", 1, "L", false, 0, "")
	w.doc.Ln(4)
}

// paragraphs writes one paragraph per line of text.
func (w *writer) paragraphs(text string) {
	w.doc.SetFont(w.family, "", bodySize)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			w.doc.Ln(lineHeight / 2)
			continue
		}
		w.doc.MultiCell(0, lineHeight, w.tr(line), "", "L", false)
	}
}

func (w *writer) table(records []domain.EvaluationRecord) {
	w.doc.SetLineWidth(gridWidth)
	w.doc.SetDrawColor(0, 0, 0)
	w.doc.SetFont(w.family, "", bodySize)

	w.header()
	for _, rec := range records {
		w.row([]string{rec.Item, rec.Score, rec.GoodPoint, rec.ImprovementPoint, rec.Reference})
	}
}

func (w *writer) header() {
	w.doc.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	w.doc.SetTextColor(headerText[0], headerText[1], headerText[2])
	w.drawRow(columnHeaders, headerExtra)
}

func (w *writer) row(cells []string) {
	lines := w.split(cells)
	height := rowHeight(lines, 0)

	_, pageHeight := w.doc.GetPageSize()
	_, _, _, bottom := w.doc.GetMargins()
	if w.doc.GetY()+height > pageHeight-bottom {
		w.doc.AddPage()
		w.header()
	}

	w.doc.SetFillColor(bodyFill[0], bodyFill[1], bodyFill[2])
	w.doc.SetTextColor(0, 0, 0)
	w.drawLines(lines, 0)
}

func (w *writer) drawRow(cells []string, extra float64) {
	w.drawLines(w.split(cells), extra)
}

// drawLines draws one filled, gridded row with centred text.
func (w *writer) drawLines(lines [][]string, extra float64) {
	height := rowHeight(lines, extra)
	left, _, _, _ := w.doc.GetMargins()
	x, y := left, w.doc.GetY()

	for i, cell := range lines {
		width := columnWidths[i]
		w.doc.Rect(x, y, width, height, "FD")

		top := y + (height-float64(len(cell))*lineHeight)/2
		for j, line := range cell {
			w.doc.SetXY(x+cellPadding, top+float64(j)*lineHeight)
			w.doc.CellFormat(width-2*cellPadding, lineHeight, line, "", 0, "C", false, 0, "")
		}
		x += width
	}
	w.doc.SetXY(left, y+height)
}

func (w *writer) split(cells []string) [][]string {
	out := make([][]string, len(cells))
	for i, cell := range cells {
		text := w.tr(cell)
		if text == "" {
			out[i] = []string{""}
			continue
		}
		out[i] = w.wrap(text, columnWidths[i]-2*cellPadding)
	}
	return out
}

// wrap breaks text into lines no wider than width.
func (w *writer) wrap(text string, width float64) []string {
	if !w.core {
		return w.doc.SplitText(text, width)
	}
	var lines []string
	for _, line := range w.doc.SplitLines([]byte(text), width) {
		lines = append(lines, string(line))
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func rowHeight(lines [][]string, extra float64) float64 {
	n := 1
	for _, cell := range lines {
		if len(cell) > n {
			n = len(cell)
		}
	}
	return float64(n)*lineHeight + 2*cellPadding + extra
}
