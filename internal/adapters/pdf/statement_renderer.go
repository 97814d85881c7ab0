// Package pdf renders statements as PDF documents with gofpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/phpdave11/gofpdf"
)

// ContentType is the MIME type of rendered statements.
const ContentType = "application/pdf"

const (
	rowHeight    = 8.0
	pageBreakY   = 270.0
	maxDescChars = 60
)

var (
	columnWidths  = []float64{28, 70, 28, 28, 28}
	columnHeaders = []string{"Date", "Description", "Credit", "Debit", "Balance"}
	columnAligns  = []string{"C", "L", "R", "R", "R"}
)

// StatementRenderer lays out a ledger table on A4 pages.
type StatementRenderer struct {
	compress bool
}

// Option configures a StatementRenderer.
type Option func(*StatementRenderer)

// WithCompression toggles stream compression of the generated PDF.
func WithCompression(enabled bool) Option {
	return func(r *StatementRenderer) {
		r.compress = enabled
	}
}

// NewStatementRenderer creates a renderer. Output is compressed by default.
func NewStatementRenderer(options ...Option) *StatementRenderer {
	r := &StatementRenderer{compress: true}
	for _, option := range options {
		option(r)
	}
	return r
}

var _ ports.StatementRenderer = (*StatementRenderer)(nil)

// ContentType returns the MIME type of the rendered output.
func (r *StatementRenderer) ContentType() string {
	return ContentType
}

// RenderStatement draws the title, the ledger rows and a totals footer. The
// table header is repeated on every page.
func (r *StatementRenderer) RenderStatement(ctx context.Context, doc domain.StatementDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(doc.Title, true)
	if !doc.GeneratedAt.IsZero() {
		pdf.SetCreationDate(doc.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	if doc.Period != "" {
		pdf.Cell(0, 6, "Period: "+doc.Period)
		pdf.Ln(5)
	}
	if !doc.GeneratedAt.IsZero() {
		pdf.Cell(0, 6, "Generated: "+doc.GeneratedAt.Format(time.RFC1123))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetDrawColor(200, 200, 200)
	writeHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)
	for _, row := range doc.Rows {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			writeHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(30, 30, 30)
		}
		cells := []string{
			row.Date.String(),
			tr(trimTo(row.Description, maxDescChars)),
			utils.FormatOptionalAmount(row.Credit),
			utils.FormatOptionalAmount(row.Debit),
			utils.FormatAmount(row.RunningBalance),
		}
		writeRow(pdf, cells, false)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(columnWidths[0]+columnWidths[1], rowHeight, "Totals", "1", 0, "L", true, 0, "")
	pdf.CellFormat(columnWidths[2], rowHeight, utils.FormatAmount(doc.Totals.TotalCredit), "1", 0, "R", true, 0, "")
	pdf.CellFormat(columnWidths[3], rowHeight, utils.FormatAmount(doc.Totals.TotalDebit), "1", 0, "R", true, 0, "")
	pdf.CellFormat(columnWidths[4], rowHeight, "", "1", 1, "R", true, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout statement: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf build failed: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	writeRow(pdf, columnHeaders, true)
}

func writeRow(pdf *gofpdf.Fpdf, cells []string, fill bool) {
	last := len(cells) - 1
	for i, text := range cells {
		ln := 0
		if i == last {
			ln = 1
		}
		pdf.CellFormat(columnWidths[i], rowHeight, text, "1", ln, columnAligns[i], fill, 0, "")
	}
}

func trimTo(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
