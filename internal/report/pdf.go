// Package report renders expense reports as PDF documents.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/anoushkasinn/Spend.Sense/internal/service"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// ErrNilReport is returned when there is nothing to render.
var ErrNilReport = errors.New("report is nil")

// The core PDF fonts have no rupee glyph.
const rupee = "Rs. "

// expenseWidths are the column widths of the expense table in mm.
var expenseWidths = []float64{28, 32, 32, 70, 28}

func money(d decimal.Decimal) string {
	return rupee + d.StringFixed(2)
}

// BuildMonthlyPDF writes report to w as a one-document PDF.
func BuildMonthlyPDF(w io.Writer, report *service.ExpenseReport) error {
	if report == nil {
		return ErrNilReport
	}
	s := report.Summary

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SpendSense Expense Report", false)
	pdf.SetCreator("SpendSense", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SpendSense Expense Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	period := "No expenses recorded"
	if !s.DateRange.Start.IsZero() {
		period = fmt.Sprintf("%s to %s", s.DateRange.Start.Format("2 Jan 2006"), s.DateRange.End.Format("2 Jan 2006"))
	}
	pdf.Cell(0, 8, "Period: "+period)
	pdf.Ln(6)
	pdf.Cell(0, 8, "Generated: "+report.GeneratedAt.Format("2 Jan 2006 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Spent: "+money(s.Spent)+" of "+money(s.Budget))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Remaining: "+money(s.Remaining))
	pdf.Ln(7)
	pdf.MultiCell(0, 7, tr("Status: "+s.Status), "", "L", false)
	pdf.Cell(0, 7, fmt.Sprintf("Micro-spends: %d purchases totalling %s", s.MicroCount, money(s.MicroAmount)))
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Category Breakdown")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(70, 7, "Category")
	pdf.Cell(20, 7, "Count")
	pdf.Cell(50, 7, "Amount")
	pdf.Cell(30, 7, "%")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	if len(s.ByCategory) == 0 {
		pdf.Cell(0, 7, "No spending yet.")
		pdf.Ln(7)
	}
	for _, c := range s.ByCategory {
		pdf.Cell(70, 7, tr(c.Label))
		pdf.Cell(20, 7, fmt.Sprintf("%d", c.Count))
		pdf.Cell(50, 7, money(c.Amount))
		pdf.Cell(30, 7, c.Percent.StringFixed(1)+"%")
		pdf.Ln(7)
	}

	if len(report.Rows) > 1 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Expenses")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 10)
		writeRow(pdf, tr, report.Rows[0], "B")
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range report.Rows[1:] {
			writeRow(pdf, tr, row, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func writeRow(pdf *gofpdf.Fpdf, tr func(string) string, row []string, border string) {
	for i, cell := range row {
		if i >= len(expenseWidths) {
			break
		}
		if i == 2 && border == "" {
			cell = rupee + cell
		}
		pdf.CellFormat(expenseWidths[i], 6, truncate(tr(cell), 40), border, 0, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// FileWriter writes reports as PDF files. It implements service.ReportWriter.
type FileWriter struct {
	Path string
}

// Write renders report into Path, creating parent directories as needed.
func (f FileWriter) Write(ctx context.Context, report *service.ExpenseReport) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	out, err := os.Create(f.Path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", f.Path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return BuildMonthlyPDF(out, report)
}

var _ service.ReportWriter = FileWriter{}
