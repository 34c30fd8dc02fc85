package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
)

// ExportHeader is the first row of an expense export.
var ExportHeader = []string{"Date", "Category", "Amount", "Note", "Is Micro-Spend"}

// ExportDateLayout renders dates day-first without padding, e.g. 5/3/2024.
const ExportDateLayout = "2/1/2006"

// ExportRows returns the header and one row per expense in insertion order.
// ok is false when there is nothing to export.
func ExportRows(expenses []model.Expense) (rows [][]string, ok bool) {
	if len(expenses) == 0 {
		return nil, false
	}
	rows = make([][]string, 0, len(expenses)+1)
	rows = append(rows, ExportHeader)
	for _, e := range expenses {
		micro := "No"
		if e.IsMicroSpend() {
			micro = "Yes"
		}
		rows = append(rows, []string{
			e.Date.Format(ExportDateLayout),
			string(e.Category),
			e.Amount.String(),
			e.Note,
			micro,
		})
	}
	return rows, true
}

// WriteCSV writes the export as CSV. The header is written bare and every
// data field is double-quoted. written is false, and nothing is written,
// when there are no expenses.
func WriteCSV(w io.Writer, expenses []model.Expense) (written bool, err error) {
	rows, ok := ExportRows(expenses)
	if !ok {
		return false, nil
	}

	var b strings.Builder
	b.WriteString(strings.Join(rows[0], ","))
	for _, row := range rows[1:] {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteField(field))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return false, fmt.Errorf("failed to write csv: %w", err)
	}
	return true, nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
