package sheets

import (
	"fmt"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/anoushkasinn/Spend.Sense/internal/service"
)

// expenseColumns mirrors the CSV export header.
var expenseColumns = analysis.ExportHeader

// reportLayout is the cell grid of a report plus the row ranges that get
// special formatting. Ranges are zero-based and end-exclusive.
type reportLayout struct {
	Values        [][]any
	SectionRows   []int
	SummaryStart  int
	SummaryEnd    int
	CategoryStart int
	CategoryEnd   int
	ExpenseStart  int
}

func formatRange(r service.DateRange) string {
	if r.Start.IsZero() {
		return "No expenses"
	}
	return fmt.Sprintf("%s - %s", r.Start.Format("2 Jan 2006"), r.End.Format("2 Jan 2006"))
}

// prepareReportData lays out the summary block, the category breakdown and
// the expense rows.
func prepareReportData(report *service.ExpenseReport) reportLayout {
	s := report.Summary
	var l reportLayout
	section := func(cells ...any) {
		l.SectionRows = append(l.SectionRows, len(l.Values))
		l.Values = append(l.Values, cells)
	}

	l.Values = append(l.Values,
		[]any{"SpendSense Expense Report", formatRange(s.DateRange)},
		[]any{"Generated", report.GeneratedAt.Format("2 Jan 2006 15:04")},
		[]any{},
	)

	section("Summary")
	l.SummaryStart = len(l.Values)
	l.Values = append(l.Values,
		[]any{"Monthly Budget", s.Budget.InexactFloat64()},
		[]any{"Spent", s.Spent.InexactFloat64()},
		[]any{"Remaining", s.Remaining.InexactFloat64()},
		[]any{"Micro-spends", s.MicroAmount.InexactFloat64(), fmt.Sprintf("%d purchases under ₹100", s.MicroCount)},
	)
	l.SummaryEnd = len(l.Values)
	l.Values = append(l.Values, []any{"Status", s.Status}, []any{})

	section("Category Breakdown")
	section("Category", "Count", "Amount", "Share")
	l.CategoryStart = len(l.Values)
	for _, c := range s.ByCategory {
		l.Values = append(l.Values, []any{
			c.Label,
			c.Count,
			c.Amount.InexactFloat64(),
			c.Percent.StringFixed(1) + "%",
		})
	}
	l.CategoryEnd = len(l.Values)
	l.Values = append(l.Values, []any{})

	section("Expenses")
	if len(report.Rows) > 0 {
		l.SectionRows = append(l.SectionRows, len(l.Values))
	}
	l.ExpenseStart = len(l.Values) + 1
	for _, row := range report.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			// A leading apostrophe keeps notes like "=SUM" from being
			// evaluated as formulas under USER_ENTERED.
			if strings.HasPrefix(v, "=") || strings.HasPrefix(v, "+") {
				v = "'" + v
			}
			cells[i] = v
		}
		l.Values = append(l.Values, cells)
	}
	return l
}
