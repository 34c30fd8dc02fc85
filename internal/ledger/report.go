package ledger

import (
	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/anoushkasinn/Spend.Sense/internal/service"
)

// ExpenseReport assembles the data handed to the PDF and Sheets exporters.
func (l *Ledger) ExpenseReport() *service.ExpenseReport {
	expenses := l.expenses.List()
	budget := l.Budget()
	overview := l.engine.Overview(expenses, budget)
	micro := analysis.MicroSpends(expenses)

	summary := service.ReportSummary{
		DateRange:   dateRange(expenses),
		Status:      overview.Status.Message,
		Budget:      budget,
		Spent:       overview.Spent,
		Remaining:   overview.Remaining,
		MicroAmount: micro.Total,
		MicroCount:  micro.Count,
	}
	for _, share := range analysis.CategoryShares(expenses) {
		summary.ByCategory = append(summary.ByCategory, service.CategorySummary{
			Label:   share.Info.Label,
			Amount:  share.Total,
			Percent: share.Percent,
			Count:   share.Count,
		})
	}

	rows, ok := analysis.ExportRows(expenses)
	if !ok {
		rows = [][]string{analysis.ExportHeader}
	}

	return &service.ExpenseReport{
		GeneratedAt: l.now(),
		Summary:     summary,
		Rows:        rows,
	}
}

func dateRange(expenses []model.Expense) service.DateRange {
	var r service.DateRange
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		if r.Start.IsZero() || e.Date.Before(r.Start) {
			r.Start = e.Date.Time
		}
		if e.Date.After(r.End) {
			r.End = e.Date.Time
		}
	}
	return r
}
