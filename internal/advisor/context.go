package advisor

import (
	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

// Context is the spending snapshot a response is generated from.
type Context struct {
	Budget        decimal.Decimal
	Spent         decimal.Decimal
	Remaining     decimal.Decimal
	Categories    []analysis.CategoryShare // Largest first
	Micro         analysis.MicroSpendSummary
	DaysLeft      int
	TotalExpenses int
}

// NewContext computes a snapshot from the current expenses and budget.
func NewContext(expenses []model.Expense, budget decimal.Decimal, engine *analysis.Engine) Context {
	spent := analysis.TotalSpent(expenses)
	return Context{
		Budget:        budget,
		Spent:         spent,
		Remaining:     budget.Sub(spent),
		Categories:    analysis.CategoryShares(expenses),
		Micro:         analysis.MicroSpends(expenses),
		DaysLeft:      engine.DaysLeftInMonth(),
		TotalExpenses: len(expenses),
	}
}

// TopCategory returns the largest category's label and total, or "None"
// and zero when nothing has been spent.
func (c Context) TopCategory() (label string, total decimal.Decimal) {
	if len(c.Categories) == 0 {
		return "None", decimal.Zero
	}
	top := c.Categories[0]
	return top.Info.Label, top.Total
}

// Category returns the share for code, if any was spent on it.
func (c Context) Category(code model.CategoryCode) (analysis.CategoryShare, bool) {
	for _, s := range c.Categories {
		if s.Info.Code == code {
			return s, true
		}
	}
	return analysis.CategoryShare{}, false
}
