// Package analysis computes spending aggregates over a snapshot of expenses.
// Nothing here caches: every call reflects exactly the slice it is given.
package analysis

import (
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

// Status is a budget status tier.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusRisk    Status = "risk"
	// StatusNoData is reported when there is no positive budget to compare
	// against.
	StatusNoData Status = "no_data"
)

// Tier boundaries, in percent of budget, inclusive.
var (
	SafeLimit    = decimal.NewFromInt(70)
	WarningLimit = decimal.NewFromInt(90)
)

// BudgetStatus classifies spending against a budget.
type BudgetStatus struct {
	Status  Status
	Message string
	Color   string
	Percent decimal.Decimal // Zero when Status is StatusNoData
}

// CategoryTotal groups the expenses of one category.
type CategoryTotal struct {
	Category model.CategoryCode
	Expenses []model.Expense
	Total    decimal.Decimal
	Count    int
}

// CategoryShare is a category total with its share of all spending.
type CategoryShare struct {
	Info    model.CategoryDefinition
	Total   decimal.Decimal
	Percent decimal.Decimal
	Count   int
}

// MicroSpendSummary collects the expenses below the micro-spend threshold.
type MicroSpendSummary struct {
	Expenses []model.Expense
	Total    decimal.Decimal
	Count    int
}

// DayTotal is one entry of a trend series.
type DayTotal struct {
	Date   model.Date
	Label  string // Short weekday, e.g. "Mon"
	Amount decimal.Decimal
	Count  int
}

// ISODate returns the entry date as YYYY-MM-DD.
func (d DayTotal) ISODate() string {
	return d.Date.String()
}

// BudgetOverview is the month-to-date budget picture.
type BudgetOverview struct {
	Status         BudgetStatus
	Alert          string
	Budget         decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal // Negative when over budget
	DailyAllowance decimal.Decimal // Zero when nothing is left or the month is over
	AverageDaily   decimal.Decimal
	DaysLeft       int
}

// Report bundles everything the insights views show.
type Report struct {
	Overview       BudgetOverview
	Micro          MicroSpendSummary
	Categories     []CategoryShare
	Trend          []DayTotal
	AverageExpense decimal.Decimal
	Transactions   int
}
