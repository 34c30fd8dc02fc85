package analysis

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalSpent sums every amount. An empty slice sums to zero.
func TotalSpent(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory groups expenses by category in order of first appearance.
func ByCategory(expenses []model.Expense) []CategoryTotal {
	var groups []CategoryTotal
	index := make(map[model.CategoryCode]int)
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(e.Amount)
		groups[i].Count++
		groups[i].Expenses = append(groups[i].Expenses, e)
	}
	return groups
}

// MicroSpends returns the expenses flagged as micro-spends.
func MicroSpends(expenses []model.Expense) MicroSpendSummary {
	summary := MicroSpendSummary{Total: decimal.Zero}
	for _, e := range expenses {
		if !e.IsMicroSpend() {
			continue
		}
		summary.Expenses = append(summary.Expenses, e)
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++
	}
	return summary
}

// Percent returns part/whole*100. ok is false when whole is zero, in which
// case the result must be shown as "no data".
func Percent(part, whole decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if whole.IsZero() {
		return decimal.Zero, false
	}
	return part.Div(whole).Mul(hundred), true
}

// ClassifyBudget places spent into a status tier. Anything above 90% is risk,
// including overspending. A budget that is not positive yields StatusNoData.
func ClassifyBudget(spent, budget decimal.Decimal) BudgetStatus {
	if !budget.IsPositive() {
		return BudgetStatus{Status: StatusNoData, Message: "Set a budget to track progress", Color: "gray", Percent: decimal.Zero}
	}
	pct, _ := Percent(spent, budget)
	switch {
	case pct.LessThanOrEqual(SafeLimit):
		return BudgetStatus{Status: StatusSafe, Message: "On track!", Color: "green", Percent: pct}
	case pct.LessThanOrEqual(WarningLimit):
		return BudgetStatus{Status: StatusWarning, Message: "Be careful!", Color: "yellow", Percent: pct}
	default:
		return BudgetStatus{Status: StatusRisk, Message: "Over budget!", Color: "red", Percent: pct}
	}
}

// BudgetStatusOf classifies the total of expenses against budget.
func BudgetStatusOf(expenses []model.Expense, budget decimal.Decimal) BudgetStatus {
	return ClassifyBudget(TotalSpent(expenses), budget)
}

// CategoryShares returns per-category totals sorted by total, largest first,
// with each category's share of all spending. Equal totals keep first
// appearance order.
func CategoryShares(expenses []model.Expense) []CategoryShare {
	total := TotalSpent(expenses)
	groups := ByCategory(expenses)
	shares := make([]CategoryShare, 0, len(groups))
	for _, g := range groups {
		pct, _ := Percent(g.Total, total)
		shares = append(shares, CategoryShare{
			Info:    model.CategoryInfo(g.Category),
			Total:   g.Total,
			Count:   g.Count,
			Percent: pct,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Total.GreaterThan(shares[j].Total)
	})
	return shares
}

// TopCategories returns at most n of the largest categories.
func TopCategories(expenses []model.Expense, n int) []CategoryShare {
	shares := CategoryShares(expenses)
	if n >= 0 && len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// AverageExpense returns the mean amount; ok is false for no expenses.
func AverageExpense(expenses []model.Expense) (avg decimal.Decimal, ok bool) {
	if len(expenses) == 0 {
		return decimal.Zero, false
	}
	return TotalSpent(expenses).Div(decimal.NewFromInt(int64(len(expenses)))), true
}

// Engine holds the clock for the date-dependent computations.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine using the wall clock by default.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the current local calendar day.
func (e *Engine) Today() model.Date {
	return model.DateOf(e.now())
}

// Trend yields exactly days entries, oldest first, ending today. Each entry
// sums the expenses whose Date falls in that local calendar day; days with
// no spending are zero. The sequence is computed while ranging, so ranging
// again recomputes it against the clock at that moment.
func (e *Engine) Trend(expenses []model.Expense, days int) iter.Seq[DayTotal] {
	return func(yield func(DayTotal) bool) {
		today := e.Today()
		for i := days - 1; i >= 0; i-- {
			day := today.AddDays(-i)
			start, end := day.Time, day.AddDays(1).Time
			entry := DayTotal{Date: day, Label: day.Format("Mon"), Amount: decimal.Zero}
			for _, exp := range expenses {
				if !exp.Date.Before(start) && exp.Date.Before(end) {
					entry.Amount = entry.Amount.Add(exp.Amount)
					entry.Count++
				}
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// TrendSlice collects Trend into a slice.
func (e *Engine) TrendSlice(expenses []model.Expense, days int) []DayTotal {
	return slices.Collect(e.Trend(expenses, days))
}

// DaysLeftInMonth returns the number of days after today in this month.
func (e *Engine) DaysLeftInMonth() int {
	today := e.Today()
	lastDay := model.NewDate(today.Year(), today.Month()+1, 0)
	return lastDay.Day() - today.Day()
}

// Overview computes the month-to-date budget picture.
func (e *Engine) Overview(expenses []model.Expense, budget decimal.Decimal) BudgetOverview {
	spent := TotalSpent(expenses)
	today := e.Today()
	o := BudgetOverview{
		Budget:         budget,
		Spent:          spent,
		Remaining:      budget.Sub(spent),
		Status:         ClassifyBudget(spent, budget),
		DaysLeft:       e.DaysLeftInMonth(),
		DailyAllowance: decimal.Zero,
	}
	if o.Remaining.IsPositive() && o.DaysLeft > 0 {
		o.DailyAllowance = o.Remaining.Div(decimal.NewFromInt(int64(o.DaysLeft)))
	}
	o.AverageDaily = spent.Div(decimal.NewFromInt(int64(today.Day())))
	o.Alert = overviewAlert(o)
	return o
}

func overviewAlert(o BudgetOverview) string {
	switch {
	case o.Status.Status == StatusNoData:
		return ""
	case o.Spent.GreaterThan(o.Budget):
		return fmt.Sprintf("Budget exceeded by %s. Try to reduce spending for the remaining %d days.",
			o.Spent.Sub(o.Budget).StringFixed(0), o.DaysLeft)
	case o.Status.Status == StatusWarning:
		return fmt.Sprintf("Only %s left for %d days. That's %s/day to stay on track.",
			o.Remaining.StringFixed(0), o.DaysLeft, o.DailyAllowance.StringFixed(0))
	case o.Status.Status == StatusSafe && o.Spent.IsPositive():
		return fmt.Sprintf("You have %s left and %d days remaining. Keep up the good work!",
			o.Remaining.StringFixed(0), o.DaysLeft)
	default:
		return ""
	}
}

// Report builds the full insights report.
func (e *Engine) Report(expenses []model.Expense, budget decimal.Decimal, trendDays int) Report {
	avg, _ := AverageExpense(expenses)
	return Report{
		Overview:       e.Overview(expenses, budget),
		Micro:          MicroSpends(expenses),
		Categories:     CategoryShares(expenses),
		Trend:          e.TrendSlice(expenses, trendDays),
		AverageExpense: avg,
		Transactions:   len(expenses),
	}
}
