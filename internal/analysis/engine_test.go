package analysis

import (
	"testing"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)

func newTestEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return fixedNow }))
}

func exp(id string, amount string, category model.CategoryCode, day int) model.Expense {
	return model.Expense{
		ID:       id,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     model.NewDate(2024, time.March, day),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalSpent(t *testing.T) {
	assert.True(t, TotalSpent(nil).IsZero())

	expenses := []model.Expense{exp("1", "100.25", model.CategoryFood, 1)}
	before := TotalSpent(expenses)
	expenses = append(expenses, exp("2", "49.75", model.CategoryFood, 2))
	assert.True(t, TotalSpent(expenses).Sub(before).Equal(dec("49.75")))
	assert.True(t, TotalSpent(expenses).Equal(dec("150")))
}

func TestByCategory(t *testing.T) {
	groups := ByCategory([]model.Expense{
		exp("1", "100", model.CategoryFood, 1),
		exp("2", "50", model.CategoryFood, 2),
		exp("3", "30", model.CategoryTransport, 3),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, model.CategoryFood, groups[0].Category)
	assert.True(t, groups[0].Total.Equal(dec("150")))
	assert.Equal(t, 2, groups[0].Count)
	assert.Len(t, groups[0].Expenses, 2)
	assert.Equal(t, model.CategoryTransport, groups[1].Category)
	assert.True(t, groups[1].Total.Equal(dec("30")))
	assert.Equal(t, 1, groups[1].Count)
}

func TestByCategoryKeepsFirstSeenOrder(t *testing.T) {
	groups := ByCategory([]model.Expense{
		exp("1", "5", model.CategoryShopping, 1),
		exp("2", "500", model.CategoryBills, 1),
		exp("3", "5", model.CategoryShopping, 1),
		exp("4", "50", model.CategoryEducation, 1),
	})
	got := make([]model.CategoryCode, 0, len(groups))
	for _, g := range groups {
		got = append(got, g.Category)
	}
	assert.Equal(t, []model.CategoryCode{model.CategoryShopping, model.CategoryBills, model.CategoryEducation}, got)
}

func TestMicroSpends(t *testing.T) {
	summary := MicroSpends([]model.Expense{
		exp("1", "99.99", model.CategoryFood, 1),
		exp("2", "100", model.CategoryFood, 1),
		exp("3", "20", model.CategoryTransport, 1),
	})
	assert.Equal(t, 2, summary.Count)
	assert.True(t, summary.Total.Equal(dec("119.99")))
	assert.Equal(t, "1", summary.Expenses[0].ID)
	assert.Equal(t, "3", summary.Expenses[1].ID)

	empty := MicroSpends(nil)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.Total.IsZero())
}

func TestClassifyBudget(t *testing.T) {
	budget := dec("10000")
	tests := []struct {
		spent string
		want  Status
	}{
		{"0", StatusSafe},
		{"7000", StatusSafe},
		{"7100", StatusWarning},
		{"7000.01", StatusWarning},
		{"9000", StatusWarning},
		{"9100", StatusRisk},
		{"10000", StatusRisk},
		{"15000", StatusRisk},
	}

	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			got := ClassifyBudget(dec(tt.spent), budget)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestClassifyBudgetMessages(t *testing.T) {
	assert.Equal(t, "On track!", ClassifyBudget(dec("1"), dec("100")).Message)
	assert.Equal(t, "Be careful!", ClassifyBudget(dec("80"), dec("100")).Message)
	assert.Equal(t, "Over budget!", ClassifyBudget(dec("150"), dec("100")).Message)
	assert.Equal(t, "red", ClassifyBudget(dec("150"), dec("100")).Color)
	assert.True(t, ClassifyBudget(dec("150"), dec("100")).Percent.Equal(dec("150")))
}

func TestClassifyBudgetZeroBudget(t *testing.T) {
	for _, budget := range []string{"0", "-5"} {
		got := ClassifyBudget(dec("500"), dec(budget))
		assert.Equal(t, StatusNoData, got.Status)
		assert.True(t, got.Percent.IsZero())
	}
}

func TestPercent(t *testing.T) {
	pct, ok := Percent(dec("25"), dec("200"))
	assert.True(t, ok)
	assert.True(t, pct.Equal(dec("12.5")))

	pct, ok = Percent(dec("25"), decimal.Zero)
	assert.False(t, ok)
	assert.True(t, pct.IsZero())
}

func TestTrend(t *testing.T) {
	e := newTestEngine()
	expenses := []model.Expense{
		exp("1", "100", model.CategoryFood, 15),
		exp("2", "50", model.CategoryFood, 15),
		exp("3", "30", model.CategoryTransport, 13),
		exp("4", "999", model.CategoryOther, 8),  // before the window
		exp("5", "999", model.CategoryOther, 16), // after today
	}

	trend := e.TrendSlice(expenses, 7)
	require.Len(t, trend, 7)

	assert.Equal(t, "2024-03-09", trend[0].ISODate())
	assert.Equal(t, "2024-03-15", trend[6].ISODate())
	assert.Equal(t, "Fri", trend[6].Label)
	assert.True(t, trend[6].Amount.Equal(dec("150")))
	assert.Equal(t, 2, trend[6].Count)
	assert.True(t, trend[4].Amount.Equal(dec("30")))
	assert.Equal(t, 1, trend[4].Count)

	for _, i := range []int{0, 1, 2, 3, 5} {
		assert.True(t, trend[i].Amount.IsZero(), "day %d", i)
		assert.Zero(t, trend[i].Count)
	}
}

func TestTrendLength(t *testing.T) {
	e := newTestEngine()
	for _, days := range []int{1, 7, 30, 90} {
		assert.Len(t, e.TrendSlice(nil, days), days)
	}
	assert.Empty(t, e.TrendSlice(nil, 0))
	assert.Empty(t, e.TrendSlice(nil, -3))
}

func TestTrendUsesExpenseDateNotCreatedAt(t *testing.T) {
	e := newTestEngine()
	backdated := exp("1", "75", model.CategoryFood, 14)
	backdated.CreatedAt = fixedNow

	trend := e.TrendSlice([]model.Expense{backdated}, 2)
	assert.True(t, trend[0].Amount.Equal(dec("75")))
	assert.True(t, trend[1].Amount.IsZero())
}

func TestTrendIsRestartable(t *testing.T) {
	e := newTestEngine()
	seq := e.Trend([]model.Expense{exp("1", "10", model.CategoryFood, 15)}, 5)

	var first, second []DayTotal
	for d := range seq {
		first = append(first, d)
	}
	for d := range seq {
		second = append(second, d)
	}
	assert.Equal(t, first, second)

	// Stopping early is honoured.
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestDaysLeftInMonth(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local), 16},
		{time.Date(2024, time.February, 29, 9, 0, 0, 0, time.Local), 0},
		{time.Date(2023, time.February, 1, 9, 0, 0, 0, time.Local), 27},
		{time.Date(2024, time.December, 31, 23, 0, 0, 0, time.Local), 0},
	}
	for _, tt := range tests {
		e := NewEngine(WithClock(func() time.Time { return tt.now }))
		assert.Equal(t, tt.want, e.DaysLeftInMonth(), tt.now.String())
	}
}

func TestOverview(t *testing.T) {
	e := newTestEngine()
	expenses := []model.Expense{
		exp("1", "5000", model.CategoryBills, 1),
		exp("2", "3000", model.CategoryFood, 10),
	}

	o := e.Overview(expenses, dec("10000"))
	assert.Equal(t, StatusWarning, o.Status.Status)
	assert.True(t, o.Remaining.Equal(dec("2000")))
	assert.Equal(t, 16, o.DaysLeft)
	assert.True(t, o.DailyAllowance.Equal(dec("125")))
	assert.Equal(t, "533.33", o.AverageDaily.StringFixed(2))
	assert.Equal(t, "Only 2000 left for 16 days. That's 125/day to stay on track.", o.Alert)
}

func TestOverviewOverBudget(t *testing.T) {
	e := newTestEngine()
	o := e.Overview([]model.Expense{exp("1", "12000", model.CategoryShopping, 2)}, dec("10000"))

	assert.Equal(t, StatusRisk, o.Status.Status)
	assert.True(t, o.Remaining.Equal(dec("-2000")))
	assert.True(t, o.DailyAllowance.IsZero())
	assert.Contains(t, o.Alert, "Budget exceeded by 2000")
}

func TestOverviewEmpty(t *testing.T) {
	o := newTestEngine().Overview(nil, dec("10000"))
	assert.Equal(t, StatusSafe, o.Status.Status)
	assert.Empty(t, o.Alert)
	assert.True(t, o.AverageDaily.IsZero())
}

func TestCategorySharesAndTop(t *testing.T) {
	expenses := []model.Expense{
		exp("1", "100", model.CategoryFood, 1),
		exp("2", "300", model.CategoryShopping, 1),
		exp("3", "100", model.CategoryTransport, 1),
	}

	shares := CategoryShares(expenses)
	require.Len(t, shares, 3)
	assert.Equal(t, model.CategoryShopping, shares[0].Info.Code)
	assert.True(t, shares[0].Percent.Equal(dec("60")))
	// Equal totals keep first-seen order.
	assert.Equal(t, model.CategoryFood, shares[1].Info.Code)
	assert.Equal(t, model.CategoryTransport, shares[2].Info.Code)

	top := TopCategories(expenses, 2)
	require.Len(t, top, 2)
	assert.Equal(t, model.CategoryShopping, top[0].Info.Code)

	assert.Empty(t, CategoryShares(nil))
}

func TestAverageExpense(t *testing.T) {
	_, ok := AverageExpense(nil)
	assert.False(t, ok)

	avg, ok := AverageExpense([]model.Expense{
		exp("1", "100", model.CategoryFood, 1),
		exp("2", "50", model.CategoryFood, 1),
	})
	assert.True(t, ok)
	assert.True(t, avg.Equal(dec("75")))
}

func TestReport(t *testing.T) {
	report := newTestEngine().Report([]model.Expense{
		exp("1", "40", model.CategoryFood, 15),
		exp("2", "400", model.CategoryTransport, 14),
	}, dec("10000"), 7)

	assert.Equal(t, 2, report.Transactions)
	assert.Len(t, report.Trend, 7)
	assert.Equal(t, 1, report.Micro.Count)
	assert.True(t, report.AverageExpense.Equal(dec("220")))
	assert.Equal(t, model.CategoryTransport, report.Categories[0].Info.Code)
}
