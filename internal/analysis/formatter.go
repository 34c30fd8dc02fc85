package analysis

import (
	"fmt"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/shopspring/decimal"
)

// CLIFormatter renders reports for the terminal.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{styles: NewStyles()}
}

// WithWidth returns a formatter whose boxes fit the terminal width.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: f.styles.WithWidth(width)}
}

// FormatReport renders the full insights view.
func (f *CLIFormatter) FormatReport(report Report) string {
	sections := []string{
		f.styles.Title.Render(cli.ChartIcon + " Spending Insights"),
		f.FormatOverview(report.Overview),
	}

	if report.Transactions == 0 {
		sections = append(sections, f.styles.Subtle.Render("Add some expenses to see insights"))
		return strings.Join(sections, "\n\n")
	}

	sections = append(sections,
		f.formatStats(report),
		f.FormatCategories(report.Categories),
		f.formatMicroSpends(report.Micro),
	)
	if len(report.Trend) > 0 {
		sections = append(sections, f.FormatTrend(report.Trend))
	}
	return strings.Join(sections, "\n\n")
}

// FormatOverview renders the budget progress box.
func (f *CLIFormatter) FormatOverview(o BudgetOverview) string {
	style := f.styles.ForStatus(o.Status.Status)

	var lines []string
	if o.Status.Status == StatusNoData {
		lines = append(lines, f.styles.Subtle.Render(o.Status.Message))
	} else {
		fraction, _ := o.Status.Percent.Div(decimal.NewFromInt(100)).Float64()
		lines = append(lines,
			style.Render(fmt.Sprintf("%s (%s used)", o.Status.Message, cli.FormatPercent(o.Status.Percent, 0))),
			style.Render(f.styles.RenderProgressBar(fraction, 30)),
		)
	}

	lines = append(lines,
		fmt.Sprintf("Budget:    %s", f.styles.Amount.Render(cli.FormatCurrency(o.Budget))),
		fmt.Sprintf("Spent:     %s", cli.FormatCurrency(o.Spent)),
		fmt.Sprintf("Remaining: %s", cli.FormatCurrency(o.Remaining)),
		fmt.Sprintf("Days left: %d", o.DaysLeft),
	)
	if o.DailyAllowance.IsPositive() {
		lines = append(lines, fmt.Sprintf("Daily budget remaining: %s/day", cli.FormatCurrency(o.DailyAllowance)))
	}
	lines = append(lines, fmt.Sprintf("Your avg. daily spending: %s/day", cli.FormatCurrency(o.AverageDaily)))
	if o.Alert != "" {
		lines = append(lines, "", style.Render(o.Alert))
	}

	return f.styles.RenderBox(strings.Join(lines, "\n"), "Monthly Budget", f.styles.Box)
}

// FormatCategories renders category shares with a bar per category.
func (f *CLIFormatter) FormatCategories(shares []CategoryShare) string {
	if len(shares) == 0 {
		return f.styles.Subtle.Render("No categories yet")
	}

	var lines []string
	for _, s := range shares {
		fraction, _ := s.Percent.Div(decimal.NewFromInt(100)).Float64()
		bar := cli.CategoryStyle(s.Info.Color).Render(f.styles.RenderProgressBar(fraction, 20))
		lines = append(lines, fmt.Sprintf("%s %-18s %s %6s  %s (%d)",
			s.Info.Icon, s.Info.Label, bar,
			cli.FormatPercent(s.Percent, 1),
			cli.FormatCurrency(s.Total), s.Count))
	}
	return f.styles.RenderBox(strings.Join(lines, "\n"), "By Category", f.styles.CategoryBox)
}

// FormatTrend renders a daily bar chart scaled to the busiest day.
func (f *CLIFormatter) FormatTrend(trend []DayTotal) string {
	peak := decimal.Zero
	total := decimal.Zero
	for _, d := range trend {
		total = total.Add(d.Amount)
		if d.Amount.GreaterThan(peak) {
			peak = d.Amount
		}
	}

	title := fmt.Sprintf("Last %d Days", len(trend))
	if peak.IsZero() {
		return f.styles.RenderBox(f.styles.Subtle.Render("Add some expenses to see your spending trends"), title, f.styles.Box)
	}

	var lines []string
	for _, d := range trend {
		fraction, _ := d.Amount.Div(peak).Float64()
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			d.Label, d.Date.Format("02 Jan"),
			f.styles.Success.Render(f.styles.RenderProgressBar(fraction, 24)),
			cli.FormatCurrency(d.Amount)))
	}
	avg := total.Div(decimal.NewFromInt(int64(len(trend))))
	lines = append(lines, "", f.styles.Subtle.Render("Daily average: "+cli.FormatCurrency(avg)))
	return f.styles.RenderBox(strings.Join(lines, "\n"), title, f.styles.Box)
}

func (f *CLIFormatter) formatStats(report Report) string {
	return fmt.Sprintf("%s %d transactions   %s avg. %s",
		cli.ChartIcon, report.Transactions,
		cli.WalletIcon, cli.FormatCurrency(report.AverageExpense))
}

func (f *CLIFormatter) formatMicroSpends(micro MicroSpendSummary) string {
	if micro.Count == 0 {
		return f.styles.Success.Render("No micro-spends (under ₹100) so far.")
	}
	msg := fmt.Sprintf("You made %d small purchases under ₹100, totalling %s. Small amounts add up!",
		micro.Count, cli.FormatCurrency(micro.Total))
	return f.styles.RenderBox(msg, "Micro-Spends", f.styles.InsightBox)
}
