package main

import (
	"context"

	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/spf13/cobra"
)

const defaultTrendDays = 7

func insightsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "insights",
		Aliases: []string{"report", "stats"},
		Short:   "Show budget status, category split and spending trend",
		Args:    cobra.NoArgs,
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
			report := a.ledger.Report(days)
			a.printf("%s\n", analysis.NewCLIFormatter().FormatReport(report))
			return nil
		}),
	}

	cmd.Flags().IntVar(&days, "days", defaultTrendDays, "days covered by the trend")
	return cmd
}

func trendCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show daily spending for the last few days",
		Args:  cobra.NoArgs,
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
			if days < 1 {
				days = defaultTrendDays
			}
			trend := a.ledger.Engine().TrendSlice(a.ledger.Expenses().List(), days)
			a.printf("%s\n", analysis.NewCLIFormatter().FormatTrend(trend))
			return nil
		}),
	}

	cmd.Flags().IntVar(&days, "days", defaultTrendDays, "number of days to show")
	return cmd
}
