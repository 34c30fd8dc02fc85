package main

import (
	"context"

	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set or show the monthly budget",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the monthly budget",
		Args:  cobra.ExactArgs(1),
		RunE: mutating(func(_ context.Context, a *app, _ *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			if err := a.ledger.SetBudget(amount); err != nil {
				return common.NewUserError("budget must be greater than zero", err)
			}
			a.printf("%s Monthly budget set to %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(cli.FormatCurrency(amount)))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show spending against the budget",
		Args:  cobra.NoArgs,
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
			a.printf("%s\n", analysis.NewCLIFormatter().FormatOverview(a.ledger.Overview()))
			return nil
		}),
	})

	return cmd
}
