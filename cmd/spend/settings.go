package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/state"
	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change preferences",
		Args:  cobra.NoArgs,
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
			mode := "off"
			if a.ledger.DarkMode() {
				mode = "on"
			}
			rows := [][]string{
				{"Monthly budget", cli.FormatCurrency(a.ledger.Budget())},
				{"Dark mode", mode},
				{"Expenses", fmt.Sprint(a.ledger.Expenses().Len())},
				{"Savings goals", fmt.Sprint(len(a.ledger.Goals().List()))},
				{"Database", a.store.Path()},
			}
			return cli.RenderTable(a.out, []string{"Setting", "Value"}, rows)
		}),
	}

	cmd.AddCommand(settingsDarkModeCmd())
	cmd.AddCommand(settingsResetCmd())

	return cmd
}

func settingsDarkModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "dark-mode [on|off|toggle]",
		Short:     "Switch the chat between the dark and light theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: mutating(func(_ context.Context, a *app, _ *cobra.Command, args []string) error {
			want := "toggle"
			if len(args) == 1 {
				want = strings.ToLower(args[0])
			}

			switch want {
			case "toggle":
				a.ledger.ToggleDarkMode()
			case "on", "off":
				if a.ledger.DarkMode() != (want == "on") {
					a.ledger.ToggleDarkMode()
				}
			default:
				return common.NewUserError("use on, off or toggle", fmt.Errorf("%w: dark-mode %q", common.ErrInvalidInput, want))
			}

			mode := "off"
			if a.ledger.DarkMode() {
				mode = "on"
			}
			a.printf("%s Dark mode %s\n", cli.SuccessStyle.Render(cli.SuccessIcon), mode)
			return nil
		}),
	}
}

func settingsResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every expense and goal and restore the default budget",
		Long: `Reset clears all data: expenses, savings goals, the budget and preferences.
This cannot be undone. Make a copy first with "spend backup".`,
		Args: cobra.NoArgs,
		RunE: mutating(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			expenses := a.ledger.Expenses().Len()
			goalCount := len(a.ledger.Goals().List())

			if !force {
				a.printf("This will delete %d expenses and %d savings goals.\n", expenses, goalCount)
				reader := cli.NewNonBlockingReader(a.in)
				for _, question := range []string{"Are you sure you want to clear all data?", "This cannot be undone. Really continue?"} {
					ok, err := reader.Confirm(ctx, a.out, question)
					if err != nil {
						return err
					}
					if !ok {
						a.printf("%s\n", cli.FormatInfo("Reset canceled."))
						return nil
					}
				}
			}

			a.ledger.Restore(state.Default())
			a.printf("%s All data cleared\n", cli.SuccessStyle.Render(cli.SuccessIcon))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompts")
	return cmd
}
