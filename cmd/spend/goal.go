package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/goals"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/spf13/cobra"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals", "g"},
		Short:   "Track savings goals",
		Example: `  spend goal add "New laptop" --target 60000 --icon laptop --deadline 2024-12-31
  spend goal contribute 3f9a1c2e 5000
  spend goal list`,
	}

	cmd.AddCommand(goalAddCmd())
	cmd.AddCommand(goalListCmd())
	cmd.AddCommand(goalContributeCmd())
	cmd.AddCommand(goalDeleteCmd())

	return cmd
}

func goalAddCmd() *cobra.Command {
	var target, icon, deadline string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: mutating(func(_ context.Context, a *app, _ *cobra.Command, args []string) error {
			amount, err := parseAmount(target)
			if err != nil {
				return err
			}

			var due *model.Date
			if deadline != "" {
				d, err := model.ParseDate(deadline)
				if err != nil {
					return common.NewUserError("dates look like 2024-12-31", err)
				}
				due = &d
			}

			g, err := a.ledger.Goals().AddGoal(args[0], amount, icon, due)
			switch {
			case errors.Is(err, model.ErrEmptyName):
				return common.NewUserError("goal name must not be empty", err)
			case errors.Is(err, model.ErrInvalidTarget):
				return common.NewUserError("target must be greater than zero", err)
			case err != nil:
				return err
			}

			a.printf("%s Created goal %s %s: save %s %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				g.Icon,
				cli.BoldStyle.Render(g.Name),
				cli.FormatCurrency(g.TargetAmount),
				cli.SubtleStyle.Render("("+shortID(g.ID)+")"))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "amount to save")
	cmd.Flags().StringVarP(&icon, "icon", "i", model.DefaultGoalIcon, "icon or its name (general, phone, laptop, gaming, travel, education, vehicle, gift)")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "target date as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func goalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show savings goals and their progress",
		Args:  cobra.NoArgs,
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
			list := a.ledger.Goals().List()
			if len(list) == 0 {
				a.printf("%s\n", cli.FormatInfo("No savings goals yet. Create one with: spend goal add \"Trip\" --target 20000"))
				return nil
			}

			now := a.ledger.Now()
			rows := make([][]string, 0, len(list))
			for _, g := range list {
				due := "-"
				if days, ok := goals.DaysRemaining(g, now); ok {
					due = fmt.Sprintf("%d days", days)
				}
				progress := cli.FormatPercent(goals.ProgressPercent(g), 0)
				if goals.Completed(g) {
					progress = cli.SuccessStyle.Render("done 🎉")
				}
				rows = append(rows, []string{
					shortID(g.ID),
					g.Icon + " " + g.Name,
					cli.FormatCurrency(g.SavedAmount) + " / " + cli.FormatCurrency(g.TargetAmount),
					progress,
					cli.FormatCurrency(goals.Remaining(g)),
					due,
				})
			}
			return cli.RenderTable(a.out, []string{"ID", "Goal", "Saved", "Progress", "To go", "Deadline"}, rows)
		}),
	}
}

func goalIDs(a *app) []string {
	list := a.ledger.Goals().List()
	ids := make([]string, len(list))
	for i, g := range list {
		ids[i] = g.ID
	}
	return ids
}

func goalContributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "contribute <id> <amount>",
		Aliases: []string{"add-money"},
		Short:   "Add money to a savings goal",
		Args:    cobra.ExactArgs(2),
		RunE: mutating(func(_ context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := resolveID(args[0], goalIDs(a))
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			found, err := a.ledger.Goals().Contribute(id, amount)
			if errors.Is(err, model.ErrInvalidAmount) {
				return common.NewUserError("amount must be greater than zero", err)
			}
			if err != nil {
				return err
			}
			if !found {
				return common.NewUserError(fmt.Sprintf("no goal with id %q", args[0]), common.ErrNotFound)
			}

			g, _ := a.ledger.Goals().Get(id)
			a.printf("%s Added %s to %s %s (%s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.FormatCurrency(amount),
				g.Icon,
				g.Name,
				cli.FormatPercent(goals.ProgressPercent(g), 0))
			if goals.Completed(g) {
				a.printf("%s\n", cli.FormatSuccess("Goal reached! 🎉"))
			}
			return nil
		}),
	}
}

func goalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a savings goal",
		Args:    cobra.ExactArgs(1),
		RunE: mutating(func(_ context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := resolveID(args[0], goalIDs(a))
			if err != nil {
				return err
			}
			g, _ := a.ledger.Goals().Get(id)
			a.ledger.Goals().DeleteGoal(id)
			a.printf("%s Deleted goal %s %s\n", cli.SuccessStyle.Render(cli.SuccessIcon), g.Icon, g.Name)
			return nil
		}),
	}
}
