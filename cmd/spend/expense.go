package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/spf13/cobra"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses", "e"},
		Short:   "Add, list, update and delete expenses",
		Example: `  # Record lunch; the category is guessed from the note
  spend expense add --amount 250 --note "Lunch at Saravana Bhavan"

  # Record a bill for a given day
  spend expense add -a 1499 -c bills -n "Airtel fiber" -d 2024-03-05

  # Show the most recent expenses
  spend expense list --limit 10`,
	}

	cmd.AddCommand(expenseAddCmd())
	cmd.AddCommand(expenseListCmd())
	cmd.AddCommand(expenseUpdateCmd())
	cmd.AddCommand(expenseDeleteCmd())

	return cmd
}

// categoryOrGuess returns the given category, or a guess from text when
// none was given.
func (a *app) categoryOrGuess(given, text string) model.CategoryCode {
	if given != "" {
		return model.ParseCategory(given)
	}
	return a.classifier.Classify(text)
}

func expenseAddCmd() *cobra.Command {
	var amount, category, note, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Args:  cobra.NoArgs,
		RunE: mutating(func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}

			draft := model.ExpenseDraft{
				Amount:   value,
				Category: a.categoryOrGuess(category, note),
				Note:     strings.TrimSpace(note),
			}
			if date != "" {
				if draft.Date, err = model.ParseDate(date); err != nil {
					return common.NewUserError("dates look like 2024-03-05", err)
				}
			}

			e, err := a.ledger.Expenses().Add(draft)
			if err != nil {
				return common.NewUserError("amount must be greater than zero", err)
			}

			a.printf("%s Added %s %s on %s %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(cli.FormatCurrency(e.Amount)),
				categoryLabel(e.Category),
				e.Date.Format("2 Jan 2006"),
				cli.SubtleStyle.Render("("+shortID(e.ID)+")"))
			if e.IsMicroSpend() {
				a.printf("  %s\n", cli.SubtleStyle.Render("Micro-spend: these add up quickly."))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount in rupees")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (food, transport, entertainment, shopping, education, health, bills, other)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "what it was for")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func categoryLabel(code model.CategoryCode) string {
	info := model.CategoryInfo(code)
	return info.Icon + " " + info.Label
}

func expenseRows(expenses []model.Expense) [][]string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		amount := cli.FormatCurrency(e.Amount)
		if e.IsMicroSpend() {
			amount += " •"
		}
		rows = append(rows, []string{
			shortID(e.ID),
			e.Date.String(),
			categoryLabel(e.Category),
			amount,
			e.Note,
		})
	}
	return rows
}

func expenseListCmd() *cobra.Command {
	var category string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
			all := a.ledger.Expenses().List()

			var filter model.CategoryCode
			if category != "" {
				filter = model.ParseCategory(category)
			}

			var shown []model.Expense
			for i := len(all) - 1; i >= 0; i-- {
				if filter != "" && all[i].Category != filter {
					continue
				}
				shown = append(shown, all[i])
				if limit > 0 && len(shown) == limit {
					break
				}
			}

			if len(shown) == 0 {
				a.printf("%s\n", cli.FormatInfo("No expenses yet. Add one with: spend expense add --amount 120 --note chai"))
				return nil
			}

			if err := cli.RenderTable(a.out, []string{"ID", "Date", "Category", "Amount", "Note"}, expenseRows(shown)); err != nil {
				return err
			}
			a.printf("\n%s\n", cli.SubtleStyle.Render(fmt.Sprintf("%d of %d expenses • marks a micro-spend", len(shown), len(all))))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only show this category")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "show at most this many (0 for all)")

	return cmd
}

func expenseIDs(a *app) []string {
	expenses := a.ledger.Expenses().List()
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	return ids
}

func expenseUpdateCmd() *cobra.Command {
	var amount, category, note, date string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: mutating(func(_ context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0], expenseIDs(a))
			if err != nil {
				return err
			}

			var patch model.ExpensePatch
			flags := cmd.Flags()
			if flags.Changed("amount") {
				value, err := parseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &value
			}
			if flags.Changed("category") {
				code := model.ParseCategory(category)
				patch.Category = &code
			}
			if flags.Changed("note") {
				trimmed := strings.TrimSpace(note)
				patch.Note = &trimmed
			}
			if flags.Changed("date") {
				d, err := model.ParseDate(date)
				if err != nil {
					return common.NewUserError("dates look like 2024-03-05", err)
				}
				patch.Date = &d
			}
			if patch.Empty() {
				return common.NewUserError("pass at least one of --amount, --category, --note or --date", errNoChange)
			}

			found, err := a.ledger.Expenses().Update(id, patch)
			if errors.Is(err, model.ErrInvalidAmount) {
				return common.NewUserError("amount must be greater than zero", err)
			}
			if err != nil {
				return err
			}
			if !found {
				return common.NewUserError(fmt.Sprintf("no expense with id %q", args[0]), common.ErrNotFound)
			}

			e, _ := a.ledger.Expenses().Get(id)
			a.printf("%s Updated %s: %s %s %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				shortID(e.ID),
				cli.FormatCurrency(e.Amount),
				categoryLabel(e.Category),
				e.Note)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&note, "note", "n", "", "new note")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date as YYYY-MM-DD")

	return cmd
}

func expenseDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: mutating(func(_ context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := resolveID(args[0], expenseIDs(a))
			if err != nil {
				return err
			}
			e, _ := a.ledger.Expenses().Get(id)
			a.ledger.Expenses().Delete(id)
			a.printf("%s Deleted %s %s %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.FormatCurrency(e.Amount),
				categoryLabel(e.Category),
				e.Note)
			return nil
		}),
	}
}
