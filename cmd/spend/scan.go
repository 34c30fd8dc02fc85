package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/config"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/anoushkasinn/Spend.Sense/internal/ocr"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var (
		amount, category, note, date string
		yes                          bool
	)

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Read an expense off a photo of a bill",
		Long: `Scan runs OCR over a receipt image and suggests an expense from it:
the largest plausible amount, a date if one is printed, a merchant name and
a category guessed from the text. Review the suggestion before it is saved.

Flags override what was read. When no amount can be found, --amount is
required.`,
		Example: `  spend scan ~/Pictures/bill.jpg
  spend scan bill.png --category food --yes`,
		Args: cobra.ExactArgs(1),
		RunE: mutating(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			recognizer, err := newRecognizer(config.LoadOCRConfig())
			if err != nil {
				return common.NewUserError("OCR is not available; install tesseract or set ocr.binary", err)
			}
			scanner := ocr.NewScanner(recognizer,
				ocr.WithClock(a.ledger.Now),
				ocr.WithLogger(a.logger))

			interrupts := cli.NewInterruptHandler(a.out)
			scanCtx := interrupts.HandleInterrupts(ctx, "Scan")

			a.printf("%s Reading %s\n", cli.ScanIcon, args[0])
			bar := cli.NewProgressBar(a.out, "Scanning")
			result, err := scanner.Scan(scanCtx, args[0], bar.Set)
			if err != nil {
				bar.Abort()
				if interrupts.WasInterrupted() {
					return nil
				}
				return common.NewUserError("Could not read bill. Try a sharper photo or add it manually.", err)
			}

			draft, err := applyScanOverrides(a, result, amount, category, note, date)
			if err != nil {
				return err
			}

			a.printf("\n%s\n", renderDraft(result, draft))
			if !draft.Amount.IsPositive() {
				return common.NewUserError("No amount found on the bill. Pass it with --amount.", model.ErrInvalidAmount)
			}

			if !yes {
				ok, err := cli.NewNonBlockingReader(a.in).Confirm(ctx, a.out, "Save this expense?")
				if err != nil {
					return err
				}
				if !ok {
					a.printf("%s\n", cli.FormatInfo("Discarded."))
					return errNoChange
				}
			}

			e, err := a.ledger.Expenses().Add(draft)
			if err != nil {
				return err
			}
			a.printf("%s Added %s %s on %s %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(cli.FormatCurrency(e.Amount)),
				categoryLabel(e.Category),
				e.Date.Format("2 Jan 2006"),
				cli.SubtleStyle.Render("("+shortID(e.ID)+")"))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, replacing the one read")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category, replacing the guess")
	cmd.Flags().StringVarP(&note, "note", "n", "", "note, replacing the merchant name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD, replacing the one read")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "save without asking")

	// A declined scan is not an error for the shell.
	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if err := run(c, args); err != nil && !errors.Is(err, errNoChange) {
			return err
		}
		return nil
	}

	return cmd
}

func applyScanOverrides(a *app, result *ocr.Result, amount, category, note, date string) (model.ExpenseDraft, error) {
	draft := result.Draft
	if amount != "" {
		value, err := parseAmount(amount)
		if err != nil {
			return draft, err
		}
		draft.Amount = value
	}
	if category != "" {
		draft.Category = a.categoryOrGuess(category, "")
	}
	if note != "" {
		draft.Note = strings.TrimSpace(note)
	}
	if date != "" {
		d, err := model.ParseDate(date)
		if err != nil {
			return draft, common.NewUserError("dates look like 2024-03-05", err)
		}
		draft.Date = d
	}
	return draft, nil
}

func renderDraft(result *ocr.Result, draft model.ExpenseDraft) string {
	amount := "not found"
	if draft.Amount.IsPositive() {
		amount = cli.FormatCurrency(draft.Amount)
	}
	note := draft.Note
	if note == "" {
		note = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Amount:    %s\n", amount)
	fmt.Fprintf(&b, "Category:  %s\n", categoryLabel(draft.Category))
	fmt.Fprintf(&b, "Date:      %s\n", draft.Date.Format("2 Jan 2006"))
	fmt.Fprintf(&b, "Note:      %s", note)
	if result.Fields.RawDate != "" && result.Fields.Date == nil {
		fmt.Fprintf(&b, "\n%s", cli.SubtleStyle.Render("Could not understand the printed date "+result.Fields.RawDate+"; using today."))
	}
	return cli.RenderBox("Scanned bill", b.String())
}
