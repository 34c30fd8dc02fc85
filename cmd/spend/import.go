package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/config"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/anoushkasinn/Spend.Sense/internal/ofx"
	"github.com/spf13/cobra"
)

type importFlags struct {
	dryRun bool
	yes    bool
}

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "preview without saving")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "save without asking")
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses from bank statements",
		Long: `Import debits from a bank as expenses. Credits are skipped, and so are
transactions already recorded with the same date, amount and note.
Categories are guessed from the merchant name.`,
	}

	cmd.AddCommand(importOFXCmd())
	cmd.AddCommand(importPlaidCmd())

	return cmd
}

func importOFXCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import transactions from OFX or QFX statement files",
		Example: `  # Import a single statement
  spend import ofx ~/Downloads/hdfc_mar_2024.ofx

  # Import every statement in a directory
  spend import ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: mutating(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			files, err := expandStatementFiles(a, args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return common.NewUserError("no statement files found", common.ErrNotFound)
			}

			parser := ofx.NewParser()
			var txns []model.BankTransaction
			for _, path := range files {
				parsed, err := parseStatement(ctx, parser, path)
				if err != nil {
					return err
				}
				a.logger.Info("Parsed statement", "file", filepath.Base(path), "transactions", len(parsed))
				txns = append(txns, parsed...)
			}

			return a.importTransactions(ctx, txns, flags)
		}),
	}

	flags.register(cmd)
	return cmd
}

// expandStatementFiles resolves glob patterns, keeping plain paths that
// exist even when the shell already expanded them.
func expandStatementFiles(a *app, patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		pattern = config.ExpandPath(pattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				a.logger.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]model.BankTransaction, error) {
	file, err := os.Open(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	txns, err := parser.ParseFile(ctx, file)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("%s is not a readable OFX statement", filepath.Base(path)), err)
	}
	return txns, nil
}

func importPlaidCmd() *cobra.Command {
	var (
		flags importFlags
		days  int
	)

	cmd := &cobra.Command{
		Use:   "plaid",
		Short: "Import recent transactions from a bank linked through Plaid",
		Args:  cobra.NoArgs,
		RunE: mutating(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			source, err := newBankSource()
			if err != nil {
				return common.NewUserError("Plaid is not set up. Set PLAID_CLIENT_ID, PLAID_SECRET and PLAID_ACCESS_TOKEN.", err)
			}

			window := config.ImportWindow()
			if cmd.Flags().Changed("days") {
				window = time.Duration(days) * 24 * time.Hour
			}
			end := a.ledger.Now()
			start := end.Add(-window)

			a.printf("%s Fetching transactions since %s\n", cli.WalletIcon, start.Format("2 Jan 2006"))
			txns, err := source.GetTransactions(ctx, start, end)
			if err != nil {
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}

			return a.importTransactions(ctx, txns, flags)
		}),
	}

	cmd.Flags().IntVar(&days, "days", 30, "how many days back to fetch")
	flags.register(cmd)
	return cmd
}

// importTransactions turns transactions into drafts, shows them and adds
// them once confirmed.
func (a *app) importTransactions(ctx context.Context, txns []model.BankTransaction, flags importFlags) error {
	result := a.classifier.BankDrafts(txns, a.ledger.Expenses().List())

	a.printf("Found %d transactions: %d new, %d duplicates, %d credits skipped\n",
		len(txns), len(result.Drafts), result.Duplicates, result.Credits)
	if len(result.Drafts) == 0 {
		a.printf("%s\n", cli.FormatInfo("Nothing new to import."))
		return nil
	}

	rows := make([][]string, 0, len(result.Drafts))
	for _, d := range result.Drafts {
		rows = append(rows, []string{d.Date.String(), categoryLabel(d.Category), cli.FormatCurrency(d.Amount), d.Note})
	}
	if err := cli.RenderTable(a.out, []string{"Date", "Category", "Amount", "Note"}, rows); err != nil {
		return err
	}

	if flags.dryRun {
		a.printf("%s\n", cli.FormatInfo("Dry run: nothing saved."))
		return nil
	}
	if !flags.yes {
		ok, err := cli.NewNonBlockingReader(a.in).Confirm(ctx, a.out, fmt.Sprintf("Add %d expenses?", len(result.Drafts)))
		if err != nil {
			return err
		}
		if !ok {
			a.printf("%s\n", cli.FormatInfo("Import cancelled."))
			return nil
		}
	}

	for _, d := range result.Drafts {
		if _, err := a.ledger.Expenses().Add(d); err != nil {
			return fmt.Errorf("failed to add %s: %w", d.Note, err)
		}
	}
	a.printf("%s Imported %d expenses\n", cli.SuccessStyle.Render(cli.SuccessIcon), len(result.Drafts))
	return nil
}
