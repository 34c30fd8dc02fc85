package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/config"
	"github.com/anoushkasinn/Spend.Sense/internal/report"
	"github.com/anoushkasinn/Spend.Sense/internal/service"
	"github.com/anoushkasinn/Spend.Sense/internal/sheets"
	"github.com/spf13/cobra"
)

// sheetsLogin runs the browser consent flow. Tests replace it.
var sheetsLogin = sheets.Login

const exportDateLayout = "2006-01-02"

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses to CSV, PDF or Google Sheets",
		Example: `  spend export csv
  spend export pdf --output ~/Documents/march.pdf
  spend export sheets-login
  spend export sheets`,
	}

	cmd.AddCommand(exportCSVCmd())
	cmd.AddCommand(exportPDFCmd())
	cmd.AddCommand(exportSheetsCmd())
	cmd.AddCommand(exportSheetsLoginCmd())

	return cmd
}

// defaultExportPath names an export after today, e.g. expenses_2024-03-05.csv.
func defaultExportPath(a *app, ext string) string {
	return "expenses_" + a.ledger.Now().Format(exportDateLayout) + "." + ext
}

func exportCSVCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write all expenses to a CSV file",
		Args:  cobra.NoArgs,
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, _ []string) (err error) {
			expenses := a.ledger.Expenses().List()
			if len(expenses) == 0 {
				a.printf("%s\n", cli.FormatInfo("No expenses to export yet."))
				return nil
			}

			path := output
			if path == "" {
				path = defaultExportPath(a, "csv")
			}
			path = config.ExpandPath(path)
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create export directory: %w", err)
				}
			}

			file, err := os.Create(path) //nolint:gosec // path chosen by the user
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("failed to close %s: %w", path, cerr)
				}
			}()

			if _, err := analysis.WriteCSV(file, expenses); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}
			a.printf("%s Exported %d expenses to %s\n", cli.SuccessStyle.Render(cli.SuccessIcon), len(expenses), path)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: expenses_<today>.csv)")
	return cmd
}

func exportPDFCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Write a monthly report as PDF",
		Args:  cobra.NoArgs,
		RunE: readOnly(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			path := output
			if path == "" {
				path = defaultExportPath(a, "pdf")
			}
			path = config.ExpandPath(path)

			if err := writeReport(ctx, a, report.FileWriter{Path: path}); err != nil {
				return err
			}
			a.printf("%s Report written to %s\n", cli.SuccessStyle.Render(cli.SuccessIcon), path)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: expenses_<today>.pdf)")
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Replace the Expenses sheet of a Google spreadsheet with the report",
		Long: `Writes the budget summary, category breakdown and every expense to the
"Expenses" sheet of the configured spreadsheet, creating it when needed.

Credentials come from a service account (sheets.service_account_path) or
OAuth2 client credentials with a refresh token, either configured or saved
by "spend export sheets-login".`,
		Args: cobra.NoArgs,
		RunE: readOnly(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			writer, err := newSheetsWriter(ctx)
			if err != nil {
				if errors.Is(err, common.ErrMissingConfig) {
					return common.NewUserError("Google Sheets is not set up. Configure a service account or run: spend export sheets-login", err)
				}
				return err
			}

			if err := writeReport(ctx, a, writer); err != nil {
				return err
			}
			a.printf("%s Exported %d expenses to Google Sheets\n",
				cli.SuccessStyle.Render(cli.SuccessIcon), a.ledger.Expenses().Len())
			return nil
		}),
	}
}

func writeReport(ctx context.Context, a *app, w service.ReportWriter) error {
	if err := w.Write(ctx, a.ledger.ExpenseReport()); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	return nil
}

func exportSheetsLoginCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "sheets-login",
		Short: "Authorize Google Sheets access in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadSheetsConfig()
			if err != nil || cfg.ClientID == "" || cfg.ClientSecret == "" {
				return common.NewUserError("Set GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET first", common.ErrMissingConfig)
			}

			out := cmd.OutOrStdout()
			tokenFile := config.SheetsTokenFile()
			_, err = sheetsLogin(cmd.Context(), sheets.LoginOptions{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				TokenFile:    tokenFile,
				CallbackAddr: addr,
				OpenURL: func(url string) {
					fmt.Fprintf(out, "%s\n\n  %s\n\n", cli.FormatInfo("Open this link to grant access:"), url)
				},
			})
			if errors.Is(err, sheets.ErrLoginTimeout) {
				return common.NewUserError("No response from the browser. Try again.", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s Saved Google credentials to %s\n", cli.SuccessStyle.Render(cli.SuccessIcon), tokenFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "callback", sheets.DefaultCallbackAddr, "address for the OAuth redirect")
	return cmd
}
