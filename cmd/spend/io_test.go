package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/anoushkasinn/Spend.Sense/internal/ocr"
	"github.com/anoushkasinn/Spend.Sense/internal/plaid"
	"github.com/anoushkasinn/Spend.Sense/internal/service"
	"github.com/anoushkasinn/Spend.Sense/internal/sheets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeRecognizer struct {
	text string
	err  error
}

func (f fakeRecognizer) Recognize(_ context.Context, _ string, progress ocr.ProgressFunc) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	progress(50)
	progress(100)
	return f.text, nil
}

func useRecognizer(t *testing.T, rec ocr.Recognizer) {
	t.Helper()
	prev := newRecognizer
	newRecognizer = func(ocr.Config) (ocr.Recognizer, error) { return rec, nil }
	t.Cleanup(func() { newRecognizer = prev })
}

const sampleBill = `HOTEL SARAVANA BHAVAN
Date: 12/03/2024
2 x Masala Dosa 180.00
1 x Filter Coffee 45.00
Total: Rs. 225.00`

func TestScanConfirmed(t *testing.T) {
	env := newTestEnv(t)
	useRecognizer(t, fakeRecognizer{text: sampleBill})

	out, err := env.run("y\n", "scan", "bill.jpg")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Scanned bill")
	assert.Contains(t, out, "₹225")
	assert.Contains(t, out, "12 Mar 2024")
	assert.Contains(t, out, "Added ₹225")

	list := env.mustRun("expense", "list")
	assert.Contains(t, list, "2024-03-12")
}

func TestScanDeclinedSavesNothing(t *testing.T) {
	env := newTestEnv(t)
	useRecognizer(t, fakeRecognizer{text: sampleBill})

	out, err := env.run("n\n", "scan", "bill.jpg")
	require.NoError(t, err)
	assert.Contains(t, out, "Discarded.")
	assert.Contains(t, env.mustRun("expense", "list"), "No expenses yet")
}

func TestScanOverrides(t *testing.T) {
	env := newTestEnv(t)
	useRecognizer(t, fakeRecognizer{text: sampleBill})

	out := env.mustRun("scan", "bill.jpg", "--yes", "--amount", "250", "--category", "health", "--note", "Pharmacy", "--date", "2024-03-10")
	assert.Contains(t, out, "Added ₹250")
	assert.Contains(t, out, "Health")

	list := env.mustRun("expense", "list")
	assert.Contains(t, list, "Pharmacy")
	assert.Contains(t, list, "2024-03-10")
}

func TestScanWithoutAmount(t *testing.T) {
	env := newTestEnv(t)
	useRecognizer(t, fakeRecognizer{text: "THANK YOU VISIT AGAIN"})

	out, err := env.run("", "scan", "bill.jpg", "--yes")
	require.Error(t, err)
	assert.Contains(t, out, "not found")
	assert.Contains(t, common.UserMessage(err), "--amount")

	out = env.mustRun("scan", "bill.jpg", "--yes", "--amount", "80")
	assert.Contains(t, out, "Added ₹80")
	assert.Contains(t, out, "15 Mar 2024", "no printed date falls back to today")
}

func TestScanRecognitionFailure(t *testing.T) {
	env := newTestEnv(t)
	useRecognizer(t, fakeRecognizer{err: ocr.ErrImageNotFound})

	_, err := env.run("", "scan", "missing.jpg", "--yes")
	require.Error(t, err)
	assert.ErrorIs(t, err, ocr.ErrUnreadable)
	assert.Contains(t, common.UserMessage(err), "Could not read bill")
}

func TestScanWithoutOCR(t *testing.T) {
	env := newTestEnv(t)
	prev := newRecognizer
	newRecognizer = func(ocr.Config) (ocr.Recognizer, error) { return nil, ocr.ErrBinaryNotFound }
	t.Cleanup(func() { newRecognizer = prev })

	_, err := env.run("", "scan", "bill.jpg")
	require.ErrorIs(t, err, ocr.ErrBinaryNotFound)
	assert.Contains(t, common.UserMessage(err), "install tesseract")
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("export", "csv")
	assert.Contains(t, out, "No expenses to export yet.")

	env.mustRun("expense", "add", "--amount", "40", "--category", "food", "--note", `chai, "cutting"`)
	env.mustRun("expense", "add", "--amount", "1499", "--category", "bills", "--note", "Airtel", "--date", "2024-03-05")

	dest := filepath.Join(env.dir, "exports", "march.csv")
	out = env.mustRun("export", "csv", "--output", dest)
	assert.Contains(t, out, "Exported 2 expenses")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Category,Amount,Note,Is Micro-Spend", lines[0])
	assert.Equal(t, `"15/3/2024","food","40","chai, ""cutting""","Yes"`, lines[1])
	assert.Equal(t, `"5/3/2024","bills","1499","Airtel","No"`, lines[2])
}

func TestExportCSVDefaultName(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("expense", "add", "--amount", "40")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(env.dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	env.mustRun("export", "csv")

	_, err = os.Stat(filepath.Join(env.dir, "expenses_2024-03-15.csv"))
	assert.NoError(t, err)
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("expense", "add", "--amount", "2500", "--category", "shopping", "--note", "Shoes")

	dest := filepath.Join(env.dir, "report.pdf")
	out := env.mustRun("export", "pdf", "-o", dest)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestExportSheets(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("budget", "set", "8000")
	env.mustRun("expense", "add", "--amount", "2000", "--category", "food")

	mock := sheets.NewMockWriter()
	prev := newSheetsWriter
	newSheetsWriter = func(context.Context) (service.ReportWriter, error) { return mock, nil }
	t.Cleanup(func() { newSheetsWriter = prev })

	out := env.mustRun("export", "sheets")
	assert.Contains(t, out, "Exported 1 expenses to Google Sheets")

	calls := mock.GetWriteCalls()
	require.Len(t, calls, 1)
	report := calls[0].Report
	assert.True(t, report.Summary.Budget.Equal(decimal.NewFromInt(8000)))
	assert.True(t, report.Summary.Remaining.Equal(decimal.NewFromInt(6000)))
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "food", report.Rows[1][1])

	mock.SetWriteError(errors.New("quota exceeded"))
	_, err := env.run("", "export", "sheets")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestExportSheetsNotConfigured(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"} {
		t.Setenv(name, "")
	}

	_, err := env.run("", "export", "sheets")
	require.ErrorIs(t, err, common.ErrMissingConfig)
	assert.Contains(t, common.UserMessage(err), "sheets-login")

	_, err = env.run("", "export", "sheets-login")
	require.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestExportSheetsLogin(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

	var got sheets.LoginOptions
	prev := sheetsLogin
	sheetsLogin = func(_ context.Context, opts sheets.LoginOptions) (*oauth2.Token, error) {
		got = opts
		opts.OpenURL("https://accounts.example/consent")
		return nil, nil
	}
	t.Cleanup(func() { sheetsLogin = prev })

	out := env.mustRun("export", "sheets-login")
	assert.Contains(t, out, "https://accounts.example/consent")
	assert.Contains(t, out, "Saved Google credentials")
	assert.Equal(t, "client-id", got.ClientID)
	assert.Equal(t, filepath.Join(env.dir, ".config", "spend", "sheets-token.json"), got.TokenFile)
	assert.Equal(t, sheets.DefaultCallbackAddr, got.CallbackAddr)
}

func TestImportOFX(t *testing.T) {
	env := newTestEnv(t)
	statement := filepath.Join("testdata", "hdfc_jan_2024.ofx")

	out := env.mustRun("import", "ofx", statement, "--dry-run")
	assert.Contains(t, out, "Found 3 transactions: 2 new, 0 duplicates, 1 credits skipped")
	assert.Contains(t, out, "SWIGGY")
	assert.Contains(t, out, "Dry run: nothing saved.")
	assert.Contains(t, env.mustRun("expense", "list"), "No expenses yet")

	out, err := env.run("y\n", "import", "ofx", filepath.Join("testdata", "*.ofx"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 2 expenses")

	list := env.mustRun("expense", "list")
	assert.Contains(t, list, "SWIGGY")
	assert.Contains(t, list, "Food & Dining")
	assert.Contains(t, list, "BIG BAZAAR")

	out = env.mustRun("import", "ofx", statement, "--yes")
	assert.Contains(t, out, "2 duplicates")
	assert.Contains(t, out, "Nothing new to import.")
}

func TestImportOFXErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "import", "ofx", filepath.Join(env.dir, "nope-*.ofx"))
	require.ErrorIs(t, err, common.ErrNotFound)

	bad := filepath.Join(env.dir, "bad.ofx")
	require.NoError(t, os.WriteFile(bad, []byte("not an ofx file"), 0o600))
	_, err = env.run("", "import", "ofx", bad)
	require.Error(t, err)
	assert.Equal(t, "bad.ofx is not a readable OFX statement", common.UserMessage(err))
}

func TestImportPlaid(t *testing.T) {
	env := newTestEnv(t)

	mock := plaid.NewMockClient()
	mock.GetTransactionsFn = func(_ context.Context, _, _ time.Time) ([]model.BankTransaction, error) {
		return []model.BankTransaction{
			{
				ID:           "tx-1",
				Date:         env.now.AddDate(0, 0, -2),
				Name:         "UBER INDIA SYSTEMS",
				MerchantName: "Uber",
				Amount:       decimal.NewFromInt(320),
				Direction:    model.DirectionDebit,
			},
			{
				ID:        "tx-2",
				Date:      env.now.AddDate(0, 0, -1),
				Name:      "SALARY",
				Amount:    decimal.NewFromInt(50000),
				Direction: model.DirectionCredit,
			},
		}, nil
	}
	prev := newBankSource
	newBankSource = func() (service.TransactionSource, error) { return mock, nil }
	t.Cleanup(func() { newBankSource = prev })

	out, err := env.run("", "import", "plaid", "--days", "7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Import cancelled.", "end of input declines")

	out = env.mustRun("import", "plaid", "--yes")
	assert.Contains(t, out, "Imported 1 expenses")

	require.Len(t, mock.GetTransactionsCalls, 2)
	assert.Equal(t, env.now.Add(-7*24*time.Hour), mock.GetTransactionsCalls[0].StartDate)
	assert.Equal(t, env.now.Add(-30*24*time.Hour), mock.GetTransactionsCalls[1].StartDate)

	list := env.mustRun("expense", "list")
	assert.Contains(t, list, "Uber")
	assert.Contains(t, list, "Transport")
}

func TestImportPlaidNotConfigured(t *testing.T) {
	env := newTestEnv(t)
	prev := newBankSource
	newBankSource = func() (service.TransactionSource, error) { return nil, common.ErrMissingConfig }
	t.Cleanup(func() { newBankSource = prev })

	_, err := env.run("", "import", "plaid")
	require.ErrorIs(t, err, common.ErrMissingConfig)
	assert.Contains(t, common.UserMessage(err), "PLAID_CLIENT_ID")
}
