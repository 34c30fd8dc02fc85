package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *service.ExpenseReport {
	return &service.ExpenseReport{
		GeneratedAt: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Summary: service.ReportSummary{
			DateRange: service.DateRange{
				Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC),
			},
			Status:    "Looking good",
			Budget:    decimal.NewFromInt(10000),
			Spent:     decimal.NewFromInt(2450),
			Remaining: decimal.NewFromInt(7550),
			ByCategory: []service.CategorySummary{
				{Label: "Food & Dining", Amount: decimal.NewFromInt(2450), Percent: decimal.NewFromInt(100), Count: 2},
			},
		},
		Rows: [][]string{
			{"Date", "Category", "Amount", "Note", "Is Micro-Spend"},
			{"2024-03-01", "food", "2400.00", "Dinner at a very long restaurant name that will not fit", "No"},
			{"2024-03-18", "food", "50.00", "Chai", "Yes"},
		},
	}
}

func TestBuildMonthlyPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BuildMonthlyPDF(&buf, sampleReport()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestBuildMonthlyPDFEmptyReport(t *testing.T) {
	report := &service.ExpenseReport{
		Summary: service.ReportSummary{Budget: decimal.NewFromInt(10000)},
		Rows:    [][]string{{"Date", "Category", "Amount", "Note", "Is Micro-Spend"}},
	}
	var buf bytes.Buffer
	require.NoError(t, BuildMonthlyPDF(&buf, report))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestBuildMonthlyPDFNil(t *testing.T) {
	assert.ErrorIs(t, BuildMonthlyPDF(&bytes.Buffer{}, nil), ErrNilReport)
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "march.pdf")
	require.NoError(t, FileWriter{Path: path}.Write(context.Background(), sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, FileWriter{Path: path}.Write(ctx, sampleReport()), context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
