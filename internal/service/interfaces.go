// Package service defines the interfaces between the core and its
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

// StateStore is the key-value store the state blob lives in. A missing key
// is reported as common.ErrNotFound.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// TransactionSource yields bank transactions for a period.
type TransactionSource interface {
	GetTransactions(ctx context.Context, start, end time.Time) ([]model.BankTransaction, error)
}

// ReportWriter publishes an expense report somewhere outside the app.
type ReportWriter interface {
	Write(ctx context.Context, report *ExpenseReport) error
}

// ExpenseReport is the data handed to a ReportWriter.
type ExpenseReport struct {
	GeneratedAt time.Time
	Summary     ReportSummary
	Rows        [][]string // Export rows, header first
}

// ReportSummary contains aggregate information for the report.
type ReportSummary struct {
	DateRange   DateRange
	Status      string
	ByCategory  []CategorySummary
	Budget      decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	MicroAmount decimal.Decimal
	MicroCount  int
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// CategorySummary contains aggregated statistics for a category.
type CategorySummary struct {
	Label   string
	Amount  decimal.Decimal
	Percent decimal.Decimal
	Count   int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
