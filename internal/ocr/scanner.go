package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/anoushkasinn/Spend.Sense/internal/receipt"
)

// ErrUnreadable is returned when recognition fails for any reason. The
// cause is wrapped alongside it.
var ErrUnreadable = errors.New("could not read bill")

// Status is the outcome of a successful recognition.
type Status string

const (
	// StatusRecognized means an amount was found.
	StatusRecognized Status = "recognized"
	// StatusNoAmount means text was read but no amount could be extracted.
	StatusNoAmount Status = "no_amount"
)

// Result is a scanned receipt awaiting user confirmation.
type Result struct {
	Status Status
	Text   string
	Fields receipt.Fields
	Draft  model.ExpenseDraft
}

// Scanner runs a Recognizer and extracts expense fields from its output.
type Scanner struct {
	recognizer Recognizer
	extractor  *receipt.Extractor
	logger     *slog.Logger
	now        func() time.Time
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithExtractor overrides the field extractor.
func WithExtractor(e *receipt.Extractor) ScannerOption {
	return func(s *Scanner) { s.extractor = e }
}

// WithClock overrides the source of "today" for drafts without a date.
func WithClock(now func() time.Time) ScannerOption {
	return func(s *Scanner) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) { s.logger = logger }
}

// NewScanner returns a scanner using recognizer.
func NewScanner(recognizer Recognizer, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		recognizer: recognizer,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.extractor == nil {
		s.extractor = receipt.NewExtractor(nil)
	}
	s.logger = s.logger.With("component", "scanner")
	return s
}

// Scan recognizes imagePath once and extracts its fields. Any recognizer
// failure, including cancellation, is reported as ErrUnreadable.
func (s *Scanner) Scan(ctx context.Context, imagePath string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(int) {}
	}
	text, err := s.recognizer.Recognize(ctx, imagePath, progress)
	if err != nil {
		s.logger.Warn("Recognition failed", "path", imagePath, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	fields := s.extractor.Extract(text)
	result := &Result{
		Status: StatusRecognized,
		Text:   text,
		Fields: fields,
		Draft:  fields.Draft(model.DateOf(s.now())),
	}
	if fields.Amount == nil {
		result.Status = StatusNoAmount
	}

	s.logger.Debug("Scanned receipt",
		"status", result.Status,
		"category", fields.Category,
		"merchant", fields.Merchant)
	return result, nil
}
