package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/classification"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/config"
	"github.com/anoushkasinn/Spend.Sense/internal/ledger"
	"github.com/anoushkasinn/Spend.Sense/internal/ocr"
	"github.com/anoushkasinn/Spend.Sense/internal/plaid"
	"github.com/anoushkasinn/Spend.Sense/internal/service"
	"github.com/anoushkasinn/Spend.Sense/internal/sheets"
	"github.com/anoushkasinn/Spend.Sense/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Constructors for the external collaborators. Tests replace them.
var (
	newRecognizer = func(cfg ocr.Config) (ocr.Recognizer, error) {
		return ocr.NewTesseract(cfg)
	}
	newBankSource = func() (service.TransactionSource, error) {
		cfg, err := config.LoadPlaidConfig()
		if err != nil {
			return nil, err
		}
		return plaid.NewClient(cfg)
	}
	newSheetsWriter = func(ctx context.Context) (service.ReportWriter, error) {
		cfg, err := config.LoadSheetsConfig()
		if err != nil {
			return nil, err
		}
		return sheets.NewWriter(ctx, *cfg, slog.Default())
	}
	ledgerOptions []ledger.Option
)

// app is what every command works with: the opened store and the ledger
// loaded from it.
type app struct {
	store      *storage.SQLiteStorage
	ledger     *ledger.Ledger
	classifier *classification.KeywordClassifier
	logger     *slog.Logger
	out        io.Writer
	in         io.Reader
}

// initStore opens the configured database and brings its schema up to date.
func initStore(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	store, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	opts := append([]ledger.Option{ledger.WithLogger(logger)}, ledgerOptions...)
	l := ledger.New(opts...)
	if err := l.Load(ctx, store); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{
		store:      store,
		ledger:     l,
		classifier: classification.NewDefaultClassifier(),
		logger:     logger.With("component", "cli"),
		out:        cmd.OutOrStdout(),
		in:         cmd.InOrStdin(),
	}, nil
}

func (a *app) save(ctx context.Context) error {
	return a.ledger.Save(ctx, a.store)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		common.LogError(err, "failed to close database", common.Fields{"path": a.store.Path()})
	}
}

func (a *app) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		a.logger.Error("failed to write output", "error", err)
	}
}

type runFunc func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error

// readOnly wraps fn with opening and closing the app.
func readOnly(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd.Context(), a, cmd, args)
	}
}

// mutating is readOnly plus saving the ledger when fn succeeds.
func mutating(fn runFunc) func(*cobra.Command, []string) error {
	return readOnly(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := fn(ctx, a, cmd, args); err != nil {
			return err
		}
		return a.save(ctx)
	})
}

var (
	errNoChange    = errors.New("nothing to change")
	errAmbiguousID = errors.New("ambiguous id")
)

// parseAmount accepts plain numbers with an optional ₹ or Rs prefix and
// thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "Rs."), "Rs")
	cleaned = strings.ReplaceAll(strings.TrimSpace(cleaned), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("%q is not an amount", s), err)
	}
	return amount.Round(2), nil
}

// shortID is the suffix shown in listings; the random tail of a UUIDv7 is
// what tells ids apart.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// resolveID finds the one id equal to ref or ending in it.
func resolveID(ref string, ids []string) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	var match string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if ref != "" && strings.HasSuffix(id, ref) {
			if match != "" {
				return "", common.NewUserError(fmt.Sprintf("id %q matches more than one entry", ref), errAmbiguousID)
			}
			match = id
		}
	}
	if match == "" {
		return "", common.NewUserError(fmt.Sprintf("no entry with id %q", ref), common.ErrNotFound)
	}
	return match, nil
}
