// Package ledger ties the expense list, savings goals and settings together
// and moves them in and out of the state store as one blob.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/advisor"
	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/expense"
	"github.com/anoushkasinn/Spend.Sense/internal/goals"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/anoushkasinn/Spend.Sense/internal/service"
	"github.com/anoushkasinn/Spend.Sense/internal/state"
	"github.com/shopspring/decimal"
)

// ErrInvalidBudget is returned when a budget is not positive.
var ErrInvalidBudget = errors.New("budget must be greater than zero")

// Ledger is the in-memory application state.
type Ledger struct {
	logger   *slog.Logger
	now      func() time.Time
	expenses *expense.Repository
	goals    *goals.Tracker
	engine   *analysis.Engine
	budget   decimal.Decimal
	mu       sync.RWMutex
	darkMode bool
}

type options struct {
	logger *slog.Logger
	now    func() time.Time
	newID  expense.IDFunc
}

// Option configures a Ledger.
type Option func(*options)

// WithClock sets the time source shared by every component.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDFunc sets the id generator for expenses and goals.
func WithIDFunc(f expense.IDFunc) Option {
	return func(o *options) { o.newID = f }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New returns a ledger holding the default state.
func New(opts ...Option) *Ledger {
	o := options{
		logger: slog.Default(),
		now:    time.Now,
		newID:  expense.NewID,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Ledger{
		logger: o.logger.With("component", "ledger"),
		now:    o.now,
		expenses: expense.NewRepository(
			expense.WithClock(o.now),
			expense.WithIDFunc(o.newID),
			expense.WithLogger(o.logger),
		),
		goals: goals.NewTracker(
			goals.WithClock(o.now),
			goals.WithIDFunc(o.newID),
		),
		engine: analysis.NewEngine(analysis.WithClock(o.now)),
		budget: model.DefaultBudget,
	}
}

// Expenses returns the expense repository.
func (l *Ledger) Expenses() *expense.Repository { return l.expenses }

// Goals returns the savings goal tracker.
func (l *Ledger) Goals() *goals.Tracker { return l.goals }

// Engine returns the analytics engine bound to the ledger's clock.
func (l *Ledger) Engine() *analysis.Engine { return l.engine }

// Now returns the current time according to the ledger's clock.
func (l *Ledger) Now() time.Time { return l.now() }

// Budget returns the monthly budget.
func (l *Ledger) Budget() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.budget
}

// SetBudget replaces the monthly budget.
func (l *Ledger) SetBudget(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidBudget, amount.String())
	}
	l.mu.Lock()
	l.budget = amount
	l.mu.Unlock()
	l.logger.Info("Budget updated", "budget", amount.String())
	return nil
}

// DarkMode reports the dark-mode preference.
func (l *Ledger) DarkMode() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.darkMode
}

// ToggleDarkMode flips the dark-mode preference and returns the new value.
func (l *Ledger) ToggleDarkMode() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.darkMode = !l.darkMode
	return l.darkMode
}

// Snapshot returns the persistable state.
func (l *Ledger) Snapshot() state.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return state.State{
		Budget:       l.budget,
		Expenses:     l.expenses.List(),
		SavingsGoals: l.goals.List(),
		DarkMode:     l.darkMode,
	}
}

// Restore replaces the ledger contents with s.
func (l *Ledger) Restore(s state.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.budget = s.Budget
	if !l.budget.IsPositive() {
		l.budget = model.DefaultBudget
	}
	l.darkMode = s.DarkMode
	l.expenses.Restore(s.Expenses)
	l.goals.Restore(s.SavingsGoals)
}

// Load reads the state blob from store. A missing blob leaves the default
// state in place. A corrupt one is copied to state.CorruptKey before the
// defaults replace it, so the next Save cannot destroy it.
func (l *Ledger) Load(ctx context.Context, store service.StateStore) error {
	data, err := store.Get(ctx, state.StorageKey)
	if errors.Is(err, common.ErrNotFound) {
		l.logger.Debug("No stored state, starting fresh")
		l.Restore(state.Default())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	s, err := state.Deserialize(data, state.WithClock(l.now))
	if errors.Is(err, state.ErrCorruptState) {
		key := state.CorruptKey(l.now())
		if err := store.Put(ctx, key, data); err != nil {
			return fmt.Errorf("failed to set aside unreadable state: %w", err)
		}
		l.logger.Warn("Stored state is unreadable, using defaults",
			"error", err,
			"saved_as", key)
	} else if err != nil {
		return fmt.Errorf("failed to decode state: %w", err)
	}

	l.Restore(s)
	l.logger.Debug("State loaded",
		"expenses", l.expenses.Len(),
		"goals", len(l.goals.List()))
	return nil
}

// Save writes the whole state blob to store.
func (l *Ledger) Save(ctx context.Context, store service.StateStore) error {
	data, err := state.Serialize(l.Snapshot())
	if err != nil {
		return err
	}
	if err := store.Put(ctx, state.StorageKey, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// AdvisorContext computes the snapshot the advisor answers from.
func (l *Ledger) AdvisorContext() advisor.Context {
	return advisor.NewContext(l.expenses.List(), l.Budget(), l.engine)
}

// Overview computes the budget overview.
func (l *Ledger) Overview() analysis.BudgetOverview {
	return l.engine.Overview(l.expenses.List(), l.Budget())
}

// Report builds the insights report with a trend of trendDays days.
func (l *Ledger) Report(trendDays int) analysis.Report {
	return l.engine.Report(l.expenses.List(), l.Budget(), trendDays)
}
