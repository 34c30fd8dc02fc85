// Package expense owns the canonical list of recorded expenses.
package expense

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/google/uuid"
)

// IDFunc generates identifiers for new records.
type IDFunc func() string

// NewID returns a time-ordered UUIDv7, unique even within one millisecond.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Repository holds expenses in insertion order. All mutations are
// serialized; reads return copies.
type Repository struct {
	logger   *slog.Logger
	now      func() time.Time
	newID    IDFunc
	expenses []model.Expense
	mu       sync.RWMutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for CreatedAt and default dates.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDFunc overrides id generation.
func WithIDFunc(f IDFunc) Option {
	return func(r *Repository) { r.newID = f }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// NewRepository creates an empty repository.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		now:    time.Now,
		newID:  NewID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "expense_repository")
	return r
}

// Add validates and appends a draft. Nothing changes when it fails.
func (r *Repository) Add(draft model.ExpenseDraft) (model.Expense, error) {
	if err := draft.Validate(); err != nil {
		return model.Expense{}, err
	}

	now := r.now()
	e := model.Expense{
		ID:        r.newID(),
		Amount:    draft.Amount,
		Category:  draft.Category.Normalize(),
		Note:      draft.Note,
		Date:      draft.Date,
		CreatedAt: now,
	}
	if e.Date.IsZero() {
		e.Date = model.DateOf(now)
	}

	r.mu.Lock()
	r.expenses = append(r.expenses, e)
	r.mu.Unlock()

	r.logger.Debug("Added expense",
		"id", e.ID,
		"amount", e.Amount.String(),
		"category", e.Category,
		"micro_spend", e.IsMicroSpend())
	return e, nil
}

// Update merges patch into the expense with id. An unknown id is not an
// error and changes nothing; found reports whether a record matched.
func (r *Repository) Update(id string, patch model.ExpensePatch) (found bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		r.logger.Debug("Ignoring update of unknown expense", "id", id)
		return false, nil
	}

	updated, err := patch.Apply(r.expenses[idx])
	if err != nil {
		return true, fmt.Errorf("failed to update expense %s: %w", id, err)
	}
	r.expenses[idx] = updated
	return true, nil
}

// Delete removes the expense with id. An unknown id is a no-op.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}
	r.expenses = append(r.expenses[:idx], r.expenses[idx+1:]...)
	return true
}

// Get returns a copy of the expense with id.
func (r *Repository) Get(id string) (model.Expense, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Expense{}, false
	}
	return r.expenses[idx], true
}

// List returns a snapshot; callers may modify it freely.
func (r *Repository) List() []model.Expense {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Expense, len(r.expenses))
	copy(out, r.expenses)
	return out
}

// Len returns the number of expenses.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.expenses)
}

// Restore replaces the contents with previously persisted expenses.
// Records that break the amount invariant are dropped.
func (r *Repository) Restore(expenses []model.Expense) {
	kept := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Amount.IsPositive() {
			r.logger.Warn("Dropping stored expense with invalid amount", "id", e.ID, "amount", e.Amount.String())
			continue
		}
		e.Category = e.Category.Normalize()
		if e.ID == "" {
			e.ID = r.newID()
		}
		kept = append(kept, e)
	}

	r.mu.Lock()
	r.expenses = kept
	r.mu.Unlock()
}

func (r *Repository) indexOf(id string) int {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			return i
		}
	}
	return -1
}
