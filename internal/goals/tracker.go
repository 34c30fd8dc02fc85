// Package goals tracks savings goals and the progress made towards them.
package goals

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/expense"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Tracker owns the list of savings goals. Saved amounts only grow, through
// Contribute.
type Tracker struct {
	logger *slog.Logger
	now    func() time.Time
	newID  expense.IDFunc
	goals  []model.SavingsGoal
	mu     sync.RWMutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDFunc overrides id generation.
func WithIDFunc(f expense.IDFunc) Option {
	return func(t *Tracker) { t.newID = f }
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		now:    time.Now,
		newID:  expense.NewID,
		logger: slog.Default().With("component", "goals"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddGoal creates a goal with nothing saved yet. icon may be a glyph or a
// label from model.GoalIcons; deadline may be nil.
func (t *Tracker) AddGoal(name string, target decimal.Decimal, icon string, deadline *model.Date) (model.SavingsGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavingsGoal{}, model.ErrEmptyName
	}
	if !target.IsPositive() {
		return model.SavingsGoal{}, fmt.Errorf("%w: got %s", model.ErrInvalidTarget, target.String())
	}

	g := model.SavingsGoal{
		ID:           t.newID(),
		Name:         name,
		TargetAmount: target,
		Icon:         model.ResolveGoalIcon(icon),
		SavedAmount:  decimal.Zero,
		CreatedAt:    t.now(),
	}
	if deadline != nil && !deadline.IsZero() {
		d := *deadline
		g.Deadline = &d
	}

	t.mu.Lock()
	t.goals = append(t.goals, g)
	t.mu.Unlock()

	t.logger.Debug("Added savings goal", "id", g.ID, "name", g.Name, "target", target.String())
	return g, nil
}

// Contribute adds amount to a goal's savings. There is no upper clamp.
// An unknown id changes nothing and reports found=false.
func (t *Tracker) Contribute(id string, amount decimal.Decimal) (found bool, err error) {
	if !amount.IsPositive() {
		return false, fmt.Errorf("%w: got %s", model.ErrInvalidAmount, amount.String())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals[i].SavedAmount = t.goals[i].SavedAmount.Add(amount)
			return true, nil
		}
	}
	return false, nil
}

// DeleteGoal removes a goal. An unknown id is a no-op.
func (t *Tracker) DeleteGoal(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals = append(t.goals[:i], t.goals[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the goal with id.
func (t *Tracker) Get(id string) (model.SavingsGoal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, g := range t.goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.SavingsGoal{}, false
}

// List returns a snapshot of all goals in creation order.
func (t *Tracker) List() []model.SavingsGoal {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]model.SavingsGoal, len(t.goals))
	copy(out, t.goals)
	return out
}

// Restore replaces the goals with persisted ones, dropping any with a
// non-positive target.
func (t *Tracker) Restore(goals []model.SavingsGoal) {
	kept := make([]model.SavingsGoal, 0, len(goals))
	for _, g := range goals {
		if !g.TargetAmount.IsPositive() {
			t.logger.Warn("Dropping stored goal with invalid target", "id", g.ID)
			continue
		}
		if g.SavedAmount.IsNegative() {
			g.SavedAmount = decimal.Zero
		}
		if g.ID == "" {
			g.ID = t.newID()
		}
		if g.Icon == "" {
			g.Icon = model.DefaultGoalIcon
		}
		kept = append(kept, g)
	}

	t.mu.Lock()
	t.goals = kept
	t.mu.Unlock()
}

// ProgressPercent returns saved/target*100 capped at 100 for display.
// A goal without a positive target shows 0.
func ProgressPercent(g model.SavingsGoal) decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.SavedAmount.Div(g.TargetAmount).Mul(hundred)
	return decimal.Min(pct, hundred)
}

// Remaining returns how much is still to be saved, never below zero.
func Remaining(g model.SavingsGoal) decimal.Decimal {
	return decimal.Max(g.TargetAmount.Sub(g.SavedAmount), decimal.Zero)
}

// Completed reports whether the saved amount has reached the target.
func Completed(g model.SavingsGoal) bool {
	return g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
}

// DaysRemaining returns whole calendar days from now until the deadline,
// never negative. ok is false when the goal has no deadline.
func DaysRemaining(g model.SavingsGoal, now time.Time) (days int, ok bool) {
	if g.Deadline == nil || g.Deadline.IsZero() {
		return 0, false
	}
	days = model.DateOf(now).DaysUntil(*g.Deadline)
	if days < 0 {
		days = 0
	}
	return days, true
}
