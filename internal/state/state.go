// Package state encodes the whole application state as one blob, the unit
// that is loaded from and saved to the key-value store.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/anoushkasinn/Spend.Sense/internal/receipt"
	"github.com/shopspring/decimal"
)

// StorageKey is the key the blob is stored under.
const StorageKey = "expense-storage"

// corruptKeyLayout timestamps the key a corrupt blob is set aside under.
const corruptKeyLayout = "20060102T150405"

// CorruptKey returns the key an unreadable blob found at t is copied to, so
// that saving a fresh state does not destroy it.
func CorruptKey(t time.Time) string {
	return StorageKey + ".corrupt-" + t.Format(corruptKeyLayout)
}

// Version is written into every envelope.
const Version = 0

// ErrCorruptState is returned when a blob cannot be decoded at all.
var ErrCorruptState = errors.New("stored state is corrupt")

// State is everything that persists between runs.
type State struct {
	Budget       decimal.Decimal
	Expenses     []model.Expense
	SavingsGoals []model.SavingsGoal
	DarkMode     bool
}

// Default returns the state of a fresh install.
func Default() State {
	return State{
		Expenses:     []model.Expense{},
		Budget:       model.DefaultBudget,
		DarkMode:     false,
		SavingsGoals: []model.SavingsGoal{},
	}
}

type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// Amounts are written as JSON numbers, not the quoted strings decimal
// produces by default.
type stateJSON struct {
	Budget       json.Number   `json:"budget"`
	Expenses     []expenseJSON `json:"expenses"`
	SavingsGoals []goalJSON    `json:"savingsGoals"`
	DarkMode     bool          `json:"darkMode"`
}

type expenseJSON struct {
	ID           string             `json:"id"`
	Amount       json.Number        `json:"amount"`
	Category     model.CategoryCode `json:"category"`
	Note         string             `json:"note"`
	Date         model.Date         `json:"date"`
	CreatedAt    time.Time          `json:"createdAt"`
	IsMicroSpend bool               `json:"isMicroSpend"`
}

type goalJSON struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	TargetAmount json.Number `json:"targetAmount"`
	SavedAmount  json.Number `json:"savedAmount"`
	Icon         string      `json:"icon"`
	Deadline     *model.Date `json:"deadline,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Serialize encodes s inside the {"state": ..., "version": 0} envelope.
func Serialize(s State) ([]byte, error) {
	out := stateJSON{
		Budget:       json.Number(s.Budget.String()),
		Expenses:     make([]expenseJSON, 0, len(s.Expenses)),
		SavingsGoals: make([]goalJSON, 0, len(s.SavingsGoals)),
		DarkMode:     s.DarkMode,
	}
	for _, e := range s.Expenses {
		out.Expenses = append(out.Expenses, expenseJSON{
			ID:           e.ID,
			Amount:       json.Number(e.Amount.String()),
			Category:     e.Category,
			Note:         e.Note,
			Date:         e.Date,
			CreatedAt:    e.CreatedAt,
			IsMicroSpend: e.IsMicroSpend(),
		})
	}
	for _, g := range s.SavingsGoals {
		out.SavingsGoals = append(out.SavingsGoals, goalJSON{
			ID:           g.ID,
			Name:         g.Name,
			TargetAmount: json.Number(g.TargetAmount.String()),
			SavedAmount:  json.Number(g.SavedAmount.String()),
			Icon:         g.Icon,
			Deadline:     g.Deadline,
			CreatedAt:    g.CreatedAt,
		})
	}

	inner, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	data, err := json.Marshal(envelope{State: inner, Version: Version})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state envelope: %w", err)
	}
	return data, nil
}

type options struct {
	now func() time.Time
}

// Option configures Deserialize.
type Option func(*options)

// WithClock sets the time used for records that carry no date at all.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

type object map[string]json.RawMessage

// field decodes obj[key] into dst and reports whether it succeeded. A
// missing key or a null value counts as a failure.
func (obj object) field(key string, dst any) bool {
	raw, ok := obj[key]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Deserialize decodes a blob written by Serialize, or a bare state object.
// Each field is decoded on its own: a missing or invalid field falls back to
// its default, and a record is skipped only when its amount is unusable.
// Only input that is not a JSON object at all yields ErrCorruptState,
// together with the default state.
func Deserialize(data []byte, opts ...Option) (State, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := Default()
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return s, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return s, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	inner := []byte(env.State)
	if len(inner) == 0 || string(inner) == "null" {
		inner = data
	}

	var obj object
	if err := json.Unmarshal(inner, &obj); err != nil {
		return s, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	var budget decimal.Decimal
	if obj.field("budget", &budget) && budget.IsPositive() {
		s.Budget = budget
	}
	var darkMode bool
	if obj.field("darkMode", &darkMode) {
		s.DarkMode = darkMode
	}

	var expenses []json.RawMessage
	obj.field("expenses", &expenses)
	for _, raw := range expenses {
		if e, ok := decodeExpense(raw, o.now); ok {
			s.Expenses = append(s.Expenses, e)
		}
	}

	var goals []json.RawMessage
	obj.field("savingsGoals", &goals)
	for _, raw := range goals {
		if g, ok := decodeGoal(raw); ok {
			s.SavingsGoals = append(s.SavingsGoals, g)
		}
	}
	return s, nil
}

func decodeExpense(raw json.RawMessage, now func() time.Time) (model.Expense, bool) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return model.Expense{}, false
	}

	var e model.Expense
	if !obj.field("amount", &e.Amount) || !e.Amount.IsPositive() {
		return model.Expense{}, false
	}
	obj.field("id", &e.ID)
	obj.field("note", &e.Note)
	obj.field("category", &e.Category)
	e.Category = e.Category.Normalize()
	obj.field("createdAt", &e.CreatedAt)

	var date string
	obj.field("date", &date)
	if d, ok := parseStoredDate(date); ok {
		e.Date = d
	}
	if e.Date.IsZero() {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now()
		}
		e.Date = model.DateOf(e.CreatedAt)
	}
	return e, true
}

func decodeGoal(raw json.RawMessage) (model.SavingsGoal, bool) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return model.SavingsGoal{}, false
	}

	var g model.SavingsGoal
	if !obj.field("targetAmount", &g.TargetAmount) || !g.TargetAmount.IsPositive() {
		return model.SavingsGoal{}, false
	}
	if !obj.field("savedAmount", &g.SavedAmount) || g.SavedAmount.IsNegative() {
		g.SavedAmount = decimal.Zero
	}
	obj.field("id", &g.ID)
	obj.field("name", &g.Name)
	obj.field("icon", &g.Icon)
	obj.field("createdAt", &g.CreatedAt)

	var deadline string
	obj.field("deadline", &deadline)
	if d, ok := parseStoredDate(deadline); ok {
		g.Deadline = &d
	}
	return g, true
}

// parseStoredDate accepts ISO dates and timestamps, then the day-first forms
// a receipt scan may have saved verbatim, such as 15/03/2024.
func parseStoredDate(s string) (model.Date, bool) {
	if s == "" {
		return model.Date{}, false
	}
	if d, err := model.ParseDate(s); err == nil {
		return d, true
	}
	if d, _ := receipt.ExtractDate(s); d != nil {
		return *d, true
	}
	return model.Date{}, false
}
