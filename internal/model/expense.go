package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// MicroSpendThreshold is the exclusive upper bound of a micro-spend.
	MicroSpendThreshold = decimal.NewFromInt(100)
	// DefaultBudget is the monthly budget used until the user sets one.
	DefaultBudget = decimal.NewFromInt(10000)
	// MaxReceiptAmount is the exclusive upper bound of an amount read off a
	// receipt; larger figures are treated as OCR noise.
	MaxReceiptAmount = decimal.NewFromInt(100000)
)

// Validation errors.
var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrEmptyName     = errors.New("name must not be empty")
	ErrInvalidTarget = errors.New("target amount must be greater than zero")
)

// Expense is a single recorded spend.
type Expense struct {
	CreatedAt time.Time
	Date      Date
	Amount    decimal.Decimal
	ID        string
	Category  CategoryCode
	Note      string
}

// IsMicroSpend reports whether the amount is below MicroSpendThreshold.
func (e Expense) IsMicroSpend() bool {
	return e.Amount.LessThan(MicroSpendThreshold)
}

// expenseJSON is the persisted shape of an expense.
type expenseJSON struct {
	CreatedAt    time.Time       `json:"createdAt"`
	Date         Date            `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	ID           string          `json:"id"`
	Category     CategoryCode    `json:"category"`
	Note         string          `json:"note"`
	IsMicroSpend bool            `json:"isMicroSpend"`
}

// MarshalJSON writes the derived micro-spend flag alongside the fields.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		ID:           e.ID,
		Amount:       e.Amount,
		Category:     e.Category,
		Note:         e.Note,
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
		IsMicroSpend: e.IsMicroSpend(),
	})
}

// UnmarshalJSON ignores any stored micro-spend flag; it is always derived.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var raw expenseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Expense{
		ID:        raw.ID,
		Amount:    raw.Amount,
		Category:  raw.Category,
		Note:      raw.Note,
		Date:      raw.Date,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}

// ExpenseDraft is an expense awaiting confirmation, from manual entry, a
// scanned receipt or a bank import.
type ExpenseDraft struct {
	Date     Date
	Amount   decimal.Decimal
	Category CategoryCode
	Note     string
}

// Validate checks the draft can become an expense.
func (d ExpenseDraft) Validate() error {
	if !d.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, d.Amount.String())
	}
	return nil
}

// ExpensePatch carries the fields to replace on update. Nil fields are kept.
type ExpensePatch struct {
	Amount   *decimal.Decimal
	Category *CategoryCode
	Note     *string
	Date     *Date
}

// Apply merges the patch over e and returns the result.
func (p ExpensePatch) Apply(e Expense) (Expense, error) {
	if p.Amount != nil {
		if !p.Amount.IsPositive() {
			return e, fmt.Errorf("%w: got %s", ErrInvalidAmount, p.Amount.String())
		}
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = p.Category.Normalize()
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.Date != nil && !p.Date.IsZero() {
		e.Date = *p.Date
	}
	return e, nil
}

// Empty reports whether the patch changes nothing.
func (p ExpensePatch) Empty() bool {
	return p.Amount == nil && p.Category == nil && p.Note == nil && p.Date == nil
}
