package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection tells money leaving the account from money arriving.
type TransactionDirection string

const (
	DirectionDebit  TransactionDirection = "debit"
	DirectionCredit TransactionDirection = "credit"
)

// BankTransaction is a statement line from an imported bank source.
type BankTransaction struct {
	Date         time.Time
	ID           string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name
	AccountID    string
	Hash         string
	Direction    TransactionDirection
	Amount       decimal.Decimal // Always non-negative
}

// GenerateHash creates a hash used to drop duplicates across overlapping
// statements.
func (t *BankTransaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format(DateLayout),
		t.Amount.StringFixed(2),
		t.MerchantName,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Draft converts a debit into an expense draft with the given category.
// Credits and zero amounts are not expenses.
func (t *BankTransaction) Draft(category CategoryCode) (ExpenseDraft, bool) {
	if t.Direction != DirectionDebit || !t.Amount.IsPositive() {
		return ExpenseDraft{}, false
	}
	note := t.MerchantName
	if note == "" {
		note = t.Name
	}
	return ExpenseDraft{
		Amount:   t.Amount,
		Category: category.Normalize(),
		Note:     note,
		Date:     DateOf(t.Date),
	}, true
}
