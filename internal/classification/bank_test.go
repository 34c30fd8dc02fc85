package classification

import (
	"testing"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankTx(name, merchant, amount string, direction model.TransactionDirection, day int) model.BankTransaction {
	tx := model.BankTransaction{
		Date:         time.Date(2024, time.January, day, 12, 0, 0, 0, time.Local),
		Name:         name,
		MerchantName: merchant,
		Amount:       decimal.RequireFromString(amount),
		AccountID:    "acc",
		Direction:    direction,
	}
	tx.Hash = tx.GenerateHash()
	return tx
}

func TestBankDrafts(t *testing.T) {
	c := NewDefaultClassifier()
	txns := []model.BankTransaction{
		bankTx("UPI/1/SWIGGY", "SWIGGY", "245.50", model.DirectionDebit, 15),
		bankTx("UPI/1/SWIGGY", "SWIGGY", "245.50", model.DirectionDebit, 15),
		bankTx("NEFT-ACME PAYROLL", "ACME PAYROLL", "25000", model.DirectionCredit, 25),
		bankTx("POS UBER TRIP", "UBER TRIP", "180", model.DirectionDebit, 16),
		bankTx("POS CROMA", "CROMA", "999", model.DirectionDebit, 17),
	}
	existing := []model.Expense{{
		Date:   model.NewDate(2024, time.January, 17),
		Amount: decimal.NewFromInt(999),
		Note:   "CROMA",
	}}

	result := c.BankDrafts(txns, existing)
	assert.Equal(t, 1, result.Credits)
	assert.Equal(t, 2, result.Duplicates)
	require.Len(t, result.Drafts, 2)

	assert.Equal(t, model.CategoryFood, result.Drafts[0].Category)
	assert.Equal(t, "SWIGGY", result.Drafts[0].Note)
	assert.Equal(t, "2024-01-15", result.Drafts[0].Date.String())
	assert.Equal(t, model.CategoryTransport, result.Drafts[1].Category)
}

func TestBankDraftsHashesMissing(t *testing.T) {
	tx := bankTx("CHAI POINT", "", "40", model.DirectionDebit, 3)
	tx.Hash = ""
	result := NewDefaultClassifier().BankDrafts([]model.BankTransaction{tx, tx}, nil)
	assert.Equal(t, 1, result.Duplicates)
	require.Len(t, result.Drafts, 1)
	assert.Equal(t, "CHAI POINT", result.Drafts[0].Note)
}

func TestBankDraftsKeepsSameDayRepeatsWithDistinctIDs(t *testing.T) {
	first := bankTx("POS CHAI POINT", "Chai Point", "20", model.DirectionDebit, 9)
	first.ID = "FIT1"
	second := first
	second.ID = "FIT2"
	replayed := first

	result := NewDefaultClassifier().BankDrafts([]model.BankTransaction{first, second, replayed}, nil)
	assert.Equal(t, 1, result.Duplicates)
	require.Len(t, result.Drafts, 2)
	for _, d := range result.Drafts {
		assert.Equal(t, "Chai Point", d.Note)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(20)))
	}
}

func TestBankDraftsMatchesEachExistingExpenseOnce(t *testing.T) {
	first := bankTx("POS CHAI POINT", "Chai Point", "20", model.DirectionDebit, 9)
	first.ID = "FIT1"
	second := first
	second.ID = "FIT2"
	existing := []model.Expense{{
		Date:   model.NewDate(2024, time.January, 9),
		Amount: decimal.NewFromInt(20),
		Note:   "Chai Point",
	}}

	result := NewDefaultClassifier().BankDrafts([]model.BankTransaction{first, second}, existing)
	assert.Equal(t, 1, result.Duplicates)
	assert.Len(t, result.Drafts, 1)
}
