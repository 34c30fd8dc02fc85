package classification

import (
	"github.com/anoushkasinn/Spend.Sense/internal/model"
)

// ImportResult is the outcome of turning bank transactions into drafts.
type ImportResult struct {
	Drafts     []model.ExpenseDraft
	Credits    int // Incoming money, never an expense
	Duplicates int // Repeated within the batch or already recorded
}

// BankDrafts classifies each debit by its merchant and description and
// returns it as a draft. A transaction repeated in the batch is skipped: by
// its bank id when it has one, otherwise by hash. Each existing expense
// with the same date, amount and note also absorbs one transaction.
func (c *KeywordClassifier) BankDrafts(txns []model.BankTransaction, existing []model.Expense) ImportResult {
	recorded := make(map[string]int, len(existing))
	for _, e := range existing {
		recorded[expenseKey(e.Date, e.Amount.StringFixed(2), e.Note)]++
	}

	var result ImportResult
	seen := make(map[string]bool, len(txns))
	for i := range txns {
		tx := &txns[i]
		key := dedupeKey(tx)
		if seen[key] {
			result.Duplicates++
			continue
		}
		seen[key] = true

		draft, ok := tx.Draft(c.Classify(tx.MerchantName + " " + tx.Name))
		if !ok {
			result.Credits++
			continue
		}
		if k := expenseKey(draft.Date, draft.Amount.StringFixed(2), draft.Note); recorded[k] > 0 {
			recorded[k]--
			result.Duplicates++
			continue
		}
		result.Drafts = append(result.Drafts, draft)
	}
	return result
}

// dedupeKey identifies a transaction within one batch. Two identical
// purchases on the same day differ only by their bank id.
func dedupeKey(tx *model.BankTransaction) string {
	if tx.ID != "" {
		return "id:" + tx.ID
	}
	if tx.Hash != "" {
		return "hash:" + tx.Hash
	}
	return "hash:" + tx.GenerateHash()
}

func expenseKey(d model.Date, amount, note string) string {
	return d.String() + "|" + amount + "|" + note
}
