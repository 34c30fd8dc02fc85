// Package receipt turns raw OCR text into a pre-filled expense.
package receipt

import (
	"strings"
	"unicode/utf8"

	"github.com/anoushkasinn/Spend.Sense/internal/classification"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

// MaxMerchantLength is the longest merchant name kept, in characters.
const MaxMerchantLength = 50

// Fields is what could be read off a receipt. Every field degrades
// independently: a nil Amount or Date means the user must supply it.
type Fields struct {
	Amount   *decimal.Decimal
	Date     *model.Date
	RawDate  string
	Category model.CategoryCode
	Merchant string
}

// Draft turns the fields into an expense draft, using today when no date
// was found. The draft amount is zero when no amount was found.
func (f Fields) Draft(today model.Date) model.ExpenseDraft {
	draft := model.ExpenseDraft{
		Category: f.Category,
		Note:     f.Merchant,
		Date:     today,
	}
	if f.Amount != nil {
		draft.Amount = *f.Amount
	}
	if f.Date != nil {
		draft.Date = *f.Date
	}
	return draft
}

// Extractor reads receipt fields using a category classifier.
type Extractor struct {
	classifier *classification.KeywordClassifier
}

// NewExtractor returns an extractor. A nil classifier uses the default rules.
func NewExtractor(classifier *classification.KeywordClassifier) *Extractor {
	if classifier == nil {
		classifier = classification.NewDefaultClassifier()
	}
	return &Extractor{classifier: classifier}
}

// Extract never fails; unreadable parts come back empty.
func (e *Extractor) Extract(rawText string) Fields {
	date, rawDate := ExtractDate(rawText)
	return Fields{
		Amount:   ExtractAmount(rawText),
		Date:     date,
		RawDate:  rawDate,
		Category: e.classifier.Classify(rawText),
		Merchant: ExtractMerchant(rawText),
	}
}

// ExtractMerchant returns the first line longer than two characters,
// trimmed and cut to MaxMerchantLength.
func ExtractMerchant(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= 2 {
			continue
		}
		if utf8.RuneCountInString(line) > MaxMerchantLength {
			line = string([]rune(line)[:MaxMerchantLength])
		}
		return line
	}
	return ""
}
