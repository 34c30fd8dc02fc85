package receipt

import (
	"regexp"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

// numberPattern matches a number with optional thousands commas and paise.
const numberPattern = `(\d+(?:,\d{3})*(?:\.\d{2})?)`

// currencyPattern matches the rupee markers found on Indian receipts.
const currencyPattern = `(?:Rs\.?|₹|INR)`

// amountRule is one anchored pattern whose first group is the number.
type amountRule struct {
	name  string
	regex *regexp.Regexp
}

// amountRules are evaluated in order; every match of every rule yields a
// candidate.
var amountRules = []amountRule{
	{
		name:  "keyword",
		regex: regexp.MustCompile(`(?i)(?:Total|Grand Total|Amount|Net|Payable|Bill)[:\s]*` + currencyPattern + `?\s*` + numberPattern),
	},
	{
		name:  "currency prefix",
		regex: regexp.MustCompile(`(?i)` + currencyPattern + `\s*` + numberPattern),
	},
	{
		name:  "currency suffix",
		regex: regexp.MustCompile(`(?i)` + numberPattern + `\s*` + currencyPattern),
	},
	{
		name:  "bare keyword",
		regex: regexp.MustCompile(`(?i)(?:Total|Amount|Payable)[:\s]*` + numberPattern),
	},
}

// AmountCandidates returns every plausible amount found in text, in rule
// then position order. Values outside (0, MaxReceiptAmount) are dropped.
func AmountCandidates(text string) []decimal.Decimal {
	var candidates []decimal.Decimal
	for _, rule := range amountRules {
		for _, m := range rule.regex.FindAllStringSubmatch(text, -1) {
			value, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
			if err != nil {
				continue
			}
			if !value.IsPositive() || value.GreaterThanOrEqual(model.MaxReceiptAmount) {
				continue
			}
			candidates = append(candidates, value)
		}
	}
	return candidates
}

// ExtractAmount returns the largest candidate amount, on the basis that the
// bill total is the biggest figure on a receipt. Nil when none survive.
func ExtractAmount(text string) *decimal.Decimal {
	candidates := AmountCandidates(text)
	if len(candidates) == 0 {
		return nil
	}
	best := decimal.Max(candidates[0], candidates[1:]...)
	return &best
}
