package cli

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is the single currency the app deals in.
const CurrencySymbol = "₹"

// rupees groups digits with the en-IN convention.
var rupees = message.NewPrinter(language.MustParse("en-IN"))

// FormatCurrency renders an amount in rupees without paise, grouping digits
// the Indian way: 1,25,000.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + CurrencySymbol + rupees.Sprintf("%d", rounded.IntPart())
}

// FormatPercent renders a percentage with the given number of decimals.
func FormatPercent(pct decimal.Decimal, places int32) string {
	return pct.StringFixed(places) + "%"
}
