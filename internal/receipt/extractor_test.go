package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string // empty means no amount
	}{
		{"keyword with currency and commas", "Total: Rs. 1,250.50", "1250.50"},
		{"largest candidate wins", "Total: 500\nRs. 1500", "1500"},
		{"out of range rejected", "Total: 150000", ""},
		{"zero rejected", "Total: 0.00", ""},
		{"currency suffix", "Grand Total 2,999.00 INR", "2999"},
		{"rupee sign", "Paid ₹ 75", "75"},
		{"case insensitive", "AMOUNT PAYABLE: 320.00", "320"},
		{"no anchor", "Table 4 Guests 2", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAmount(tt.text)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(*got), "got %s", got)
		})
	}
}

func TestAmountCandidatesDropsOutOfRange(t *testing.T) {
	candidates := AmountCandidates("Total: 150000\nRs. 99999.99")
	require.Len(t, candidates, 1)
	assert.Equal(t, "99999.99", candidates[0].StringFixed(2))
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantRaw string
	}{
		{"slashes", "Date: 15/03/2024", "2024-03-15", "15/03/2024"},
		{"dashes two digit year", "15-03-24 10:42", "2024-03-15", "15-03-24"},
		{"single digits", "Bill dt 5/7/2023", "2023-07-05", "5/7/2023"},
		{"month name", "Dated 5 March 2024", "2024-03-05", "5 March 2024"},
		{"month abbreviation", "12 SEP 23", "2023-09-12", "12 SEP 23"},
		{"numeric form wins", "12 Jan 2024 printed on 01/02/2024", "2024-02-01", "01/02/2024"},
		{"impossible day", "31/02/2024", "", "31/02/2024"},
		{"impossible month", "10/13/2024", "", "10/13/2024"},
		{"three digit year", "10/10/202", "", "10/10/202"},
		{"no date", "Thank you, visit again", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, raw := ExtractDate(tt.text)
			assert.Equal(t, tt.wantRaw, raw)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"skips short lines", "\n  A\n--\nStarbucks Coffee  \nTotal 250", "Starbucks Coffee"},
		{"truncates", strings.Repeat("x", 60), strings.Repeat("x", 50)},
		{"truncates by characters", strings.Repeat("₹", 60), strings.Repeat("₹", 50)},
		{"nothing qualifies", "ab\n12\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMerchant(tt.text))
		})
	}
}

func TestExtract(t *testing.T) {
	text := `Cafe Coffee Day
Date: 12/03/2024
Cappuccino 180.00
Sandwich 220.00
Total: Rs. 400.00`

	fields := NewExtractor(nil).Extract(text)

	require.NotNil(t, fields.Amount)
	assert.True(t, decimal.NewFromInt(400).Equal(*fields.Amount))
	require.NotNil(t, fields.Date)
	assert.Equal(t, "2024-03-12", fields.Date.String())
	assert.Equal(t, model.CategoryFood, fields.Category)
	assert.Equal(t, "Cafe Coffee Day", fields.Merchant)
}

func TestExtractDegradesOnNoise(t *testing.T) {
	fields := NewExtractor(nil).Extract("@@\n#\n")

	assert.Nil(t, fields.Amount)
	assert.Nil(t, fields.Date)
	assert.Equal(t, model.CategoryOther, fields.Category)
	assert.Empty(t, fields.Merchant)
}

func TestFieldsDraft(t *testing.T) {
	today := model.NewDate(2024, time.April, 1)

	empty := Fields{Category: model.CategoryOther}.Draft(today)
	assert.True(t, empty.Amount.IsZero())
	assert.Equal(t, today, empty.Date)
	assert.Error(t, empty.Validate())

	amount := decimal.NewFromInt(250)
	date := model.NewDate(2024, time.March, 30)
	full := Fields{Amount: &amount, Date: &date, Category: model.CategoryTransport, Merchant: "Ola"}.Draft(today)
	assert.NoError(t, full.Validate())
	assert.Equal(t, "Ola", full.Note)
	assert.Equal(t, date, full.Date)
}
