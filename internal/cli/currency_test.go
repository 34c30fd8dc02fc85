package cli

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "₹0"},
		{"99.4", "₹99"},
		{"99.5", "₹100"},
		{"1250.50", "₹1,251"},
		{"10000", "₹10,000"},
		{"125000", "₹1,25,000"},
		{"12345678", "₹1,23,45,678"},
		{"12500000", "₹1,25,00,000"},
		{"-0.4", "₹0"},
		{"-1500", "-₹1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "33.3%", FormatPercent(decimal.RequireFromString("33.333"), 1))
	assert.Equal(t, "70%", FormatPercent(decimal.NewFromInt(70), 0))
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTable(&buf, []string{"ID", "Amount"}, [][]string{
		{"a1", "₹120"},
		{"b22", "₹5"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "a1")
	assert.Contains(t, out, "₹5")
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, SuccessColor, ColorFor("green"))
	assert.Equal(t, WarningColor, ColorFor("yellow"))
	assert.Equal(t, ErrorColor, ColorFor("red"))
	assert.Equal(t, SubtleColor, ColorFor("gray"))
}
