package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"999.995", "$1,000.00"},
		{"1000000", "$1,000,000.00"},
		{"0.125", "$0.13"},
		{"-42.1", "-$42.10"},
		{"12", "$12.00"},
	}

	for _, tt := range tests {
		got := FormatCurrency(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got, "FormatCurrency(%s)", tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("abc").IsZero())
	assert.True(t, ParseAmount("-5").IsZero())
	assert.True(t, ParseAmount(" 2.25 ").Equal(decimal.RequireFromString("2.25")))
	assert.True(t, ParseAmount("0.1").Equal(decimal.RequireFromString("0.1")))
}
