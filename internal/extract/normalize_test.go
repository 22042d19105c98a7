package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", "123.45", 123.45},
		{"pounds with thousands", "£1,250.50", 1250.50},
		{"dollars", "$3,000", 3000},
		{"euros", "€2,500.75", 2500.75},
		{"surrounding whitespace", "  £42.00  ", 42},
		{"negative", "-15.5", -15.5},
		{"accounting negative", "(1,234.56)", -1234.56},
		{"integer", "100", 100},
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "not a number", 0},
		{"currency symbol only", "£", 0},
		{"mixed garbage", "£12abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNumber(tt.in))
		})
	}
}

func TestParseCurrencyReportsPresence(t *testing.T) {
	v, ok := ParseCurrency("£0.00")
	assert.True(t, ok, "an explicit zero is a present value")
	assert.Equal(t, 0.0, v)

	_, ok = ParseCurrency("")
	assert.False(t, ok, "blank cell is absent, not zero")

	_, ok = ParseCurrency("n/a")
	assert.False(t, ok)
}

func TestNormalizeCountTruncates(t *testing.T) {
	assert.Equal(t, 12, NormalizeCount("12.9"))
	assert.Equal(t, 0, NormalizeCount("x"))
}
