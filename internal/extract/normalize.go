package extract

import (
	"math"
	"strconv"
	"strings"
)

// currencyReplacer strips currency symbols and thousands separators before
// numeric parsing. NBSP shows up in cells exported from some templates.
var currencyReplacer = strings.NewReplacer(
	"£", "",
	"$", "",
	"€", "",
	",", "",
	" ", "",
	" ", "",
)

// NormalizeNumber coerces a raw cell into a float64. Blank or unparsable
// input coerces to 0. It never panics.
func NormalizeNumber(raw string) float64 {
	v, ok := ParseCurrency(raw)
	if !ok {
		return 0
	}
	return v
}

// ParseCurrency parses a currency-formatted cell, reporting whether the
// cell held a usable number at all. Callers that need to tell "missing"
// apart from a true zero use this instead of NormalizeNumber.
func ParseCurrency(raw string) (float64, bool) {
	s := currencyReplacer.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	// accounting-style negatives: (1,234.56)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// NormalizeCount coerces a cell into a whole item count, truncating any
// fractional part a formula cell may carry.
func NormalizeCount(raw string) int {
	return int(NormalizeNumber(raw))
}
