package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clock pinned to July 2025 (month index 6) for inference tests
var july2025 = time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)

func TestParseDispensingMonthExplicitYear(t *testing.T) {
	m, y := ParseDispensingMonth("JANUARY 2025", july2025)
	assert.Equal(t, "JANUARY", m)
	assert.Equal(t, 2025, y)

	m, y = ParseDispensingMonth("December 1999", july2025)
	assert.Equal(t, "DECEMBER", m)
	assert.Equal(t, 1999, y)
}

func TestParseDispensingMonthInferredYear(t *testing.T) {
	// December (index 11) is later in the calendar than July: last year
	m, y := ParseDispensingMonth("December", july2025)
	assert.Equal(t, "DECEMBER", m)
	assert.Equal(t, 2024, y)

	// March (index 2) has already happened this year
	m, y = ParseDispensingMonth("March", july2025)
	assert.Equal(t, "MARCH", m)
	assert.Equal(t, 2025, y)

	// the current month itself reads as this year
	_, y = ParseDispensingMonth("July", july2025)
	assert.Equal(t, 2025, y)
}

func TestParseDispensingMonthUnknownName(t *testing.T) {
	m, y := ParseDispensingMonth("Brumaire", july2025)
	assert.Equal(t, "BRUMAIRE", m)
	assert.Equal(t, 2025, y, "unmappable month defaults to the current year")
}

func TestParseDispensingMonthEmpty(t *testing.T) {
	m, y := ParseDispensingMonth("", july2025)
	assert.Equal(t, "", m)
	assert.Equal(t, 2025, y)
}

func TestParseDispensingMonthCasePreserved(t *testing.T) {
	m, _ := ParseDispensingMonth("january", july2025)
	assert.Equal(t, "JANUARY", m, "month is stored uppercase")
}
