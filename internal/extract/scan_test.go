package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindValueByLabelColumnB(t *testing.T) {
	rows := [][]string{
		{"", "Something Else", "1"},
		{"", "Contractor Code", "1234", "ignored"},
	}
	v, ok := FindValueByLabel(rows, "Contractor Code")
	assert.True(t, ok)
	assert.Equal(t, "1234", v)
}

func TestFindValueByLabelColumnAFallsBackToD(t *testing.T) {
	rows := [][]string{
		{"Net Payment", "", "", "£500.00"},
	}
	v, ok := FindValueByLabel(rows, "Net Payment")
	assert.True(t, ok)
	assert.Equal(t, "£500.00", v)

	// column C wins when populated
	rows = [][]string{
		{"Net Payment", "", "£400.00", "£500.00"},
	}
	v, _ = FindValueByLabel(rows, "Net Payment")
	assert.Equal(t, "£400.00", v)
}

func TestFindValueByLabelFirstMatchWins(t *testing.T) {
	rows := [][]string{
		{"", "Dispensing Month", "JANUARY 2025"},
		{"", "Dispensing Month", "FEBRUARY 2025"},
	}
	v, _ := FindValueByLabel(rows, "Dispensing Month")
	assert.Equal(t, "JANUARY 2025", v)
}

func TestFindValueByLabelCaseInsensitive(t *testing.T) {
	rows := [][]string{
		{"", "CONTRACTOR CODE", "9876"},
	}
	v, ok := FindValueByLabel(rows, "contractor code")
	assert.True(t, ok)
	assert.Equal(t, "9876", v)
}

func TestFindValueByLabelExhausted(t *testing.T) {
	rows := [][]string{
		{"", "Other", "x"},
		nil,
		{},
	}
	_, ok := FindValueByLabel(rows, "Contractor Code")
	assert.False(t, ok)
}

func TestFindValueInRowOffsets(t *testing.T) {
	rows := [][]string{
		{"", "Total No Of Items", "", "1000", "", "600", "200", "100", "", "50", "", "50"},
	}
	v, ok := FindValueInRow(rows, "Total No Of Items", colItemsTotal)
	assert.True(t, ok)
	assert.Equal(t, "1000", v)

	v, _ = FindValueInRow(rows, "Total No Of Items", colItemsCPUS)
	assert.Equal(t, "50", v)
}

func TestFindValueInRowRaggedRow(t *testing.T) {
	rows := [][]string{
		{"", "Total No Of Items", "", "1000"},
	}
	v, ok := FindValueInRow(rows, "Total No Of Items", colItemsOther)
	assert.True(t, ok, "label row found even when offset column is missing")
	assert.Equal(t, "", v)
}
