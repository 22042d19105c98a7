package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSummaryItemCountOffsets(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Payment Summary", Rows: summaryRows()},
	}}
	s := ExtractSummary(wb, NopDiag())

	assert.Equal(t, 1000, s.ItemCounts.Total)
	assert.Equal(t, 600, s.ItemCounts.AMS)
	assert.Equal(t, 200, s.ItemCounts.MCR)
	assert.Equal(t, 100, s.ItemCounts.NHSPfs)
	assert.Equal(t, 50, s.ItemCounts.CPUS)
	assert.Equal(t, 50, s.ItemCounts.Other)
}

func TestExtractSummaryFinancialsAndAdvances(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Community Pharmacy Payment Summary", Rows: summaryRows()},
	}}
	s := ExtractSummary(wb, NopDiag())

	assert.Equal(t, 10000.0, s.Financials.GrossIngredientCost)
	assert.Equal(t, 9500.0, s.Financials.NetIngredientCost)
	assert.Equal(t, 1000.0, s.Financials.PharmacyFirstBase)
	assert.Equal(t, 1400.06, s.Financials.PharmacyFirstActivity)
	assert.Equal(t, 75.25, s.Financials.SupplementaryPayments)
	assert.Equal(t, 5000.0, s.AdvancePayments.PreviousMonth)
	assert.Equal(t, 5500.0, s.AdvancePayments.NextMonth)
	assert.Equal(t, 6000.0, s.ServiceCosts.AMS)
}

func TestExtractSummaryAdvanceLabelFallback(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Summary", Rows: [][]string{
			{"", "Previous Month Advance", "£4,000.00"},
			{"", "Next Month Advance", "£4,250.00"},
		}},
	}}
	s := ExtractSummary(wb, NopDiag())
	assert.Equal(t, 4000.0, s.AdvancePayments.PreviousMonth)
	assert.Equal(t, 4250.0, s.AdvancePayments.NextMonth)
}

func TestExtractSummaryMissingSheetIsZero(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{Name: "Pharmacy Details"}}}
	s := ExtractSummary(wb, NopDiag())
	assert.Equal(t, Summary{}, s)
}
