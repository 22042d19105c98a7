package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSheetExactBeatsSubstring(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Extra Pharmacy Details Notes"},
		{Name: "Pharmacy Details"},
	}}
	got := ResolveSheet(wb, []string{"Pharmacy Details"})
	require.NotNil(t, got)
	assert.Equal(t, "Pharmacy Details", got.Name)
}

func TestResolveSheetSubstringBothDirections(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{Name: "Community Pharmacy Payment Summary 2025"}}}

	// candidate contained in sheet name
	got := ResolveSheet(wb, []string{"Payment Summary"})
	require.NotNil(t, got)

	// sheet name contained in candidate
	wb = &Workbook{Sheets: []Sheet{{Name: "Summary"}}}
	got = ResolveSheet(wb, []string{"Community Pharmacy Payment Summary"})
	require.NotNil(t, got)
}

func TestResolveSheetCandidateOrder(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Details"},
		{Name: "Pharmacy Details"},
	}}
	got := ResolveSheet(wb, []string{"Pharmacy Details", "Details"})
	require.NotNil(t, got)
	assert.Equal(t, "Pharmacy Details", got.Name)
}

func TestResolveSheetNoMatch(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{Name: "Sheet1"}}}
	assert.Nil(t, ResolveSheet(wb, []string{"Regional Payments"}))
}

func TestResolveSheetByKeywords(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Totals"},
		{Name: "nhs pfs calc v3"},
	}}
	got := ResolveSheetByKeywords(wb, []string{"PFS", "Pharmacy First"})
	require.NotNil(t, got)
	assert.Equal(t, "nhs pfs calc v3", got.Name)

	assert.Nil(t, ResolveSheetByKeywords(wb, []string{"High Value"}))
}
