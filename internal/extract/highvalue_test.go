package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highValueSheet(rows [][]string) *Workbook {
	return &Workbook{Sheets: []Sheet{{Name: "High Value Items", Rows: rows}}}
}

func TestHighValueThreshold(t *testing.T) {
	wb := highValueSheet([][]string{
		{"Paid Product Name", "Paid GIC incl. BB", "Paid Quantity", "Service Flag"},
		{"Adalimumab 40mg", "199.99", "2", "AMS"},
		{"Etanercept 50mg", "200.00", "4", "AMS"},
		{"Fingolimod 0.5mg", "200.01", "1", ""},
		{"Apixaban 5mg", "£1,250.50", "56", "MCR"},
	})

	items := ExtractHighValueItems(wb, NopDiag())
	require.Len(t, items, 3, "only items with GIC >= 200 survive")

	assert.Equal(t, "Etanercept 50mg", items[0].PaidProductName)
	assert.Equal(t, 200.00, items[0].PaidGICInclBB)
	assert.Equal(t, 200.01, items[1].PaidGICInclBB)
	assert.Equal(t, 1250.50, items[2].PaidGICInclBB, "currency string parses before the threshold check")

	require.NotNil(t, items[2].PaidQuantity)
	assert.Equal(t, 56.0, *items[2].PaidQuantity)
	assert.Equal(t, "MCR", items[2].ServiceFlag)
}

func TestHighValueSkipsRowsSilently(t *testing.T) {
	wb := highValueSheet([][]string{
		{"Paid Product Name", "Paid GIC incl. BB"},
		{"", "999.99"},              // no product name
		{"Mystery Item", "unknown"}, // unparsable GIC
		{"Real Item", "450.00"},
	})
	items := ExtractHighValueItems(wb, NopDiag())
	require.Len(t, items, 1)
	assert.Equal(t, "Real Item", items[0].PaidProductName)
}

func TestHighValueHeaderBelowPreamble(t *testing.T) {
	rows := [][]string{
		{"High Value Report"},
		{},
		{"Period: JANUARY 2025"},
		{"", "Paid Product Name", "Paid GIC incl. BB"},
		{"", "Tocilizumab 162mg", "£820.00"},
	}
	items := ExtractHighValueItems(highValueSheet(rows), NopDiag())
	require.Len(t, items, 1)
	assert.Equal(t, 820.0, items[0].PaidGICInclBB)
}

func TestHighValueMissingSheetOrColumns(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{Name: "Totals"}}}
	assert.Empty(t, ExtractHighValueItems(wb, NopDiag()))

	// sheet present, header absent
	wb = highValueSheet([][]string{{"just", "noise"}})
	assert.Empty(t, ExtractHighValueItems(wb, NopDiag()))
}

func TestHighValuePermissiveHeaderVariants(t *testing.T) {
	// a renamed sheet and renamed headers that the strict pass rejects
	wb := &Workbook{Sheets: []Sheet{{
		Name: "Expensive Lines",
		Rows: [][]string{
			{"Product Description", "Gross Ingredient Cost"},
			{"Rivaroxaban 20mg", "£350.10"},
			{"Paracetamol 500mg", "3.10"},
		},
	}}}

	assert.Empty(t, ExtractHighValueItems(wb, NopDiag()))

	items := ExtractHighValueItemsPermissive(wb, NopDiag())
	require.Len(t, items, 1)
	assert.Equal(t, "Rivaroxaban 20mg", items[0].PaidProductName)
	assert.Equal(t, 350.10, items[0].PaidGICInclBB)
}
