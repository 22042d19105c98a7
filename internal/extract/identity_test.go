package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentity(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Pharmacy Details", Rows: detailsRows()},
	}}
	id := ExtractIdentity(wb, july2025, NopDiag())
	assert.Equal(t, "1234", id.ContractorCode)
	assert.Equal(t, "JANUARY", id.Month)
	assert.Equal(t, 2025, id.Year)
	assert.Equal(t, 12345.67, id.NetPayment)
}

func TestExtractIdentityPaymentMonthFallback(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Details", Rows: [][]string{
			{"", "Contractor Code", "9876"},
			{"", "Payment Month", "DECEMBER"},
		}},
	}}
	id := ExtractIdentity(wb, july2025, NopDiag())
	assert.Equal(t, "9876", id.ContractorCode)
	assert.Equal(t, "DECEMBER", id.Month)
	assert.Equal(t, 2024, id.Year, "December seen in July reads as last year")
}

func TestExtractIdentityMissingSheetKeepsYear(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{Name: "Something Else"}}}
	id := ExtractIdentity(wb, july2025, NopDiag())
	assert.Equal(t, "", id.ContractorCode)
	assert.Equal(t, 2025, id.Year)
}
