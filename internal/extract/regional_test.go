package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRegionalPayments(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Regional Payments", Rows: [][]string{
			{"", "Regional Payments"},
			{"", "Description", "Amount"},
			{"", "Flu Vaccination Support", "£150.00"},
			{"", "Minor Ailments Top-Up", "200.50"},
			{"", "Notes only, no amount", ""},
			{"", "Sum:", "£350.50"},
		}},
	}}
	rp := ExtractRegionalPayments(wb, NopDiag())
	require.NotNil(t, rp)
	assert.Equal(t, 350.50, rp.TotalAmount)
	require.Len(t, rp.PaymentDetails, 2)
	assert.Equal(t, "Minor Ailments Top-Up", rp.PaymentDetails[1].Description)
	assert.Equal(t, 200.50, rp.PaymentDetails[1].Amount)
}

func TestExtractRegionalPaymentsSumWithoutColon(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Regional Payments", Rows: [][]string{
			{"", "Winter Pressure Support", "£80.00"},
			{"", "Sum", "£80.00"},
		}},
	}}
	rp := ExtractRegionalPayments(wb, NopDiag())
	require.NotNil(t, rp)
	assert.Equal(t, 80.0, rp.TotalAmount)
	assert.Len(t, rp.PaymentDetails, 1)
}

func TestExtractRegionalPaymentsAbsentSheetIsNil(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{Name: "Pharmacy Details"}}}
	assert.Nil(t, ExtractRegionalPayments(wb, NopDiag()))
}

func TestExtractRegionalPaymentsPresentButEmpty(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Regional Payments", Rows: [][]string{
			{"", "Regional Payments"},
			{"", "Description", "Amount"},
		}},
	}}
	rp := ExtractRegionalPayments(wb, NopDiag())
	require.NotNil(t, rp, "present sheet stays non-nil even with no rows")
	assert.Empty(t, rp.PaymentDetails)
	assert.Zero(t, rp.TotalAmount)
}
