package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testAssembler() *Assembler {
	return NewAssembler(WithClock(func() time.Time { return july2025 }))
}

func detailsRows() [][]string {
	return [][]string{
		{"", "Pharmacy Details"},
		{"", "Contractor Code", "1234"},
		{"", "Dispensing Month", "JANUARY 2025"},
		{"", "Net Payment", "£12,345.67"},
	}
}

func summaryRows() [][]string {
	return [][]string{
		{"", "Community Pharmacy Payment Summary"},
		{"", "Total No Of Items", "", "1000", "", "600", "200", "100", "", "50", "", "50"},
		{"", "Gross Ingredient Cost", "£10,000.00"},
		{"", "Net Ingredient Cost", "£9,500.00"},
		{"", "Dispensing Pool", "£1,200.00"},
		{"", "Establishment Payment", "£950.00"},
		{"", "Pharmacy First Base", "£1,000.00"},
		{"", "Pharmacy First Activity", "£1,400.06"},
		{"", "Average Gross Value", "£10.00"},
		{"", "Supplementary & Other Payments", "£75.25"},
		{"", "Advance Payment Recovered", "£5,000.00"},
		{"", "Advance Payment Made", "£5,500.00"},
		{"", "AMS Payment", "£6,000.00"},
		{"", "MCR Payment", "£1,500.00"},
	}
}

func fullWorkbook() *Workbook {
	return &Workbook{Sheets: []Sheet{
		{Name: "Pharmacy Details", Rows: detailsRows()},
		{Name: "Community Pharmacy Payment Summary", Rows: summaryRows()},
		{Name: "Regional Payments", Rows: [][]string{
			{"", "Regional Payments"},
			{"", "Description", "Amount"},
			{"", "Flu Vaccination Support", "£150.00"},
			{"", "Minor Ailments Top-Up", "200.50"},
			{"", "Sum:", "£350.50"},
		}},
		{Name: "High Value Items", Rows: [][]string{
			{"Paid Product Name", "Paid GIC incl. BB", "Paid Quantity", "Service Flag"},
			{"Apixaban 5mg", "£1,250.50", "56", "MCR"},
		}},
		{Name: "NHS PFS Payment Calculation", Rows: [][]string{
			{"PFS Information Description", "Value"},
			{"Base Payment", "1000"},
			{"Activity Payment", "1400.06"},
			{"UTI Treatment Items", "10"},
			{"UTI Weighted Subtotal", "12.5"},
		}},
	}}
}

func TestAssembleFullWorkbook(t *testing.T) {
	rec, ok := testAssembler().Assemble(fullWorkbook())
	require.True(t, ok)

	assert.Equal(t, "1234", rec.ContractorCode)
	assert.Equal(t, "JANUARY", rec.Month)
	assert.Equal(t, 2025, rec.Year)
	assert.Equal(t, 12345.67, rec.NetPayment)

	assert.Equal(t, ItemCounts{Total: 1000, AMS: 600, MCR: 200, NHSPfs: 100, CPUS: 50, Other: 50}, rec.ItemCounts)
	assert.Equal(t, 10000.0, rec.Financials.GrossIngredientCost)
	assert.Equal(t, 9500.0, rec.Financials.NetIngredientCost)
	assert.Equal(t, 1200.0, rec.Financials.DispensingPool)
	assert.Equal(t, 75.25, rec.Financials.SupplementaryPayments)
	assert.Equal(t, 5000.0, rec.AdvancePayments.PreviousMonth)
	assert.Equal(t, 5500.0, rec.AdvancePayments.NextMonth)
	assert.Equal(t, 6000.0, rec.ServiceCosts.AMS)
	assert.Equal(t, 1500.0, rec.ServiceCosts.MCR)

	require.NotNil(t, rec.RegionalPayments)
	assert.Equal(t, 350.50, rec.RegionalPayments.TotalAmount)
	require.Len(t, rec.RegionalPayments.PaymentDetails, 2)
	assert.Equal(t, "Flu Vaccination Support", rec.RegionalPayments.PaymentDetails[0].Description)
	assert.Equal(t, 150.0, rec.RegionalPayments.PaymentDetails[0].Amount)

	require.NotNil(t, rec.PFSDetails)
	assert.Equal(t, 2400.06, rec.PFSDetails.TotalPayment)
	assert.Equal(t, 12.5, rec.PFSDetails.WeightedActivityTotal)

	require.Len(t, rec.HighValueItems, 1)
	assert.Equal(t, 1250.50, rec.HighValueItems[0].PaidGICInclBB)
}

func TestAssembleMissingRegionalSheetIsIsolated(t *testing.T) {
	wb := fullWorkbook()
	kept := wb.Sheets[:0]
	for _, s := range wb.Sheets {
		if s.Name != "Regional Payments" {
			kept = append(kept, s)
		}
	}
	wb.Sheets = kept

	rec, ok := testAssembler().Assemble(wb)
	require.True(t, ok)
	assert.Nil(t, rec.RegionalPayments, "missing sheet reads as nil, not empty")

	// every other section is untouched
	assert.Equal(t, "1234", rec.ContractorCode)
	assert.Equal(t, 1000, rec.ItemCounts.Total)
	assert.NotNil(t, rec.PFSDetails)
	assert.Len(t, rec.HighValueItems, 1)
}

func TestAssembleEmptyWorkbookStillReturnsRecord(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{Name: "Sheet1"}}}
	rec, ok := testAssembler().Assemble(wb)
	require.NotNil(t, rec)
	assert.False(t, ok, "nothing recognisable means the record is not declared usable")
	assert.Equal(t, "", rec.ContractorCode)
	assert.Equal(t, 2025, rec.Year, "year always populated")
	assert.NotNil(t, rec.HighValueItems)
	assert.Empty(t, rec.HighValueItems)
	assert.Nil(t, rec.RegionalPayments)
	assert.Nil(t, rec.PFSDetails)
}

func TestAssemblePermissiveHighValueFallback(t *testing.T) {
	wb := fullWorkbook()
	// rename the sheet and its headers so only the permissive pass can see it
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == "High Value Items" {
			wb.Sheets[i] = Sheet{
				Name: "Expensive Lines",
				Rows: [][]string{
					{"Product Description", "Gross Ingredient Cost"},
					{"Apixaban 5mg", "£1,250.50"},
				},
			}
		}
	}
	rec, _ := testAssembler().Assemble(wb)
	require.Len(t, rec.HighValueItems, 1)
	assert.Equal(t, "Apixaban 5mg", rec.HighValueItems[0].PaidProductName)
}

// Round trip through real .xlsx bytes: build the canonical workbook with
// excelize, parse it back, and check nothing was silently defaulted.
func TestAssembleRoundTripXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	writeSheet := func(name string, rows [][]string) {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for r, row := range rows {
			for c, cell := range row {
				if cell == "" {
					continue
				}
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, ref, cell))
			}
		}
	}

	writeSheet("Pharmacy Details", detailsRows())
	writeSheet("Community Pharmacy Payment Summary", summaryRows())
	writeSheet("Regional Payments", [][]string{
		{"", "Flu Vaccination Support", "£150.00"},
		{"", "Sum:", "£150.00"},
	})
	require.NoError(t, f.DeleteSheet("Sheet1"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	wb, err := ParseWorkbook(buf.Bytes(), "schedule.xlsx")
	require.NoError(t, err)

	rec, ok := testAssembler().Assemble(wb)
	require.True(t, ok)
	assert.Equal(t, "1234", rec.ContractorCode)
	assert.Equal(t, "JANUARY", rec.Month)
	assert.Equal(t, 2025, rec.Year)
	assert.Equal(t, 12345.67, rec.NetPayment)
	assert.Equal(t, 1000, rec.ItemCounts.Total)
	assert.Equal(t, 50, rec.ItemCounts.Other)
	assert.Equal(t, 10000.0, rec.Financials.GrossIngredientCost)
	require.NotNil(t, rec.RegionalPayments)
	assert.Equal(t, 150.0, rec.RegionalPayments.TotalAmount)
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook([]byte("definitely not a spreadsheet"), "upload.xlsx")
	assert.Error(t, err)

	_, err = ParseWorkbook([]byte{1, 2, 3}, "upload.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}
