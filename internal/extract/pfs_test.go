package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pfsWorkbook(rows [][]string) *Workbook {
	return &Workbook{Sheets: []Sheet{{Name: "NHS PFS Payment Calculation", Rows: rows}}}
}

func TestPFSTotalPaymentDerived(t *testing.T) {
	wb := pfsWorkbook([][]string{
		{"PFS Information Description", "Value"},
		{"Base Payment", "1000"},
		{"Activity Payment", "1400.06"},
	})
	d := ExtractPFSDetails(wb, NopDiag())
	require.NotNil(t, d)
	assert.Equal(t, 1000.0, d.BasePayment)
	assert.Equal(t, 1400.06, d.ActivityPayment)
	assert.Equal(t, 2400.06, d.TotalPayment, "total derived from base + activity")
}

func TestPFSExplicitTotalNotOverridden(t *testing.T) {
	wb := pfsWorkbook([][]string{
		{"PFS Information Description", "Value"},
		{"Base Payment", "1000"},
		{"Activity Payment", "1400.06"},
		{"Total Payment", "2500.00"},
	})
	d := ExtractPFSDetails(wb, NopDiag())
	require.NotNil(t, d)
	assert.Equal(t, 2500.00, d.TotalPayment)
}

func TestPFSWeightedActivityDerivedFromSubtotals(t *testing.T) {
	wb := pfsWorkbook([][]string{
		{"PFS Information Description", "Value"},
		{"UTI Treatment Items", "10"},
		{"UTI Weighted Subtotal", "12.5"},
		{"Impetigo Weighted Subtotal", "4.5"},
		{"Shingles Weighted Subtotal", "3"},
	})
	d := ExtractPFSDetails(wb, NopDiag())
	require.NotNil(t, d)
	assert.Equal(t, 20.0, d.WeightedActivityTotal)
	assert.Equal(t, 12.5, d.UTITreatmentWeightedSubtotal)
	assert.Equal(t, 4.5, d.ImpetigoTreatmentWeightedSubtotal)
}

func TestPFSExactLabelMatchOnly(t *testing.T) {
	diag := &captureDiag{}
	wb := pfsWorkbook([][]string{
		{"PFS Information Description", "Value"},
		{"UTI Something Novel", "99"}, // suggestive but unknown: logged, never guessed
		{"Base Payment", "500"},
	})
	d := ExtractPFSDetails(wb, diag)
	require.NotNil(t, d)
	assert.Zero(t, d.UTITreatmentItems)
	assert.Equal(t, 500.0, d.BasePayment)
	assert.NotEmpty(t, diag.warnings, "suggestive unmatched rows are surfaced")
}

func TestPFSLabelNormalization(t *testing.T) {
	wb := pfsWorkbook([][]string{
		{"PFS Information Description", "Value"},
		{"  base   payment: ", "750"},
	})
	d := ExtractPFSDetails(wb, NopDiag())
	require.NotNil(t, d)
	assert.Equal(t, 750.0, d.BasePayment)
}

func TestPFSKeywordSheetFallback(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{{
		Name: "pharmacy first scotland v2",
		Rows: [][]string{
			{"PFS Information Description", "Value"},
			{"Base Payment", "1000"},
		},
	}}}
	d := ExtractPFSDetails(wb, NopDiag())
	require.NotNil(t, d)
	assert.Equal(t, 1000.0, d.BasePayment)
}

func TestPFSNilWhenNoUsableData(t *testing.T) {
	// sheet and header present but no recognized payment or activity rows
	wb := pfsWorkbook([][]string{
		{"PFS Information Description", "Value"},
		{"Some Note", "n/a"},
	})
	assert.Nil(t, ExtractPFSDetails(wb, NopDiag()))

	// no sheet at all
	wb = &Workbook{Sheets: []Sheet{{Name: "Totals"}}}
	assert.Nil(t, ExtractPFSDetails(wb, NopDiag()))

	// sheet without a header row
	wb = pfsWorkbook([][]string{{"nothing to see"}})
	assert.Nil(t, ExtractPFSDetails(wb, NopDiag()))
}

// captureDiag records warnings for assertions.
type captureDiag struct {
	infos    []string
	warnings []string
}

func (c *captureDiag) Infof(format string, args ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, args...))
}

func (c *captureDiag) Warnf(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}
