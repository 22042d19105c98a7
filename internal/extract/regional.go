package extract

import "strings"

var regionalSheetCandidates = []string{"Regional Payments"}

// rows that describe the table rather than a payment
var regionalHeaderCells = map[string]bool{
	"regional payments": true,
	"description":       true,
	"details":           true,
	"amount":            true,
}

// ExtractRegionalPayments reads the itemized regional payments table.
// Returns nil when the sheet is absent, which the record keeps distinct
// from a present-but-empty table. The row labelled "Sum:" carries the
// sheet's own total and is captured separately, never as a detail row.
func ExtractRegionalPayments(wb *Workbook, diag Diag) *RegionalPayments {
	sheet := ResolveSheet(wb, regionalSheetCandidates)
	if sheet == nil {
		diag.Warnf("regional payments sheet not found")
		return nil
	}
	diag.Infof("regional payments: using sheet %q", sheet.Name)

	out := &RegionalPayments{PaymentDetails: []RegionalPaymentDetail{}}
	for _, row := range sheet.Rows {
		desc := trimCell(cellAt(row, colLabelB))
		if desc == "" {
			desc = trimCell(cellAt(row, colLabelA))
		}
		if desc == "" {
			continue
		}
		rawAmount := cellAt(row, colValueC)

		if strings.EqualFold(desc, "Sum:") || strings.EqualFold(desc, "Sum") {
			out.TotalAmount = NormalizeNumber(rawAmount)
			continue
		}
		if regionalHeaderCells[strings.ToLower(desc)] {
			continue
		}
		amount, ok := ParseCurrency(rawAmount)
		if !ok {
			continue
		}
		out.PaymentDetails = append(out.PaymentDetails, RegionalPaymentDetail{
			Description: desc,
			Amount:      amount,
		})
	}

	diag.Infof("regional payments: %d detail rows, total %.2f",
		len(out.PaymentDetails), out.TotalAmount)
	return out
}
