package extract

var paymentSummaryCandidates = []string{
	"Community Pharmacy Payment Summary",
	"Payment Summary",
	"Summary",
}

// Item-count column offsets on the "Total No Of Items" label row. These
// are a positional contract pinned to the current schedule template; a
// template revision upstream breaks them silently, there is no version
// cell to check.
const (
	colItemsTotal  = 3
	colItemsAMS    = 5
	colItemsMCR    = 6
	colItemsNHSPfs = 7
	colItemsCPUS   = 9
	colItemsOther  = 11
)

// Summary is everything the payment summary sheet contributes.
type Summary struct {
	ItemCounts      ItemCounts
	Financials      Financials
	AdvancePayments AdvancePayments
	ServiceCosts    ServiceCosts
}

// ExtractSummary reads item counts, headline financials, advance payments
// and per-service costs from the payment summary sheet. Absent labels
// leave their fields at zero.
func ExtractSummary(wb *Workbook, diag Diag) Summary {
	var out Summary

	sheet := ResolveSheet(wb, paymentSummaryCandidates)
	if sheet == nil {
		diag.Warnf("payment summary sheet not found among %v", wb.SheetNames())
		return out
	}
	diag.Infof("payment summary: using sheet %q", sheet.Name)

	rows := sheet.Rows

	countAt := func(col int) int {
		v, _ := FindValueInRow(rows, "Total No Of Items", col)
		return NormalizeCount(v)
	}
	out.ItemCounts = ItemCounts{
		Total:  countAt(colItemsTotal),
		AMS:    countAt(colItemsAMS),
		MCR:    countAt(colItemsMCR),
		NHSPfs: countAt(colItemsNHSPfs),
		CPUS:   countAt(colItemsCPUS),
		Other:  countAt(colItemsOther),
	}
	if out.ItemCounts.Total == 0 {
		diag.Warnf("payment summary: item count row not found or zero")
	}

	amount := func(label string) float64 {
		v, _ := FindValueByLabel(rows, label)
		return NormalizeNumber(v)
	}

	out.Financials = Financials{
		GrossIngredientCost:   amount("Gross Ingredient Cost"),
		NetIngredientCost:     amount("Net Ingredient Cost"),
		DispensingPool:        amount("Dispensing Pool"),
		EstablishmentPayment:  amount("Establishment Payment"),
		PharmacyFirstBase:     amount("Pharmacy First Base"),
		PharmacyFirstActivity: amount("Pharmacy First Activity"),
		AverageGrossValue:     amount("Average Gross Value"),
		SupplementaryPayments: amount("Supplementary"),
	}

	out.AdvancePayments = AdvancePayments{
		PreviousMonth: amount("Advance Payment Recovered"),
		NextMonth:     amount("Advance Payment Made"),
	}
	if out.AdvancePayments.PreviousMonth == 0 {
		out.AdvancePayments.PreviousMonth = amount("Previous Month Advance")
	}
	if out.AdvancePayments.NextMonth == 0 {
		out.AdvancePayments.NextMonth = amount("Next Month Advance")
	}

	out.ServiceCosts = ServiceCosts{
		AMS:             amount("AMS Payment"),
		MCR:             amount("MCR Payment"),
		NHSPfs:          amount("NHS PFS Payment"),
		CPUS:            amount("CPUS Payment"),
		GlutenFree:      amount("Gluten Free"),
		StomaService:    amount("Stoma"),
		PublicHealth:    amount("Public Health"),
		UnscheduledCare: amount("Unscheduled Care"),
		Other:           amount("Other Services"),
	}

	return out
}
