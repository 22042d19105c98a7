package extract

import "time"

var pharmacyDetailsCandidates = []string{"Pharmacy Details", "Details"}

// Identity is the contractor/month fragment from the details sheet.
type Identity struct {
	ContractorCode string
	Month          string
	Year           int
	NetPayment     float64
}

// ExtractIdentity reads contractor code, dispensing month and net payment
// from the "Pharmacy Details" sheet. A missing sheet yields an empty
// fragment with the year still inferred from now, so the record always
// carries a year.
func ExtractIdentity(wb *Workbook, now time.Time, diag Diag) Identity {
	id := Identity{Year: now.Year()}

	sheet := ResolveSheet(wb, pharmacyDetailsCandidates)
	if sheet == nil {
		diag.Warnf("pharmacy details sheet not found among %v", wb.SheetNames())
		return id
	}
	diag.Infof("pharmacy details: using sheet %q", sheet.Name)

	if v, ok := FindValueByLabel(sheet.Rows, "Contractor Code"); ok {
		id.ContractorCode = trimCell(v)
	} else {
		diag.Warnf("pharmacy details: contractor code label not found")
	}

	rawMonth, ok := FindValueByLabel(sheet.Rows, "Dispensing Month")
	if !ok {
		rawMonth, ok = FindValueByLabel(sheet.Rows, "Payment Month")
	}
	if ok {
		id.Month, id.Year = ParseDispensingMonth(rawMonth, now)
	} else {
		diag.Warnf("pharmacy details: dispensing month label not found")
	}

	if v, ok := FindValueByLabel(sheet.Rows, "Net Payment"); ok {
		id.NetPayment = NormalizeNumber(v)
	}

	return id
}
