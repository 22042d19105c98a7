package extract

import "strings"

var pfsSheetCandidates = []string{
	"NHS PFS Payment Calculation",
	"PFS Payment Calculation",
	"Pharmacy First Payment Calculation",
	"Pharmacy First Scotland",
	"NHS PFS Calculation",
	"PFS Calculation",
}

var pfsKeywordFallback = []string{"PFS", "Pharmacy First", "Payment Calculation"}

// pfsHeaderSearchDepth bounds the header hunt on the PFS sheet.
const pfsHeaderSearchDepth = 20

// keywords that make an unmatched description row worth surfacing to the
// operator. Unmatched rows never populate a field: guessing a label onto
// the wrong condition is worse than dropping it.
var pfsSuspectKeywords = []string{
	"PAYMENT", "ACTIVITY", "PFS", "UTI",
	"TREATMENT", "CONSULTATION", "IMPETIGO", "SHINGLES",
}

type pfsTarget struct {
	key string
	ptr func(*PFSDetails) *float64
}

// pfsLabelTable maps normalized description text to a record field. Exact
// match only: header detection and sheet resolution are the fuzzy layers,
// this table is not.
var pfsLabelTable = map[string]pfsTarget{
	"BASE PAYMENT":            {"basePayment", func(d *PFSDetails) *float64 { return &d.BasePayment }},
	"PFS BASE PAYMENT":        {"basePayment", func(d *PFSDetails) *float64 { return &d.BasePayment }},
	"MONTHLY BASE PAYMENT":    {"basePayment", func(d *PFSDetails) *float64 { return &d.BasePayment }},
	"ACTIVITY PAYMENT":        {"activityPayment", func(d *PFSDetails) *float64 { return &d.ActivityPayment }},
	"PFS ACTIVITY PAYMENT":    {"activityPayment", func(d *PFSDetails) *float64 { return &d.ActivityPayment }},
	"TOTAL PAYMENT":           {"totalPayment", func(d *PFSDetails) *float64 { return &d.TotalPayment }},
	"PFS TOTAL PAYMENT":       {"totalPayment", func(d *PFSDetails) *float64 { return &d.TotalPayment }},
	"WEIGHTED ACTIVITY TOTAL": {"weightedActivityTotal", func(d *PFSDetails) *float64 { return &d.WeightedActivityTotal }},
	"TOTAL WEIGHTED ACTIVITY": {"weightedActivityTotal", func(d *PFSDetails) *float64 { return &d.WeightedActivityTotal }},
	"TREATMENT ITEMS":         {"treatmentItems", func(d *PFSDetails) *float64 { return &d.TreatmentItems }},
	"TOTAL TREATMENT ITEMS":   {"treatmentItems", func(d *PFSDetails) *float64 { return &d.TreatmentItems }},
	"TOTAL CONSULTATIONS":     {"totalConsultations", func(d *PFSDetails) *float64 { return &d.TotalConsultations }},
	"TOTAL REFERRALS":         {"totalReferrals", func(d *PFSDetails) *float64 { return &d.TotalReferrals }},

	"UTI TREATMENT ITEMS":               {"utiTreatmentItems", func(d *PFSDetails) *float64 { return &d.UTITreatmentItems }},
	"UNCOMPLICATED UTI TREATMENT ITEMS": {"utiTreatmentItems", func(d *PFSDetails) *float64 { return &d.UTITreatmentItems }},
	"UTI TREATMENT WEIGHTING":           {"utiTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.UTITreatmentWeighting }},
	"UTI WEIGHTING":                     {"utiTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.UTITreatmentWeighting }},
	"UTI TREATMENT WEIGHTED SUBTOTAL":   {"utiTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.UTITreatmentWeightedSubtotal }},
	"UTI WEIGHTED SUBTOTAL":             {"utiTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.UTITreatmentWeightedSubtotal }},
	"UTI CONSULTATIONS":                 {"utiConsultations", func(d *PFSDetails) *float64 { return &d.UTIConsultations }},
	"UTI CONSULTATION WEIGHTING":        {"utiConsultWeighting", func(d *PFSDetails) *float64 { return &d.UTIConsultWeighting }},
	"UTI CONSULTATION WEIGHTED SUBTOTAL": {"utiConsultWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.UTIConsultWeightedSubtotal }},
	"UTI REFERRALS":                      {"utiReferrals", func(d *PFSDetails) *float64 { return &d.UTIReferrals }},
	"UTI REFERRAL WEIGHTING":             {"utiReferralWeighting", func(d *PFSDetails) *float64 { return &d.UTIReferralWeighting }},
	"UTI REFERRAL WEIGHTED SUBTOTAL":     {"utiReferralWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.UTIReferralWeightedSubtotal }},

	"IMPETIGO TREATMENT ITEMS":                {"impetigoTreatmentItems", func(d *PFSDetails) *float64 { return &d.ImpetigoTreatmentItems }},
	"IMPETIGO TREATMENT WEIGHTING":            {"impetigoTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.ImpetigoTreatmentWeighting }},
	"IMPETIGO WEIGHTING":                      {"impetigoTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.ImpetigoTreatmentWeighting }},
	"IMPETIGO TREATMENT WEIGHTED SUBTOTAL":    {"impetigoTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ImpetigoTreatmentWeightedSubtotal }},
	"IMPETIGO WEIGHTED SUBTOTAL":              {"impetigoTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ImpetigoTreatmentWeightedSubtotal }},
	"IMPETIGO CONSULTATIONS":                  {"impetigoConsultations", func(d *PFSDetails) *float64 { return &d.ImpetigoConsultations }},
	"IMPETIGO CONSULTATION WEIGHTING":         {"impetigoConsultWeighting", func(d *PFSDetails) *float64 { return &d.ImpetigoConsultWeighting }},
	"IMPETIGO CONSULTATION WEIGHTED SUBTOTAL": {"impetigoConsultWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ImpetigoConsultWeightedSubtotal }},
	"IMPETIGO REFERRALS":                      {"impetigoReferrals", func(d *PFSDetails) *float64 { return &d.ImpetigoReferrals }},
	"IMPETIGO REFERRAL WEIGHTING":             {"impetigoReferralWeighting", func(d *PFSDetails) *float64 { return &d.ImpetigoReferralWeighting }},
	"IMPETIGO REFERRAL WEIGHTED SUBTOTAL":     {"impetigoReferralWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ImpetigoReferralWeightedSubtotal }},

	"SHINGLES TREATMENT ITEMS":                {"shinglesTreatmentItems", func(d *PFSDetails) *float64 { return &d.ShinglesTreatmentItems }},
	"SHINGLES TREATMENT WEIGHTING":            {"shinglesTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.ShinglesTreatmentWeighting }},
	"SHINGLES WEIGHTING":                      {"shinglesTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.ShinglesTreatmentWeighting }},
	"SHINGLES TREATMENT WEIGHTED SUBTOTAL":    {"shinglesTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ShinglesTreatmentWeightedSubtotal }},
	"SHINGLES WEIGHTED SUBTOTAL":              {"shinglesTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ShinglesTreatmentWeightedSubtotal }},
	"SHINGLES CONSULTATIONS":                  {"shinglesConsultations", func(d *PFSDetails) *float64 { return &d.ShinglesConsultations }},
	"SHINGLES CONSULTATION WEIGHTING":         {"shinglesConsultWeighting", func(d *PFSDetails) *float64 { return &d.ShinglesConsultWeighting }},
	"SHINGLES CONSULTATION WEIGHTED SUBTOTAL": {"shinglesConsultWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ShinglesConsultWeightedSubtotal }},
	"SHINGLES REFERRALS":                      {"shinglesReferrals", func(d *PFSDetails) *float64 { return &d.ShinglesReferrals }},
	"SHINGLES REFERRAL WEIGHTING":             {"shinglesReferralWeighting", func(d *PFSDetails) *float64 { return &d.ShinglesReferralWeighting }},
	"SHINGLES REFERRAL WEIGHTED SUBTOTAL":     {"shinglesReferralWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.ShinglesReferralWeightedSubtotal }},

	"SKIN INFECTION TREATMENT ITEMS":                {"skinInfectionTreatmentItems", func(d *PFSDetails) *float64 { return &d.SkinInfectionTreatmentItems }},
	"SKIN INFECTION TREATMENT WEIGHTING":            {"skinInfectionTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.SkinInfectionTreatmentWeighting }},
	"SKIN INFECTION WEIGHTING":                      {"skinInfectionTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.SkinInfectionTreatmentWeighting }},
	"SKIN INFECTION TREATMENT WEIGHTED SUBTOTAL":    {"skinInfectionTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.SkinInfectionTreatmentWeightedSubtotal }},
	"SKIN INFECTION WEIGHTED SUBTOTAL":              {"skinInfectionTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.SkinInfectionTreatmentWeightedSubtotal }},
	"SKIN INFECTION CONSULTATIONS":                  {"skinInfectionConsultations", func(d *PFSDetails) *float64 { return &d.SkinInfectionConsultations }},
	"SKIN INFECTION CONSULTATION WEIGHTING":         {"skinInfectionConsultWeighting", func(d *PFSDetails) *float64 { return &d.SkinInfectionConsultWeighting }},
	"SKIN INFECTION CONSULTATION WEIGHTED SUBTOTAL": {"skinInfectionConsultWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.SkinInfectionConsultWeightedSubtotal }},
	"SKIN INFECTION REFERRALS":                      {"skinInfectionReferrals", func(d *PFSDetails) *float64 { return &d.SkinInfectionReferrals }},
	"SKIN INFECTION REFERRAL WEIGHTING":             {"skinInfectionReferralWeighting", func(d *PFSDetails) *float64 { return &d.SkinInfectionReferralWeighting }},
	"SKIN INFECTION REFERRAL WEIGHTED SUBTOTAL":     {"skinInfectionReferralWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.SkinInfectionReferralWeightedSubtotal }},

	"HAYFEVER TREATMENT ITEMS":                {"hayfeverTreatmentItems", func(d *PFSDetails) *float64 { return &d.HayfeverTreatmentItems }},
	"HAY FEVER TREATMENT ITEMS":               {"hayfeverTreatmentItems", func(d *PFSDetails) *float64 { return &d.HayfeverTreatmentItems }},
	"HAYFEVER TREATMENT WEIGHTING":            {"hayfeverTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.HayfeverTreatmentWeighting }},
	"HAYFEVER WEIGHTING":                      {"hayfeverTreatmentWeighting", func(d *PFSDetails) *float64 { return &d.HayfeverTreatmentWeighting }},
	"HAYFEVER TREATMENT WEIGHTED SUBTOTAL":    {"hayfeverTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.HayfeverTreatmentWeightedSubtotal }},
	"HAYFEVER WEIGHTED SUBTOTAL":              {"hayfeverTreatmentWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.HayfeverTreatmentWeightedSubtotal }},
	"HAYFEVER CONSULTATIONS":                  {"hayfeverConsultations", func(d *PFSDetails) *float64 { return &d.HayfeverConsultations }},
	"HAYFEVER CONSULTATION WEIGHTING":         {"hayfeverConsultWeighting", func(d *PFSDetails) *float64 { return &d.HayfeverConsultWeighting }},
	"HAYFEVER CONSULTATION WEIGHTED SUBTOTAL": {"hayfeverConsultWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.HayfeverConsultWeightedSubtotal }},
	"HAYFEVER REFERRALS":                      {"hayfeverReferrals", func(d *PFSDetails) *float64 { return &d.HayfeverReferrals }},
	"HAYFEVER REFERRAL WEIGHTING":             {"hayfeverReferralWeighting", func(d *PFSDetails) *float64 { return &d.HayfeverReferralWeighting }},
	"HAYFEVER REFERRAL WEIGHTED SUBTOTAL":     {"hayfeverReferralWeightedSubtotal", func(d *PFSDetails) *float64 { return &d.HayfeverReferralWeightedSubtotal }},
}

// normalizePFSLabel collapses whitespace, strips a trailing colon and
// uppercases, so the table lookup stays an exact match on tidy text.
func normalizePFSLabel(s string) string {
	s = strings.Join(strings.Fields(trimCell(s)), " ")
	s = strings.TrimSuffix(s, ":")
	return strings.ToUpper(strings.TrimSpace(s))
}

// ExtractPFSDetails reads the Pharmacy First weighted-activity breakdown.
// Returns nil when the workbook has no usable PFS data at all, which the
// assembler records as "no PFS section" rather than an all-zero one.
func ExtractPFSDetails(wb *Workbook, diag Diag) *PFSDetails {
	sheet := ResolveSheet(wb, pfsSheetCandidates)
	if sheet == nil {
		sheet = ResolveSheetByKeywords(wb, pfsKeywordFallback)
	}
	if sheet == nil {
		diag.Warnf("pfs: no candidate sheet found")
		return nil
	}
	diag.Infof("pfs: using sheet %q", sheet.Name)

	descCol, valueCol, headerRow, ok := findPFSHeader(sheet.Rows)
	if !ok {
		diag.Warnf("pfs: header row not found in sheet %q", sheet.Name)
		return nil
	}
	diag.Infof("pfs: header at row %d (desc col %d, value col %d)", headerRow+1, descCol, valueCol)

	details := &PFSDetails{}
	found := map[string]float64{}

	for r := headerRow + 1; r < len(sheet.Rows); r++ {
		row := sheet.Rows[r]
		label := normalizePFSLabel(cellAt(row, descCol))
		if label == "" {
			continue
		}
		target, known := pfsLabelTable[label]
		if !known {
			if hasAnyKeyword(label, pfsSuspectKeywords) {
				diag.Warnf("pfs: unmatched row %d: %q", r+1, label)
			}
			continue
		}
		value, parsed := ParseCurrency(cellAt(row, valueCol))
		if !parsed {
			continue
		}
		*target.ptr(details) = value
		found[target.key] = value
	}

	// derive totals the template sometimes omits
	if _, ok := found["totalPayment"]; !ok {
		base, hasBase := found["basePayment"]
		activity, hasActivity := found["activityPayment"]
		if hasBase && hasActivity {
			details.TotalPayment = base + activity
			diag.Infof("pfs: derived total payment %.2f", details.TotalPayment)
		}
	}
	if _, ok := found["weightedActivityTotal"]; !ok {
		sum := 0.0
		for key, v := range found {
			if strings.HasSuffix(key, "WeightedSubtotal") {
				sum += v
			}
		}
		details.WeightedActivityTotal = sum
		if sum > 0 {
			diag.Infof("pfs: derived weighted activity total %.2f", sum)
		}
	}

	_, hasBase := found["basePayment"]
	_, hasActivity := found["activityPayment"]
	_, hasItems := found["treatmentItems"]
	if !hasBase && !hasActivity && !hasItems && details.WeightedActivityTotal <= 0 {
		diag.Warnf("pfs: sheet %q carried no usable data", sheet.Name)
		return nil
	}
	return details
}

// findPFSHeader locates the row holding both the information-description
// header and a cell that is exactly "Value", within the first rows.
func findPFSHeader(rows [][]string) (descCol, valueCol, headerRow int, ok bool) {
	limit := pfsHeaderSearchDepth
	if len(rows) < limit {
		limit = len(rows)
	}
	for r := 0; r < limit; r++ {
		descCol, valueCol = -1, -1
		for c, cell := range rows[r] {
			if descCol < 0 && containsFold(cell, "PFS Information Description") {
				descCol = c
			}
			if valueCol < 0 && trimCell(cell) == "Value" {
				valueCol = c
			}
		}
		if descCol >= 0 && valueCol >= 0 {
			return descCol, valueCol, r, true
		}
	}
	return -1, -1, -1, false
}

func hasAnyKeyword(label string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(label, k) {
			return true
		}
	}
	return false
}
