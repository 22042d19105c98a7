package extract

import "strings"

// ResolveSheet finds the sheet backing a logical section. Candidates are
// tried in order for an exact name match first; only when no candidate
// matches exactly does a second pass try substring containment in both
// directions. Returns nil when nothing matches — callers skip the section
// and fall back to defaults, they never fail the pipeline.
func ResolveSheet(wb *Workbook, candidates []string) *Sheet {
	for _, want := range candidates {
		for i := range wb.Sheets {
			if wb.Sheets[i].Name == want {
				return &wb.Sheets[i]
			}
		}
	}
	for _, want := range candidates {
		for i := range wb.Sheets {
			name := wb.Sheets[i].Name
			if strings.Contains(name, want) || strings.Contains(want, name) {
				return &wb.Sheets[i]
			}
		}
	}
	return nil
}

// ResolveSheetByKeywords is the last-resort resolver: it matches any sheet
// whose name contains one of the fragments, case-insensitively. Used when
// even the substring pass came up empty (PFS sheets in particular carry
// wildly different names across template revisions).
func ResolveSheetByKeywords(wb *Workbook, fragments []string) *Sheet {
	for i := range wb.Sheets {
		lower := strings.ToLower(wb.Sheets[i].Name)
		for _, frag := range fragments {
			if strings.Contains(lower, strings.ToLower(frag)) {
				return &wb.Sheets[i]
			}
		}
	}
	return nil
}
