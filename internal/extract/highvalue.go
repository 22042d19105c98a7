package extract

// HighValueGICThreshold is the reporting cutoff: items whose paid GIC is
// below it are not high-value and are dropped. Pinned to the current
// template's reporting rules.
const HighValueGICThreshold = 200.0

// headerSearchDepth bounds the header-row hunt; real templates put the
// header within the first handful of rows but leave preamble above it.
const headerSearchDepth = 30

var highValueSheetCandidates = []string{"High Value Items", "High Value"}

// highValueColumns are the anchored column positions found by a header scan.
type highValueColumns struct {
	headerRow int
	name      int
	gic       int
	quantity  int
	flag      int
}

// ExtractHighValueItems is the strict pass: resolve the High Value sheet,
// anchor columns on the "paid product name" header, and keep rows at or
// above the GIC threshold. Returns an empty list when the sheet or its
// columns cannot be found.
func ExtractHighValueItems(wb *Workbook, diag Diag) []HighValueItem {
	sheet := ResolveSheet(wb, highValueSheetCandidates)
	if sheet == nil {
		diag.Warnf("high value sheet not found")
		return []HighValueItem{}
	}
	diag.Infof("high value: using sheet %q", sheet.Name)

	cols, ok := findHighValueColumns(sheet.Rows, []string{"paid product name"},
		[]string{"paid gic incl"}, diag)
	if !ok {
		// exact-string pass for templates that renamed nothing but pad
		// their headers oddly
		cols, ok = findHighValueColumnsExact(sheet.Rows)
	}
	if !ok {
		diag.Warnf("high value: header row not found in sheet %q", sheet.Name)
		return []HighValueItem{}
	}
	return collectHighValueRows(sheet.Rows, cols, diag)
}

// ExtractHighValueItemsPermissive is the recovery pass run only when the
// strict pass produced nothing: every sheet is searched and several
// header phrase variants are accepted. Allowed to fail silently.
func ExtractHighValueItemsPermissive(wb *Workbook, diag Diag) []HighValueItem {
	nameVariants := []string{"paid product name", "product name", "product description", "drug name"}
	gicVariants := []string{"paid gic incl", "gic incl bb", "paid gic", "gross ingredient cost"}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		cols, ok := findHighValueColumns(sheet.Rows, nameVariants, gicVariants, NopDiag())
		if !ok {
			continue
		}
		diag.Infof("high value (permissive): anchored on sheet %q row %d",
			sheet.Name, cols.headerRow+1)
		if items := collectHighValueRows(sheet.Rows, cols, diag); len(items) > 0 {
			return items
		}
	}
	diag.Warnf("high value (permissive): no sheet yielded items")
	return []HighValueItem{}
}

func findHighValueColumns(rows [][]string, nameVariants, gicVariants []string, diag Diag) (highValueColumns, bool) {
	limit := headerSearchDepth
	if len(rows) < limit {
		limit = len(rows)
	}
	for r := 0; r < limit; r++ {
		nameCol := -1
		for c, cell := range rows[r] {
			for _, v := range nameVariants {
				if containsFold(cell, v) {
					nameCol = c
					break
				}
			}
			if nameCol >= 0 {
				break
			}
		}
		if nameCol < 0 {
			continue
		}

		cols := highValueColumns{headerRow: r, name: nameCol, gic: -1, quantity: -1, flag: -1}
		for c, cell := range rows[r] {
			switch {
			case cols.gic < 0 && matchesAnyFold(cell, gicVariants):
				cols.gic = c
			case cols.quantity < 0 && containsFold(cell, "quantity"):
				cols.quantity = c
			case cols.flag < 0 && containsFold(cell, "service flag"):
				cols.flag = c
			}
		}
		if cols.gic < 0 {
			diag.Warnf("high value: product column found at row %d but no GIC column", r+1)
			continue
		}
		return cols, true
	}
	return highValueColumns{}, false
}

// findHighValueColumnsExact matches header cells by exact trimmed text.
func findHighValueColumnsExact(rows [][]string) (highValueColumns, bool) {
	limit := headerSearchDepth
	if len(rows) < limit {
		limit = len(rows)
	}
	for r := 0; r < limit; r++ {
		cols := highValueColumns{headerRow: r, name: -1, gic: -1, quantity: -1, flag: -1}
		for c, cell := range rows[r] {
			switch trimCell(cell) {
			case "Paid Product Name":
				cols.name = c
			case "Paid GIC incl. BB":
				cols.gic = c
			case "Paid Quantity":
				cols.quantity = c
			case "Service Flag":
				cols.flag = c
			}
		}
		if cols.name >= 0 && cols.gic >= 0 {
			return cols, true
		}
	}
	return highValueColumns{}, false
}

func collectHighValueRows(rows [][]string, cols highValueColumns, diag Diag) []HighValueItem {
	items := []HighValueItem{}
	for r := cols.headerRow + 1; r < len(rows); r++ {
		row := rows[r]
		name := trimCell(cellAt(row, cols.name))
		if name == "" {
			continue
		}
		gic, ok := ParseCurrency(cellAt(row, cols.gic))
		if !ok || gic < HighValueGICThreshold {
			continue
		}
		item := HighValueItem{PaidProductName: name, PaidGICInclBB: gic}
		if cols.quantity >= 0 {
			if q, ok := ParseCurrency(cellAt(row, cols.quantity)); ok {
				item.PaidQuantity = &q
			}
		}
		if cols.flag >= 0 {
			item.ServiceFlag = trimCell(cellAt(row, cols.flag))
		}
		items = append(items, item)
	}
	diag.Infof("high value: %d items at or above %.0f", len(items), HighValueGICThreshold)
	return items
}

func matchesAnyFold(cell string, variants []string) bool {
	for _, v := range variants {
		if containsFold(cell, v) {
			return true
		}
	}
	return false
}
