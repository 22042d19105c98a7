package extract

import "strings"

// Column positions the label scanner is contractually tied to. The
// schedule template keeps labels in columns A/B and values in C/D.
const (
	colLabelA = 0
	colLabelB = 1
	colValueC = 2
	colValueD = 3
)

// cellAt reads a cell from a possibly ragged row. Missing cells read as "".
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// trimCell trims surrounding whitespace including non-breaking spaces.
func trimCell(s string) string {
	return strings.Trim(s, " \t\r\n ")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FindValueByLabel scans rows top to bottom for a cell containing label.
// Column B is checked first and resolves to column C. A column A match
// resolves to column C, falling back to column D when C is blank. The
// first matching row wins; ("", false) when the grid is exhausted.
func FindValueByLabel(rows [][]string, label string) (string, bool) {
	for _, row := range rows {
		if containsFold(cellAt(row, colLabelB), label) {
			return cellAt(row, colValueC), true
		}
		if containsFold(cellAt(row, colLabelA), label) {
			v := cellAt(row, colValueC)
			if strings.TrimSpace(v) == "" {
				v = cellAt(row, colValueD)
			}
			return v, true
		}
	}
	return "", false
}

// FindValueInRow scans rows for a column B cell containing label and
// returns the cell at the caller's column index. Sections with several
// figures hanging off one label row (item counts in particular) use this
// with their own fixed offsets.
func FindValueInRow(rows [][]string, label string, columnIndex int) (string, bool) {
	for _, row := range rows {
		if containsFold(cellAt(row, colLabelB), label) {
			return cellAt(row, columnIndex), true
		}
	}
	return "", false
}
