package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Workbook is the read-only in-memory form every extractor works over.
// Rows are ragged: a row carries only as many cells as the source had.
type Workbook struct {
	Sheets []Sheet
}

type Sheet struct {
	Name string
	Rows [][]string
}

// ErrUnsupportedFile means the upload is neither .xlsx nor legacy .xls.
var ErrUnsupportedFile = errors.New("unsupported spreadsheet file type")

// ParseWorkbook parses raw upload bytes into a Workbook. This is the only
// fatal failure point of the pipeline: a file that cannot be opened as a
// spreadsheet is rejected outright.
func ParseWorkbook(data []byte, filename string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseXLSX(data)
	case ".xls":
		return parseXLS(data)
	default:
		return nil, ErrUnsupportedFile
	}
}

func parseXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			// a single unreadable sheet should not sink the upload
			wb.Sheets = append(wb.Sheets, Sheet{Name: name})
			continue
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	if len(wb.Sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return wb, nil
}

func parseXLS(data []byte) (*Workbook, error) {
	f, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open legacy workbook: %w", err)
	}

	wb := &Workbook{}
	for i := 0; i < f.NumSheets(); i++ {
		sheet := f.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol()+1)
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			rows = append(rows, cells)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheet.Name, Rows: rows})
	}
	if len(wb.Sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return wb, nil
}

// SheetNames returns the verbatim sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		names = append(names, s.Name)
	}
	return names
}
