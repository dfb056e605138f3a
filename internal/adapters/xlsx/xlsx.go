// Package xlsx renders tabular data into a single sheet spreadsheet
package xlsx

import (
	"github.com/xuri/excelize/v2"

	perr "linetrack/internal/platform/errors"
)

// ContentType is the media type of the rendered workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// defaultSheet is the sheet excelize creates with a new workbook
const defaultSheet = "Sheet1"

// Table is a header row plus data rows, cells are written with their Go types
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// Render writes t as a workbook and returns its bytes
func Render(t Table) ([]byte, error) {
	if t.Sheet == "" {
		t.Sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if t.Sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, t.Sheet); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "name sheet %q", t.Sheet)
		}
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := setRow(f, t.Sheet, 1, header); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := setRow(f, t.Sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "write workbook")
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, n int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "row %d", n)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "write row %d", n)
	}
	return nil
}
