package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Export"

// Workbook builds an XLSX workbook holding the same two-column table as
// DelimitedText, for users who want the download straight in a spreadsheet.
// The caller owns the file and should Close it after writing.
func Workbook(entries []Entry, labelCol, countCol string) (*excelize.File, error) {
	if labelCol == "" || countCol == "" {
		return nil, fmt.Errorf("column names must not be empty")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]any{labelCol, countCol}); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, e := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &[]any{e.Label, e.Count}); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	return f, nil
}
