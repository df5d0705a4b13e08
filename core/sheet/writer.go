package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name of a freshly created workbook.
const DefaultSheet = "Sheet1"

// ContentType is the MIME type of xlsx files.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteTable writes a single-sheet xlsx workbook containing t to w.
// Missing cells are left empty.
func WriteTable(w io.Writer, sheetName string, t Table) error {
	if sheetName == "" {
		sheetName = DefaultSheet
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if sheetName != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheetName); err != nil {
			return fmt.Errorf("failed to name sheet %s: %w", sheetName, err)
		}
	}

	for r, row := range t {
		for c, cell := range row {
			if cell.IsMissing() {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, ref, cell.Value()); err != nil {
				return fmt.Errorf("failed to set %s: %w", ref, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
