package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyWorkbook is returned when a workbook has no sheets.
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
	// ErrSheetNotFound is returned when a requested sheet is not in the workbook.
	ErrSheetNotFound = errors.New("sheet not found")
)

// Workbook is a parsed spreadsheet file.
type Workbook struct {
	// Name identifies the source file (e.g. its upload filename).
	Name string
	// Sheets lists sheet names in workbook order.
	Sheets []string

	tables map[string]Table
}

// Table returns the parsed table for a sheet.
// The returned table is shared with the workbook; clone it before mutating.
func (w *Workbook) Table(name string) (Table, error) {
	t, ok := w.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, name, w.Name)
	}
	return t, nil
}

// HasSheet reports whether the workbook contains the named sheet.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.tables[name]
	return ok
}

// withName returns a copy of the workbook under another file name.
// Tables are shared.
func (w *Workbook) withName(name string) *Workbook {
	cp := *w
	cp.Name = name
	return &cp
}

// ResolveSheet returns preferred when it is one of names, otherwise the
// first name. It returns "" when names is empty.
func ResolveSheet(names []string, preferred string) string {
	if len(names) == 0 {
		return ""
	}
	for _, n := range names {
		if n == preferred {
			return n
		}
	}
	return names[0]
}

// Parse reads xlsx content into a Workbook. Every sheet is parsed; the first
// row is data like any other.
func Parse(name string, content []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyWorkbook, name)
	}

	wb := &Workbook{
		Name:   name,
		Sheets: names,
		tables: make(map[string]Table, len(names)),
	}
	for _, sn := range names {
		t, err := readSheet(f, sn)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sn, name, err)
		}
		wb.tables[sn] = t
	}
	return wb, nil
}

func readSheet(f *excelize.File, sheetName string) (Table, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var t Table
	for r := 0; rows.Next(); r++ {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		row := make([]Cell, len(cols))
		for c, raw := range cols {
			if raw == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheetName, ref)
			if err != nil {
				return nil, err
			}
			row[c] = classify(raw, typ)
		}
		t = append(t, row)
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}

	// trailing blank rows carry no data
	for len(t) > 0 && rowIsBlank(t[len(t)-1]) {
		t = t[:len(t)-1]
	}
	return t, nil
}

func classify(raw string, typ excelize.CellType) Cell {
	switch typ {
	case excelize.CellTypeBool:
		return Bool(raw == "1" || raw == "TRUE" || raw == "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return Text(raw)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(f)
	}
	return Text(raw)
}

func rowIsBlank(row []Cell) bool {
	for _, c := range row {
		if !c.IsMissing() {
			return false
		}
	}
	return true
}
