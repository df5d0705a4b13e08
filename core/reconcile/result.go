package reconcile

import (
	"fmt"
	"io"

	"sheet-merger/core/column"
	"sheet-merger/core/sheet"
)

// RecordsFileName is the file name the extracted records are exported under.
// LookupFormula refers to it.
const RecordsFileName = "extracted_key_value_pairs.xlsx"

// recordsHeader is the header row of the records export. Key and Value land
// in columns B and C, which is what LookupFormula ranges over.
var recordsHeader = []sheet.Cell{sheet.Text("source"), sheet.Text("Key"), sheet.Text("Value")}

// Extracted reports whether the pass found any records. A false value is the
// "nothing extracted" outcome, not an error.
func (r *Result) Extracted() bool {
	return len(r.Records) > 0
}

// ConflictFor returns the disagreeing values recorded for key.
func (r *Result) ConflictFor(key sheet.Cell) ([]sheet.Cell, bool) {
	for _, c := range r.Conflicts {
		if c.Key.Equal(key) {
			return c.Values, true
		}
	}
	return nil, false
}

// LookupFormula returns a VLOOKUP formula that pulls values from the records
// export into the parent, keyed on the parent's key column letters.
func (r *Result) LookupFormula(parentKey string) string {
	return fmt.Sprintf("=VLOOKUP(%s, [%s]%s!$B:$C, 2, FALSE)", parentKey, RecordsFileName, sheet.DefaultSheet)
}

// RecordsTable lays the records out as a table with a header row.
func (r *Result) RecordsTable() sheet.Table {
	t := make(sheet.Table, 0, len(r.Records)+1)
	t = append(t, append([]sheet.Cell(nil), recordsHeader...))
	for _, rec := range r.Records {
		t = append(t, []sheet.Cell{sheet.Text(rec.Source), rec.Key, rec.Value})
	}
	return t
}

// WriteRecords writes the records export workbook to w.
func (r *Result) WriteRecords(w io.Writer) error {
	return sheet.WriteTable(w, sheet.DefaultSheet, r.RecordsTable())
}

// WriteFilled writes the filled parent table as a workbook to w.
func (r *Result) WriteFilled(w io.Writer, sheetName string) error {
	return sheet.WriteTable(w, sheetName, r.Filled)
}

// Letters renders a selection as spreadsheet letters, for reports.
func (s Selection) Letters() Columns {
	return Columns{
		ParentKey:   column.Encode(s.ParentKey),
		ParentValue: column.Encode(s.ParentValue),
		ChildKey:    column.Encode(s.ChildKey),
		ChildValue:  column.Encode(s.ChildValue),
	}
}
