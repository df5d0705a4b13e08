package sheet

// Table is an ordered sequence of rows addressed purely by position.
// Rows may be ragged; positions beyond a row's length read as Missing.
type Table [][]Cell

// NewTable builds a table from plain Go values, converting each with Of.
func NewTable(rows ...[]any) Table {
	t := make(Table, len(rows))
	for i, row := range rows {
		t[i] = make([]Cell, len(row))
		for j, v := range row {
			t[i][j] = Of(v)
		}
	}
	return t
}

// Width returns the length of the longest row.
func (t Table) Width() int {
	w := 0
	for _, row := range t {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At returns the cell at row r, column c, or Missing when out of range.
func (t Table) At(r, c int) Cell {
	if r < 0 || r >= len(t) || c < 0 || c >= len(t[r]) {
		return Missing()
	}
	return t[r][c]
}

// Set stores v at row r, column c, growing the row when needed.
// It reports false when r or c is negative or r is past the last row.
func (t Table) Set(r, c int, v Cell) bool {
	if r < 0 || r >= len(t) || c < 0 {
		return false
	}
	for len(t[r]) <= c {
		t[r] = append(t[r], Missing())
	}
	t[r][c] = v
	return true
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}
