package sheet

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies the type of value held by a Cell.
type Kind uint8

const (
	// KindMissing marks an absent value (an empty workbook cell).
	KindMissing Kind = iota
	// KindText is a string value.
	KindText
	// KindNumber is a numeric value.
	KindNumber
	// KindBool is a boolean value.
	KindBool
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Cell is a single heterogeneous table value.
// Cells are comparable and can be used as map keys.
type Cell struct {
	kind Kind
	text string
	num  float64
	b    bool
}

// Missing returns the missing cell.
func Missing() Cell { return Cell{} }

// Text returns a text cell. The empty string is kept as text; workbook
// parsing is what turns empty cells into Missing.
func Text(s string) Cell { return Cell{kind: KindText, text: s} }

// Number returns a numeric cell. NaN has no value and yields Missing.
func Number(f float64) Cell {
	if math.IsNaN(f) {
		return Missing()
	}
	if f == 0 {
		// fold -0 so that map lookups treat both zeros as one key
		f = 0
	}
	return Cell{kind: KindNumber, num: f}
}

// Bool returns a boolean cell.
func Bool(v bool) Cell { return Cell{kind: KindBool, b: v} }

// Of converts a Go value into a Cell. Unsupported types become text via
// their default formatting.
func Of(v any) Cell {
	switch t := v.(type) {
	case nil:
		return Missing()
	case Cell:
		return t
	case string:
		return Text(t)
	case bool:
		return Bool(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	default:
		b, _ := json.Marshal(t)
		return Text(string(b))
	}
}

// Kind returns the cell kind.
func (c Cell) Kind() Kind { return c.kind }

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.kind == KindMissing }

// IsBlank reports whether the cell is missing or holds the empty string.
func (c Cell) IsBlank() bool {
	return c.kind == KindMissing || (c.kind == KindText && c.text == "")
}

// Equal compares kind and value. Cells of different kinds are never equal.
func (c Cell) Equal(o Cell) bool { return c == o }

// Value returns the cell as a plain Go value (nil, string, float64 or bool).
func (c Cell) Value() any {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return c.num
	case KindBool:
		return c.b
	default:
		return nil
	}
}

// String formats the cell for display. Missing cells format as "".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindBool:
		if c.b {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// MarshalJSON encodes the cell as its plain value.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

// UnmarshalJSON decodes a plain JSON value into a cell.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Of(v)
	return nil
}
