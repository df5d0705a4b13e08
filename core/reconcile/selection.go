package reconcile

import "sheet-merger/core/column"

// Columns is a column selection as the user picked it, in spreadsheet letters.
// Empty child letters default to the parent's letters.
type Columns struct {
	ParentKey   string `json:"parent_key"`
	ParentValue string `json:"parent_value"`
	ChildKey    string `json:"child_key"`
	ChildValue  string `json:"child_value"`
}

// Resolve turns letters into indices valid for tables of the given widths.
// Letters that do not address an existing column fall back to the first one.
func (c Columns) Resolve(parentWidth, childWidth int) Selection {
	childKey := c.ChildKey
	if childKey == "" {
		childKey = column.Default(c.ParentKey, childWidth)
	}
	childValue := c.ChildValue
	if childValue == "" {
		childValue = column.Default(c.ParentValue, childWidth)
	}

	return Selection{
		ParentKey:   column.Resolve(c.ParentKey, parentWidth),
		ParentValue: column.Resolve(c.ParentValue, parentWidth),
		ChildKey:    column.Resolve(childKey, childWidth),
		ChildValue:  column.Resolve(childValue, childWidth),
	}
}
