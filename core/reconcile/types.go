package reconcile

import "sheet-merger/core/sheet"

// Selection holds the zero-based key and value columns for the parent table
// and for all child tables.
type Selection struct {
	// ParentKey is the parent's key column.
	ParentKey int `json:"parent_key"`

	// ParentValue is the parent's value column, the one that gets filled.
	ParentValue int `json:"parent_value"`

	// ChildKey is the key column shared by every child table.
	ChildKey int `json:"child_key"`

	// ChildValue is the value column shared by every child table.
	ChildValue int `json:"child_value"`
}

// Source is one child table and the identifier it is reported under
// (usually its file name).
type Source struct {
	ID    string
	Table sheet.Table
}

// Record is a key-value pair extracted from one child row.
type Record struct {
	// Source identifies the child table the row came from.
	Source string `json:"source"`

	// Key is the cell at the child key column.
	Key sheet.Cell `json:"key"`

	// Value is the cell at the child value column. Never blank.
	Value sheet.Cell `json:"value"`
}

// Conflict is a key whose parent value disagrees with at least one child.
type Conflict struct {
	// Key is the conflicting key.
	Key sheet.Cell `json:"key"`

	// Values are the distinct disagreeing values: the parent's first, then
	// child values in the order they were met.
	Values []sheet.Cell `json:"values"`
}

// NewKey is a child record whose key does not appear in the parent.
type NewKey struct {
	Source string     `json:"source"`
	Key    sheet.Cell `json:"key"`
	Value  sheet.Cell `json:"value"`
}

// Summary provides aggregate counts for a reconciliation pass.
type Summary struct {
	// Children is the number of child tables examined.
	Children int `json:"children"`

	// Records is the number of extracted key-value records.
	Records int `json:"records"`

	// Conflicts counts keys with disagreeing values.
	Conflicts int `json:"conflicts"`

	// NewKeys counts records whose key is absent from the parent.
	NewKeys int `json:"new_keys"`

	// Filled counts parent cells filled from child records.
	Filled int `json:"filled"`
}

// Result is the output of a reconciliation pass.
type Result struct {
	// Records are the extracted key-value pairs in child, then row order.
	Records []Record `json:"records"`

	// Conflicts are ordered by when the key first disagreed.
	Conflicts []Conflict `json:"conflicts"`

	// NewKeys lists every record with an unknown key, one per occurrence.
	NewKeys []NewKey `json:"new_keys"`

	// Filled is a copy of the parent table with blanks filled.
	Filled sheet.Table `json:"-"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}
