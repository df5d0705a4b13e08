package reconcile

import (
	"sheet-merger/core/sheet"
)

// Reconcile runs a full pass over parent and children with the given column
// selection. Inputs are left untouched; the filled table is a fresh copy.
func Reconcile(parent sheet.Table, sel Selection, children []Source) *Result {
	records := Extract(children, sel.ChildKey, sel.ChildValue)

	result := &Result{
		Records:   records,
		Conflicts: []Conflict{},
		NewKeys:   []NewKey{},
		Filled:    parent.Clone(),
	}
	result.Summary.Children = len(children)
	result.Summary.Records = len(records)

	if len(records) == 0 {
		return result
	}

	lookup := BuildLookup(parent, sel.ParentKey, sel.ParentValue)
	result.Conflicts, result.NewKeys = classify(records, lookup)
	result.Summary.Conflicts = len(result.Conflicts)
	result.Summary.NewKeys = len(result.NewKeys)

	result.Summary.Filled = fill(result.Filled, sel.ParentKey, sel.ParentValue, records)

	return result
}

// Extract collects a Record for every child row whose value cell is not blank.
func Extract(children []Source, keyCol, valueCol int) []Record {
	records := []Record{}
	for _, src := range children {
		for r := range src.Table {
			value := src.Table.At(r, valueCol)
			if value.IsBlank() {
				continue
			}
			records = append(records, Record{
				Source: src.ID,
				Key:    src.Table.At(r, keyCol),
				Value:  value,
			})
		}
	}
	return records
}

// Lookup maps each parent key to its value.
type Lookup map[sheet.Cell]sheet.Cell

// BuildLookup indexes the parent table by key. Rows with a missing key are
// skipped; for duplicate keys the last row wins.
func BuildLookup(parent sheet.Table, keyCol, valueCol int) Lookup {
	lookup := make(Lookup, len(parent))
	for r := range parent {
		key := parent.At(r, keyCol)
		if key.IsMissing() {
			continue
		}
		lookup[key] = parent.At(r, valueCol)
	}
	return lookup
}

// classify splits records into conflicts and new keys.
func classify(records []Record, lookup Lookup) ([]Conflict, []NewKey) {
	conflicts := []Conflict{}
	newKeys := []NewKey{}
	index := make(map[sheet.Cell]int)

	for _, rec := range records {
		parentValue, ok := lookup[rec.Key]
		if !ok {
			newKeys = append(newKeys, NewKey{Source: rec.Source, Key: rec.Key, Value: rec.Value})
			continue
		}
		if parentValue.IsBlank() || parentValue.Equal(rec.Value) {
			continue
		}

		i, seen := index[rec.Key]
		if !seen {
			i = len(conflicts)
			index[rec.Key] = i
			conflicts = append(conflicts, Conflict{Key: rec.Key, Values: []sheet.Cell{parentValue}})
		}
		conflicts[i].Values = appendDistinct(conflicts[i].Values, rec.Value)
	}

	return conflicts, newKeys
}

func appendDistinct(values []sheet.Cell, v sheet.Cell) []sheet.Cell {
	for _, existing := range values {
		if existing.Equal(v) {
			return values
		}
	}
	return append(values, v)
}

// fill writes record values into blank value cells of t and returns how many
// cells were written. Rows sharing a key are all filled by the first record
// with that key; once filled they are no longer blank, so later records for
// the same key find nothing left to fill. Columns outside the table are
// never created.
func fill(t sheet.Table, keyCol, valueCol int, records []Record) int {
	if width := t.Width(); keyCol >= width || valueCol >= width {
		return 0
	}

	pending := make(map[sheet.Cell][]int)
	for r := range t {
		key := t.At(r, keyCol)
		if key.IsMissing() || !t.At(r, valueCol).IsBlank() {
			continue
		}
		pending[key] = append(pending[key], r)
	}

	filled := 0
	for _, rec := range records {
		rows, ok := pending[rec.Key]
		if !ok {
			continue
		}
		for _, r := range rows {
			if t.Set(r, valueCol, rec.Value) {
				filled++
			}
		}
		delete(pending, rec.Key)
	}
	return filled
}
