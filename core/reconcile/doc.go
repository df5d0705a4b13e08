// Package reconcile cross-references key-value pairs pulled from child tables
// against a parent table and works out which parent blanks can be filled.
//
// The engine is a pure function of its inputs: it never mutates the parent or
// child tables, holds no state between calls and never fails. Whatever the
// data looks like, Reconcile returns a (possibly empty) Result.
//
// # Pipeline
//
// A reconciliation pass runs four steps:
//
// 1. Extract: every child row whose value cell is not blank becomes a Record
//    (source, key, value).
//
// 2. Lookup: the parent's key column is indexed into a map. Rows with a
//    missing key are skipped and a later row with the same key overwrites an
//    earlier one.
//
// 3. Classify: a record whose key maps to a non-blank parent value that
//    differs from the record's value is a Conflict; a record whose key is not
//    in the parent at all is a NewKey.
//
// 4. Fill: on a clone of the parent, every row with a blank value is filled
//    by the first record (in record order) carrying the row's key.
//
// # Comparison
//
// Keys and values compare strictly by kind and value (see sheet.Cell), so the
// number 1 and the text "1" are different keys. Mismatched kinds simply compare
// unequal.
//
// # Usage Example
//
//	sel := reconcile.Selection{ParentKey: 0, ParentValue: 1, ChildKey: 0, ChildValue: 1}
//	res := reconcile.Reconcile(parent, sel, []reconcile.Source{
//	    {ID: "north.xlsx", Table: north},
//	    {ID: "south.xlsx", Table: south},
//	})
//	if !res.Extracted() {
//	    // nothing to report
//	}
//	fmt.Println(res.Summary.Filled, res.LookupFormula("A"))
package reconcile
