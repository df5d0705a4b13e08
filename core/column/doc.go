// Package column converts between zero-based column indices and spreadsheet
// column letters.
//
// Letters follow the bijective base-26 convention used by spreadsheet
// applications: "A".."Z" act as the digits 1..26 and there is no zero digit,
// so 25 is "Z", 26 is "AA", 51 is "AZ" and 702 is "AAA".
//
// # Selections
//
// Column choices made by a user are kept as letters and re-validated against
// the width of the table they are applied to. Resolve falls back to the first
// column when a letter no longer fits, which happens when a workbook is swapped
// after a column was picked.
//
// # Usage
//
//	letters := column.Encode(27)       // "AB"
//	idx, err := column.Decode("AB")    // 27, nil
//	idx = column.Resolve("AB", width)  // 0 when width <= 27
package column
