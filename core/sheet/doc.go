// Package sheet holds the tabular data model and the xlsx loader.
//
// A Table is rows of Cells addressed by position only; the first row is data,
// never a header. Cells carry one of four kinds (missing, text, number, bool)
// and compare strictly by kind and value, so a number never equals the text
// spelling of it.
//
// # Loader
//
// Loader wraps Parse with a cache keyed by the SHA-256 of the file content.
// Entries expire after a TTL and concurrent loads of the same bytes are
// collapsed with singleflight. The loader is owned by whoever creates it (the
// merge service holds one for the life of the process); there is no package
// level cache.
//
// # Writing
//
// WriteTable produces a single-sheet workbook, used for the extracted
// key-value export and the filled parent table.
package sheet
