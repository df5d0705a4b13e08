// Package merge exposes workbook reconciliation as a service and as HTTP routes.
//
// A merge takes one parent workbook and any number of child workbooks. Each
// workbook is validated, parsed through the shared sheet.Loader (children in
// parallel), and the selected sheets are handed to the reconcile engine.
//
// # Outcomes
//
//   - idle: no parent or no children were supplied. Parent sheet details are
//     still reported so a client can offer sheet and column choices.
//   - empty: no child row carried a value.
//   - ok: records were extracted; conflicts, new keys and the fill count are
//     reported, exports are uploaded when storage is configured, and a
//     summary row is written when history is enabled.
//
// # HTTP Endpoints
//
//   - POST /merge : Runs a merge over multipart uploads.
//   - POST /merge/inspect : Lists sheets and columns of one workbook.
//   - GET /merge/runs : Lists recorded runs.
//   - GET /merge/runs/:id/download : Downloads an export (?kind=records|filled).
package merge
