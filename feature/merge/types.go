package merge

import (
	"sheet-merger/core/reconcile"
)

// Status describes the outcome of a merge request.
type Status string

const (
	// StatusIdle means a parent or every child is missing, so nothing ran.
	StatusIdle Status = "idle"
	// StatusEmpty means the pass ran but no child row had a value.
	StatusEmpty Status = "empty"
	// StatusOK means records were extracted.
	StatusOK Status = "ok"
)

// Artifact kinds accepted by Service.Artifact.
const (
	ArtifactRecords = "records"
	ArtifactFilled  = "filled"
)

// FilledFileName is the file name of the filled parent export.
const FilledFileName = "filled_parent.xlsx"

// Upload is one workbook as received from a user.
type Upload struct {
	Name    string
	Content []byte
}

// Request describes a merge.
type Request struct {
	// Parent is the workbook whose blanks get filled. Nil yields an idle report.
	Parent *Upload
	// Children are the workbooks records are extracted from.
	Children []Upload
	// Sheet is the parent sheet. Empty falls back to the configured default,
	// then to the first sheet.
	Sheet string
	// ChildSheet is the sheet read from every child. Empty means the parent's
	// sheet when a child has one by that name, else the child's first sheet.
	ChildSheet string
	// Columns holds the column letters. Empty child letters follow the parent.
	Columns reconcile.Columns
}

// SheetInfo describes a workbook and the sheet chosen from it.
type SheetInfo struct {
	Name    string   `json:"name"`
	Sheets  []string `json:"sheets"`
	Sheet   string   `json:"sheet"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// Artifacts holds the storage keys of a run's exports.
type Artifacts struct {
	Records string `json:"records"`
	Filled  string `json:"filled"`
}

// Report is the outcome of a merge request.
type Report struct {
	RunID     string               `json:"run_id,omitempty"`
	Status    Status               `json:"status"`
	Message   string               `json:"message"`
	Parent    *SheetInfo           `json:"parent,omitempty"`
	Children  []SheetInfo          `json:"children"`
	Selection reconcile.Columns    `json:"selection"`
	Summary   reconcile.Summary    `json:"summary"`
	Records   []reconcile.Record   `json:"records"`
	Conflicts []reconcile.Conflict `json:"conflicts"`
	NewKeys   []reconcile.NewKey   `json:"new_keys"`

	// Formula is a VLOOKUP hint for filling the parent by hand in Excel.
	Formula string `json:"formula,omitempty"`

	Artifacts *Artifacts `json:"artifacts,omitempty"`

	// Result is the raw engine output, kept for local exports.
	Result *reconcile.Result `json:"-"`
}
