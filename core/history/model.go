package history

import "time"

// MergeRun is the persisted summary of one merge. Table contents are never
// stored, only counts and the export location.
type MergeRun struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ParentName  string    `gorm:"column:parent_name;size:255" json:"parent_name"`
	ParentSheet string    `gorm:"column:parent_sheet;size:255" json:"parent_sheet"`
	ChildCount  int       `gorm:"column:child_count" json:"child_count"`
	Records     int       `gorm:"column:records" json:"records"`
	Conflicts   int       `gorm:"column:conflicts" json:"conflicts"`
	NewKeys     int       `gorm:"column:new_keys" json:"new_keys"`
	Filled      int       `gorm:"column:filled" json:"filled"`
	ArtifactKey string    `gorm:"column:artifact_key;size:512" json:"artifact_key,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the table name used by MergeRun to `merge_runs`.
func (MergeRun) TableName() string {
	return "merge_runs"
}
