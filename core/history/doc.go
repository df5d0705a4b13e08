// Package history records a summary row for every merge so operators can list
// past runs and fetch their exports again.
//
// Only counts and the storage key of the exported workbooks are kept; parent
// and child tables never reach the database.
package history
