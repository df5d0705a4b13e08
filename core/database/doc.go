// Package database opens the gorm connection used by the run history.
//
// Two drivers are supported: sqlite (the default, a local file or ":memory:")
// and mysql for shared deployments. The connection is optional; when it
// fails the merge service simply does not record history.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("History disabled", zap.Error(err))
//	}
package database
