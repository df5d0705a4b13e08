package merge

import "time"

// Config holds merge defaults and workbook loading settings.
type Config struct {
	// DefaultSheet is the parent sheet picked when a request names none.
	DefaultSheet string `mapstructure:"default_sheet" default:""`
	// CacheTTL is how long parsed workbooks stay cached. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"30m"`
	// MaxUploadMB caps the size of a single uploaded workbook.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"50"`
	// ParseWorkers bounds how many child workbooks are parsed at once.
	ParseWorkers int `mapstructure:"parse_workers" default:"4"`
	// ExportPrefix is the storage prefix exports are written under.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports"`
	// History enables recording a summary row per merge.
	History bool `mapstructure:"history" default:"false"`
}

// MaxUploadBytes returns MaxUploadMB in bytes, or 0 when uploads are unbounded.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMB) << 20
}

func (c Config) workers() int {
	if c.ParseWorkers <= 0 {
		return 1
	}
	return c.ParseWorkers
}
