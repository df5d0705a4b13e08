// Package config provides configuration management for sheet-merger.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each setting as `default`
// struct tags and are registered by reflection.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials and the bucket receiving exports
//   - Log: Logging level and format
//   - Database: run-history connection (sqlite or mysql)
//   - Merge: default sheet, loader cache TTL, upload limits, history toggle
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Merge.CacheTTL)
package config
