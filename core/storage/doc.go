// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so merge exports (the extracted key-value
// workbook and the filled parent workbook) can be kept in AWS S3 or a
// self-hosted MinIO and downloaded later by run id.
//
// # Client Interface
//
// The Client interface covers only the calls the exporter makes, which keeps
// the mock in core/storage/mocks small.
//
// # Helpers
//
//   - EnsureBucket: creates the export bucket on startup when missing.
//   - Upload: stores a byte slice with a content type.
//   - Download: reads a whole object back.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
//	err = storage.Upload(ctx, client, cfg.Storage.Bucket, "exports/run/records.xlsx", data, sheet.ContentType)
package storage
