// Package storage reads dataset objects from S3-compatible object storage.
//
// It wraps the MinIO Go client behind the Client interface so the source
// loader can be tested with core/storage/mocks. ReadObject downloads one
// object into memory and maps missing buckets or keys to ErrObjectNotFound.
// ListDatasets lists the .csv, .tsv and .json objects under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "prices/2020.csv", cfg.Storage.ObjectLimit())
package storage
