// Package source resolves dataset references to datasets.
//
// A reference is a local path (optionally file://), an object in S3-compatible
// storage (s3://key in the default bucket or s3://bucket/key) or a database
// table (db://table?index=col). Files and objects are decoded by extension:
// .csv, .tsv or .json.
//
// Identical concurrent loads are deduplicated with singleflight. When
// Config.CacheTTL is set, loaded datasets are kept in memory and callers
// receive copies. LoadPair loads the two sides of a comparison concurrently.
//
// # Usage
//
//	loader := source.NewLoader(client, cfg.Storage, db, logger, cfg.Source)
//	a, b, err := loader.LoadPair(ctx, "s3://prices/2020.csv", "db://prices?index=day", dataset.DefaultReadOptions())
package source
