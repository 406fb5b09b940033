// Package config provides configuration management for the dataset reconciler.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml. Defaults come from the `default`
// struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and limits
//   - Database: SQL driver and connection details for db:// references
//   - Storage: S3/MinIO credentials and the default bucket for s3:// references
//   - Log: Logging level and format
//   - Compare: default reconciliation options (COMPARE_MAX_REPORTED_DIFFS, ...)
//   - Read: default CSV/JSON decoding options
//   - Source: dataset cache TTL and base directory
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compare.MaxReportedDiffs)
package config
