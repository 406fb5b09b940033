package health

import (
	"context"
	"fmt"

	"dataset-reconciler/core/storage"

	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	// Detail carries check-specific facts, such as the number of datasets found.
	Detail map[string]any `json:"detail,omitempty"`
}

// Report combines every dependency check.
type Report struct {
	Status   string      `json:"status"`
	Storage  CheckResult `json:"storage"`
	Database CheckResult `json:"database"`
}

// CheckStorage verifies the bucket exists and counts the datasets in it.
func CheckStorage(ctx context.Context, client storage.Client, bucket string) CheckResult {
	if client == nil {
		return CheckResult{Status: StatusDisabled}
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return CheckResult{Status: StatusError, Error: fmt.Sprintf("failed to check bucket existence: %v", err)}
	}
	if !exists {
		return CheckResult{Status: StatusError, Error: fmt.Sprintf("bucket %s does not exist", bucket)}
	}

	keys, err := storage.ListDatasets(ctx, client, bucket, "")
	if err != nil {
		return CheckResult{Status: StatusError, Error: err.Error()}
	}
	return CheckResult{Status: StatusOK, Detail: map[string]any{"bucket": bucket, "datasets": len(keys)}}
}

// CheckDatabase pings the database.
func CheckDatabase(ctx context.Context, db *gorm.DB) CheckResult {
	if db == nil {
		return CheckResult{Status: StatusDisabled}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return CheckResult{Status: StatusError, Error: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return CheckResult{Status: StatusError, Error: fmt.Sprintf("failed to ping database: %v", err)}
	}
	return CheckResult{Status: StatusOK, Detail: map[string]any{"driver": db.Dialector.Name()}}
}
