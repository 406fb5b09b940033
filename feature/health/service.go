package health

import (
	"context"

	"dataset-reconciler/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service runs dependency checks.
type Service struct {
	client storage.Client
	bucket string
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new health service. client and db may be nil when the
// dependency is not configured.
func NewService(client storage.Client, bucket string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		db:     db,
		logger: logger,
	}
}

// Check runs every dependency check concurrently. The overall status is
// error when any configured dependency fails.
func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{Status: StatusOK}

	var g errgroup.Group
	g.Go(func() error {
		report.Storage = CheckStorage(ctx, s.client, s.bucket)
		return nil
	})
	g.Go(func() error {
		report.Database = CheckDatabase(ctx, s.db)
		return nil
	})
	_ = g.Wait()

	for _, r := range []CheckResult{report.Storage, report.Database} {
		if r.Status == StatusError {
			report.Status = StatusError
		}
	}
	return report
}
