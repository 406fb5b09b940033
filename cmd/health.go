package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/database"
	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/storage"
	"dataset-reconciler/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var healthJSON bool

// healthCmd checks the configured backends.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity to object storage and the database",
	Long: `Checks that the default bucket exists and counts its datasets, and pings the database.
A backend that cannot be connected at all is reported as an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		start := time.Now()
		report := &health.Report{Status: health.StatusOK}

		client, storageErr := storage.NewClient(cfg.Storage)
		db, dbErr := database.Connect(cfg.Database)
		if storageErr == nil && dbErr == nil {
			report = health.NewService(client, cfg.Storage.Bucket, db, logg).Check(cmd.Context())
		} else {
			report.Storage = connectResult(storageErr, func() health.CheckResult {
				return health.CheckStorage(cmd.Context(), client, cfg.Storage.Bucket)
			})
			report.Database = connectResult(dbErr, func() health.CheckResult {
				return health.CheckDatabase(cmd.Context(), db)
			})
			report.Status = health.StatusError
		}
		closeDB(db, logg)

		if healthJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Storage: %s %s\n", report.Storage.Status, report.Storage.Error)
			fmt.Fprintf(out, "Database: %s %s\n", report.Database.Status, report.Database.Error)
			fmt.Fprintf(out, "Execution Time: %s\n", time.Since(start).String())
		}

		if report.Status != health.StatusOK {
			exitCode = 1
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "Output the report as JSON")
	RootCmd.AddCommand(healthCmd)
}

// connectResult reports a connection failure or runs the check.
func connectResult(connErr error, check func() health.CheckResult) health.CheckResult {
	if connErr != nil {
		return health.CheckResult{Status: health.StatusError, Error: connErr.Error()}
	}
	return check()
}

func closeDB(db *gorm.DB, logg *zap.Logger) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logg.Warn("Failed to close database", zap.Error(err))
		}
	}
}
