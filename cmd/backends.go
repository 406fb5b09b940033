package cmd

import (
	"fmt"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/database"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openBackends connects only the backends the given references need.
// File references need neither.
func openBackends(cfg *config.Config, logg *zap.Logger, refs ...string) (storage.Client, *gorm.DB, error) {
	var needStorage, needDB bool
	for _, raw := range refs {
		ref, err := source.ParseRef(raw)
		if err != nil {
			return nil, nil, err
		}
		switch ref.Scheme {
		case source.SchemeS3:
			needStorage = true
		case source.SchemeDB:
			needDB = true
		}
	}

	var client storage.Client
	if needStorage {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		client = c
		logg.Debug("Connected to storage", zap.String("endpoint", cfg.Storage.Endpoint))
	}

	var db *gorm.DB
	if needDB {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db = conn
		logg.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	return client, db, nil
}
