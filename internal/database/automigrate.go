package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// modelInfo holds a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

func allModels() []modelInfo {
	return []modelInfo{
		{&domain.StaffProfile{}, "profils"},
		{&domain.Client{}, "clients"},
		{&domain.Project{}, "projets"},
		{&domain.Activity{}, "activites"},
		{&domain.Phase{}, "phases"},
		{&domain.Expense{}, "depenses_projets"},
		{&domain.Investment{}, "investissements"},
		{&domain.PhotoPurge{}, "photos_a_purger"},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models.
// Order matters: referenced tables must exist before their dependents.
func AutoMigrate(db *gorm.DB) error {
	models := allModels()
	targets := make([]interface{}, 0, len(models))
	for _, m := range models {
		targets = append(targets, m.model)
	}
	if err := db.AutoMigrate(targets...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SafeAutoMigrate migrates one table at a time, logging whether each
// table was created or only had its schema updated
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	models := allModels()

	logger.Info("Starting safe auto-migration", zap.Int("total_models", len(models)))

	for _, m := range models {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
