package db

import (
	"fundtracker/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Manager{},
		&models.Strategy{},
		&models.Fund{},
		&models.FundPerformance{},
		&models.ReportMetadata{},
	)
}
