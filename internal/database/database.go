package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bookmarkd/internal/models"
)

// Open connects to PostgreSQL and applies the connection-pool settings.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the schema for every model. It is idempotent
// and runs exactly once, at process start, instead of being guarded by a
// per-request initialization flag.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.UserBook{},
		&models.Goal{},
		&models.Club{},
		&models.ClubMembership{},
		&models.ClubPost{},
		&models.ClubComment{},
	)
}
