package database

import (
	"fmt"
	"strings"
	"time"

	"checklist_manager/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Initialize opens the database named by databaseURL and migrates the schema.
// A "sqlite:" prefix selects SQLite; anything else is a postgres DSN.
func Initialize(databaseURL, logLevel string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.New(
			log.StandardLogger(),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  parseLogLevel(logLevel),
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	db, err := gorm.Open(dialector(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database connected and migrated successfully")
	return db, nil
}

func dialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(databaseURL, sqlitePrefix))
	}
	return postgres.Open(databaseURL)
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ChecklistSubtask{},
		&models.Holiday{},
	)
}
