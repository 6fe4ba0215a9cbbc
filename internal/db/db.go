package db

import (
	"fmt"
	"time"

	"github.com/biloute593/GAMELLE-APP/internal/config"
	"github.com/biloute593/GAMELLE-APP/internal/logger"
	"github.com/biloute593/GAMELLE-APP/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectTimeout = 1 * time.Minute
	retryInterval  = 5 * time.Second
)

// New creates a new database connection and migrates the storefront schema.
func New(cfg *config.Config) (*gorm.DB, error) {
	database, err := connectToDatabaseWithRetry(cfg.EnvVars.DatabaseUrl)
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrate creates or updates the tables backing the storefront.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&models.Dish{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// connectToDatabaseWithRetry connects to the database and retries if necessary.
func connectToDatabaseWithRetry(databaseURL string) (*gorm.DB, error) {
	logger.Get().Info("connecting to database")

	start := time.Now()
	for {
		database, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err == nil {
			return database, nil
		}
		if time.Since(start) > connectTimeout {
			return nil, fmt.Errorf("could not connect to database after %s: %w", connectTimeout, err)
		}
		logger.Get().Warn("could not connect to database, retrying...", zap.Error(err))
		time.Sleep(retryInterval)
	}
}
