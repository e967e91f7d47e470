package db

import (
	"fmt"
	"time"

	"healthbridge/confs"
	"healthbridge/entities"
	"healthbridge/logging"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config returns the gorm settings shared by production and tests:
// constraint errors are translated and timestamps are taken in UTC.
func Config(log logrus.FieldLogger, level string) *gorm.Config {
	return &gorm.Config{
		Logger:         logging.GormLogger(log, level),
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func Connect(cfg confs.DatabaseConfig, log logrus.FieldLogger) (Database, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	if cfg.URL != "" {
		log.Info("Connecting to database using DB_URL...")
	} else {
		log.WithField("host", cfg.Host).Info("Connecting to database using individual parameters...")
	}

	db, err := gorm.Open(postgres.Open(dsn), Config(log, cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(0)

	log.WithFields(logrus.Fields{
		"max_idle": cfg.MaxIdleConns,
		"max_open": cfg.MaxOpenConns,
	}).Info("Database connection established")

	return NewGormDatabase(db), nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(database Database, log logrus.FieldLogger) error {
	log.Info("Running database migrations...")
	err := database.GetDB().AutoMigrate(
		&entities.User{},
		&entities.Profile{},
		&entities.MedicalCondition{},
		&entities.JournalEntry{},
		&entities.HealthService{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database migrations completed")
	return nil
}
