package database

import (
	"fmt"
	"time"

	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and runs the schema migrations.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dia gorm.Dialector
	switch cfg.Type {
	case config.DatabasePostgres:
		dia = postgres.Open(cfg.URL)
	case config.DatabaseSQLite:
		dia = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	log := zap.S().Named("gorm")

	newLogger := logger.New(
		zap.NewStdLog(zap.L().Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dia, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to configure connections: %w", err)
	}
	if cfg.Type == config.DatabaseSQLite {
		// SQLite has a single writer, and every ":memory:" connection is a
		// separate database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	log.Infof("database connection established (%s)", cfg.Type)

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	zap.S().Named("gorm").Info("running migrations")
	if err := db.AutoMigrate(
		&models.User{},
		&models.JobSequence{},
		&models.Job{},
		&models.Interview{},
		&models.CalendarEvent{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
