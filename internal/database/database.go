// Package database opens the gorm connection used by the repositories.
package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/axellelanca/qrlinks/internal/models"
)

const slowQueryThreshold = 200 * time.Millisecond

// zerologWriter lets gorm's logger print through zerolog.
type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msgf(format, args...)
}

// Open connects to the configured database. driver is "sqlite" (pure Go, the
// default) or "postgres" (pgx). Driver errors are translated so that unique
// violations surface as gorm.ErrDuplicatedKey.
// Failed and slow queries are logged to log; a missing row is an expected
// lookup result and is not.
func Open(driver, dsn string, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zerologWriter{log: log.With().Str("component", "gorm").Logger()}, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the links, scan_events and usage_counters tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Link{}, &models.ScanEvent{}, &models.UsageCounter{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying sql.DB.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}
