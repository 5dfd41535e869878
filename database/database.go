package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/projecthub/config"
	"github.com/projecthub/logger"
	"github.com/projecthub/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// pure-Go SQLite driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

// Open connects to the store named by url.
// postgres:// and postgresql:// URLs use PostgreSQL, anything else is a SQLite file path.
func Open(url string, log zerolog.Logger) (*gorm.DB, error) {
	if url == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	dialector, err := dialectorFor(url)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Gorm(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Str("driver", db.Dialector.Name()).Msg("✅ Connected to database")
	return db, nil
}

func dialectorFor(url string) (gorm.Dialector, error) {
	if config.IsPostgresURL(url) {
		return postgres.Open(url), nil
	}

	path := strings.TrimPrefix(url, "sqlite://")
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
}

// Migrate creates or updates every table, index and foreign key
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SQLPinger returns the connection pool behind db for health probes
func SQLPinger(db *gorm.DB) (Pinger, error) {
	return db.DB()
}
