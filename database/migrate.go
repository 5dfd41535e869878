package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/projecthub/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const copyBatchSize = 200

// DBConnection represents a named database connection
type DBConnection struct {
	DB    *gorm.DB
	Name  string
	DbURL string
	log   zerolog.Logger
}

// NewDBConnection creates a new database connection
func NewDBConnection(name, dbURL string, log zerolog.Logger) (*DBConnection, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	db, err := Open(dbURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}

	return &DBConnection{
		DB:    db,
		Name:  name,
		DbURL: dbURL,
		log:   log.With().Str("database", name).Logger(),
	}, nil
}

// Migrate migrates the database schema
func (c *DBConnection) Migrate() error {
	c.log.Info().Msgf("Migrating %s database schema...", c.Name)
	if err := Migrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	c.log.Info().Msgf("✅ %s database schema migrated", c.Name)
	return nil
}

// Close closes the underlying pool
func (c *DBConnection) Close() error {
	return Close(c.DB)
}

// MigrateDataBetweenDatabases copies every row from source to target.
// Tables are copied parents first so foreign keys hold; rows already present in
// the target are skipped, which makes the copy safe to re-run.
func MigrateDataBetweenDatabases(ctx context.Context, source, target *DBConnection) error {
	log := target.log
	log.Info().Msg("Starting data migration from source to target...")

	steps := []func() error{
		func() error { return copyTable[models.User](ctx, source, target, "users") },
		func() error { return copyTable[models.Category](ctx, source, target, "categories") },
		func() error { return copyTable[models.Project](ctx, source, target, "projects") },
		func() error { return copyTable[models.ProjectMember](ctx, source, target, "project_members") },
		func() error { return copyTable[models.CategoryMember](ctx, source, target, "category_members") },
		func() error { return copyTable[models.Task](ctx, source, target, "tasks") },
		func() error { return copyTable[models.TaskAssignee](ctx, source, target, "task_assignees") },
		func() error { return copyTable[models.Bug](ctx, source, target, "bugs") },
		func() error { return copyTable[models.Notification](ctx, source, target, "notifications") },
		func() error { return copyTable[models.Document](ctx, source, target, "documents") },
		func() error { return copyTable[models.CalendarEvent](ctx, source, target, "calendar_events") },
		func() error { return copyTable[models.Asset](ctx, source, target, "assets") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	log.Info().Msg("✅ Data migration completed successfully!")
	return nil
}

func copyTable[T any](ctx context.Context, source, target *DBConnection, table string) error {
	var rows []T
	if err := source.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	target.log.Info().Int("rows", len(rows)).Msgf("Found %d %s to migrate", len(rows), table)
	if len(rows) == 0 {
		return nil
	}
	err := target.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, copyBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to migrate %s: %w", table, err)
	}
	return nil
}
