package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/projecthub/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.sqlite"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestOpenRejectsEmptyURL(t *testing.T) {
	_, err := Open("", zerolog.Nop())
	assert.Error(t, err)
}

func TestOpenCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "db.sqlite")
	db, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSeedDefaultFixtures(t *testing.T) {
	db := newTestDB(t)
	fx, err := LoadFixtures("")
	require.NoError(t, err)

	seeded, err := Seed(context.Background(), db, fx, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, seeded)

	assert.EqualValues(t, 6, count(t, db, &models.User{}))
	assert.EqualValues(t, 5, count(t, db, &models.Category{}))
	assert.EqualValues(t, 5, count(t, db, &models.CategoryMember{}))
	assert.EqualValues(t, 1, count(t, db, &models.Project{}))
	assert.EqualValues(t, 6, count(t, db, &models.ProjectMember{}))
	assert.EqualValues(t, 5, count(t, db, &models.Task{}))

	var admin models.User
	require.NoError(t, db.First(&admin, "email = ?", "admin@gamedev.com").Error)
	assert.True(t, admin.MustChangePassword)
	assert.True(t, admin.IsAdmin())

	var designer models.User
	require.NoError(t, db.First(&designer, "email = ?", "designer@gamedev.com").Error)
	assert.False(t, designer.MustChangePassword)
	assert.Equal(t, models.RoleUser, designer.Role)

	again, err := Seed(context.Background(), db, fx, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, again)
	assert.EqualValues(t, 6, count(t, db, &models.User{}))
}

func TestLoadFixturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	doc := "admin:\n  email: Root@Example.com\n  name: Root\n  password: rootpass\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	fx, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, "Root@Example.com", fx.Admin.Email)
	assert.Empty(t, fx.Projects)

	db := newTestDB(t)
	seeded, err := Seed(context.Background(), db, fx, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, seeded)

	var admin models.User
	require.NoError(t, db.First(&admin).Error)
	assert.Equal(t, "root@example.com", admin.Email)
	assert.Equal(t, models.DefaultColor, admin.Color)
}

func TestLoadFixturesRequiresAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: []\n"), 0o600))

	_, err := LoadFixtures(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("admin:\n  email: root@example.com\n"), 0o600))
	fx, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.True(t, fx.GeneratedPassword)
	assert.Len(t, fx.Admin.Password, 16)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestProjectDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	fx, err := LoadFixtures("")
	require.NoError(t, err)
	_, err = Seed(context.Background(), db, fx, zerolog.Nop())
	require.NoError(t, err)

	var project models.Project
	require.NoError(t, db.First(&project).Error)
	require.NoError(t, db.Create(&models.Bug{ProjectID: project.ID, Title: "crash", ReportedBy: project.CreatedBy}).Error)
	require.NoError(t, db.Create(&models.Document{ProjectID: project.ID, Title: "gdd", CreatedBy: project.CreatedBy}).Error)
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.CalendarEvent{
		ProjectID: project.ID, Title: "kickoff", StartDate: start, EndDate: start.Add(time.Hour),
		UserID: project.CreatedBy, Type: models.EventTypeMeeting,
	}).Error)
	require.NoError(t, db.Create(&models.Asset{ProjectID: project.ID, Name: "hero sprite", Type: models.AssetTypeSprite, Status: models.AssetStatusConcept, Version: "1.0"}).Error)

	require.NoError(t, db.Delete(&models.Project{}, "id = ?", project.ID).Error)

	assert.Zero(t, count(t, db, &models.Task{}))
	assert.Zero(t, count(t, db, &models.Bug{}))
	assert.Zero(t, count(t, db, &models.Document{}))
	assert.Zero(t, count(t, db, &models.CalendarEvent{}))
	assert.Zero(t, count(t, db, &models.Asset{}))
	assert.Zero(t, count(t, db, &models.ProjectMember{}))
	assert.EqualValues(t, 6, count(t, db, &models.User{}))
}

func TestMigrateDataBetweenDatabases(t *testing.T) {
	dir := t.TempDir()
	source, err := NewDBConnection("source", filepath.Join(dir, "source.sqlite"), zerolog.Nop())
	require.NoError(t, err)
	defer source.Close()
	target, err := NewDBConnection("target", filepath.Join(dir, "target.sqlite"), zerolog.Nop())
	require.NoError(t, err)
	defer target.Close()

	require.NoError(t, source.Migrate())
	require.NoError(t, target.Migrate())

	fx, err := LoadFixtures("")
	require.NoError(t, err)
	_, err = Seed(context.Background(), source.DB, fx, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, MigrateDataBetweenDatabases(context.Background(), source, target))
	// a second run skips rows that already exist
	require.NoError(t, MigrateDataBetweenDatabases(context.Background(), source, target))

	assert.EqualValues(t, 6, count(t, target.DB, &models.User{}))
	assert.EqualValues(t, 6, count(t, target.DB, &models.ProjectMember{}))
	assert.EqualValues(t, 5, count(t, target.DB, &models.Task{}))

	var task models.Task
	require.NoError(t, target.DB.First(&task).Error)
	assert.Equal(t, []string{"demo"}, []string(task.Tags))
}

func TestNewDBConnectionRejectsEmptyURL(t *testing.T) {
	_, err := NewDBConnection("target", "", zerolog.Nop())
	assert.Error(t, err)
}
