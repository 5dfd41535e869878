package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/projecthub/config"
	"github.com/projecthub/database"
	"github.com/projecthub/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const testPassword = "password123"

type testEnv struct {
	db  *gorm.DB
	svc *Services
	ctx context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.sqlite"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
		UploadDir:    t.TempDir(),
		BaseURL:      "http://localhost:3001",
		Environment:  "test",
	}
	svc, err := New(db, cfg, zerolog.Nop())
	require.NoError(t, err)
	return &testEnv{db: db, svc: svc, ctx: context.Background()}
}

// user inserts an account directly and returns its identity
func (e *testEnv) user(t *testing.T, email string, role models.Role, pages ...string) *Identity {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{
		Email:        email,
		Name:         email,
		Password:     string(hash),
		Role:         role,
		Color:        models.DefaultColor,
		AllowedPages: datatypes.JSONSlice[string](pages),
	}
	require.NoError(t, e.db.Create(&u).Error)
	return identityFrom(&u)
}

// project inserts a project owned by owner with the given members
func (e *testEnv) project(t *testing.T, owner *Identity, members ...*Identity) string {
	t.Helper()
	p := models.Project{Name: "Game", CreatedBy: owner.ID, Color: models.DefaultColor, Status: models.ProjectStatusActive}
	require.NoError(t, e.db.Create(&p).Error)
	for _, m := range append([]*Identity{owner}, members...) {
		require.NoError(t, e.db.Create(&models.ProjectMember{ProjectID: p.ID, UserID: m.ID}).Error)
	}
	return p.ID
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
