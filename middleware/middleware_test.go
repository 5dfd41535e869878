package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/config"
	"github.com/projecthub/database"
	"github.com/projecthub/models"
	"github.com/projecthub/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	svc    *services.Services
	engine *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "mw.sqlite"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	svc, err := services.New(db, &config.Config{JWTSecret: "mw-secret", JWTExpiresIn: time.Hour, UploadDir: t.TempDir()}, zerolog.Nop())
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(Recovery(zerolog.Nop()), RequestLogger(zerolog.Nop()))
	authed := engine.Group("/", AuthMiddleware(svc.Access))
	authed.GET("/me", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": CurrentIdentity(c).ID}) })
	authed.GET("/admin", AdminMiddleware(svc.Access), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	authed.GET("/bugs", PageAccessMiddleware(svc.Access, services.PageBugs), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })
	engine.GET("/fail", func(c *gin.Context) { Abort(c, errors.New("disk on fire")) })

	// users are inserted directly, the middleware only needs the row to exist
	for _, u := range []models.User{
		{ID: "admin-1", Email: "admin@example.com", Name: "Admin", Password: "x", Role: models.RoleAdmin},
		{ID: "user-1", Email: "user@example.com", Name: "User", Password: "x", Role: models.RoleUser, AllowedPages: datatypes.JSONSlice[string]{"tasks"}},
	} {
		u := u
		require.NoError(t, db.Create(&u).Error)
	}
	return &fixture{svc: svc, engine: engine}
}

func (f *fixture) do(t *testing.T, path, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	body := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func (f *fixture) token(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := f.svc.Tokens.Issue(userID)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "authentication required", body["error"])

	code, body = f.do(t, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid token", body["error"])

	expired, _, err := services.NewTokenService("mw-secret", time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue("user-1")
	require.NoError(t, err)
	code, body = f.do(t, "/me", expired)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "token expired", body["error"])

	code, body = f.do(t, "/me", f.token(t, "ghost"))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "user not found", body["error"])

	code, body = f.do(t, "/me", f.token(t, "user-1"))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "user-1", body["id"])
}

func TestAdminAndPageGates(t *testing.T) {
	f := newFixture(t)
	admin := f.token(t, "admin-1")
	user := f.token(t, "user-1")

	code, _ := f.do(t, "/admin", admin)
	assert.Equal(t, http.StatusNoContent, code)
	code, body := f.do(t, "/admin", user)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "admin privileges required", body["error"])

	code, _ = f.do(t, "/bugs", admin)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = f.do(t, "/bugs", user)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestInternalErrorsHideDetail(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, "/fail", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, body, "message")

	code, body = f.do(t, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body["error"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(services.KindValidation))
	assert.Equal(t, http.StatusBadRequest, StatusFor(services.KindConflict))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(services.KindAuthentication))
	assert.Equal(t, http.StatusForbidden, StatusFor(services.KindAuthorization))
	assert.Equal(t, http.StatusNotFound, StatusFor(services.KindNotFound))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(services.KindInternal))
}
