package services

import (
	"testing"
	"time"

	"github.com/projecthub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser, "tasks")

	token, _, err := env.svc.Tokens.Issue(alice.ID)
	require.NoError(t, err)

	id, err := env.svc.Access.Authenticate(env.ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id.ID)
	assert.Equal(t, []string{"tasks"}, id.AllowedPages)

	_, err = env.svc.Access.Authenticate(env.ctx, "")
	requireKind(t, err, KindAuthentication)

	_, err = env.svc.Access.Authenticate(env.ctx, "garbage")
	requireKind(t, err, KindAuthentication)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthenticateRejectsDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)

	token, _, err := env.svc.Tokens.Issue(alice.ID)
	require.NoError(t, err)
	require.NoError(t, env.db.Delete(&models.User{}, "id = ?", alice.ID).Error)

	_, err = env.svc.Access.Authenticate(env.ctx, token)
	requireKind(t, err, KindAuthentication)
	assert.Contains(t, err.Error(), "user not found")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)

	past := time.Now().Add(-2 * time.Hour)
	token, _, err := NewTokenService("test-secret", time.Hour).WithClock(fixedClock(&past)).Issue(alice.ID)
	require.NoError(t, err)

	_, err = env.svc.Access.Authenticate(env.ctx, token)
	requireKind(t, err, KindAuthentication)
	assert.Contains(t, err.Error(), "token expired")
}

func TestRequirePage(t *testing.T) {
	access := &AccessControl{}
	unrestricted := &Identity{Role: models.RoleUser}
	tasksOnly := &Identity{Role: models.RoleUser, AllowedPages: []string{"tasks"}}
	admin := &Identity{Role: models.RoleAdmin, AllowedPages: []string{"tasks"}}

	for _, page := range []string{PageProjects, PageTasks, PageBugs, PageCategories, PageDocuments, PageCalendar, PageAssets} {
		assert.NoError(t, access.RequirePage(unrestricted, page), page)
		assert.NoError(t, access.RequirePage(admin, page), page)
	}

	assert.NoError(t, access.RequirePage(tasksOnly, PageTasks))
	requireKind(t, access.RequirePage(tasksOnly, PageBugs), KindAuthorization)
}

func TestRequireAdmin(t *testing.T) {
	access := &AccessControl{}
	assert.NoError(t, access.RequireAdmin(&Identity{Role: models.RoleAdmin}))
	requireKind(t, access.RequireAdmin(&Identity{Role: models.RoleUser}), KindAuthorization)
}

func TestRequireProjectAccess(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	member := env.user(t, "member@example.com", models.RoleUser)
	outsider := env.user(t, "outsider@example.com", models.RoleUser)
	projectID := env.project(t, admin, member)

	assert.NoError(t, env.svc.Access.RequireProjectAccess(env.ctx, admin, projectID))
	assert.NoError(t, env.svc.Access.RequireProjectAccess(env.ctx, member, projectID))
	requireKind(t, env.svc.Access.RequireProjectAccess(env.ctx, outsider, projectID), KindAuthorization)
	requireKind(t, env.svc.Access.RequireProjectAccess(env.ctx, admin, "missing"), KindNotFound)
	requireKind(t, env.svc.Access.RequireProjectAccess(env.ctx, outsider, "missing"), KindNotFound)
}
