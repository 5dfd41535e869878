package services

import (
	"testing"
	"time"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBug(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	projectID := env.project(t, alice)

	resp, err := env.svc.Bugs.Create(env.ctx, alice, dto.CreateBugRequest{ProjectID: projectID, Title: "Crash on load"})
	require.NoError(t, err)
	assert.Equal(t, models.BugStatusOpen, resp.Status)
	assert.Equal(t, models.BugSeverityMajor, resp.Severity)
	assert.Equal(t, alice.ID, resp.ReportedBy)
	assert.Nil(t, resp.ResolvedAt)
	assert.NotNil(t, resp.StepsToReproduce)
	require.NotNil(t, resp.ReporterName)

	closed, err := env.svc.Bugs.Create(env.ctx, alice, dto.CreateBugRequest{ProjectID: projectID, Title: "Old", Status: models.BugStatusClosed})
	require.NoError(t, err)
	assert.NotNil(t, closed.ResolvedAt)

	ghost := "ghost"
	_, err = env.svc.Bugs.Create(env.ctx, alice, dto.CreateBugRequest{ProjectID: projectID, Title: "x", CategoryID: &ghost})
	requireKind(t, err, KindValidation)
	_, err = env.svc.Bugs.Create(env.ctx, alice, dto.CreateBugRequest{ProjectID: projectID, Title: "x", Severity: "cosmetic"})
	requireKind(t, err, KindValidation)
	_, err = env.svc.Bugs.Create(env.ctx, alice, dto.CreateBugRequest{ProjectID: "missing", Title: "x"})
	requireKind(t, err, KindValidation)
}

func TestBugResolvedAtFollowsStatus(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	projectID := env.project(t, alice)

	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	env.svc.Bugs.now = func() time.Time { return clock }

	bug, err := env.svc.Bugs.Create(env.ctx, alice, dto.CreateBugRequest{ProjectID: projectID, Title: "Z-fighting"})
	require.NoError(t, err)

	closed, err := env.svc.Bugs.Update(env.ctx, alice, bug.ID, dto.UpdateBugRequest{Status: dto.Some(models.BugStatusClosed)})
	require.NoError(t, err)
	require.NotNil(t, closed.ResolvedAt)
	assert.WithinDuration(t, clock, *closed.ResolvedAt, time.Second)

	// closing again through an update keeps the first resolution time
	clock = clock.Add(time.Hour)
	again, err := env.svc.Bugs.Update(env.ctx, alice, bug.ID, dto.UpdateBugRequest{
		Status: dto.Some(models.BugStatusClosed),
		Title:  dto.Some("Z-fighting on terrain"),
	})
	require.NoError(t, err)
	require.NotNil(t, again.ResolvedAt)
	assert.WithinDuration(t, clock.Add(-time.Hour), *again.ResolvedAt, time.Second)

	// the status endpoint always stamps a fresh time
	require.NoError(t, env.svc.Bugs.UpdateStatus(env.ctx, alice, bug.ID, "closed"))
	got, err := env.svc.Bugs.Get(env.ctx, alice, bug.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ResolvedAt)
	assert.WithinDuration(t, clock, *got.ResolvedAt, time.Second)

	reopened, err := env.svc.Bugs.Update(env.ctx, alice, bug.ID, dto.UpdateBugRequest{Status: dto.Some(models.BugStatusTesting)})
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedAt)

	require.NoError(t, env.svc.Bugs.UpdateStatus(env.ctx, alice, bug.ID, "closed"))
	require.NoError(t, env.svc.Bugs.UpdateStatus(env.ctx, alice, bug.ID, "open"))
	got, err = env.svc.Bugs.Get(env.ctx, alice, bug.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ResolvedAt)

	requireKind(t, env.svc.Bugs.UpdateStatus(env.ctx, alice, bug.ID, "fixed"), KindValidation)
}

func TestBugSeverityAndCategory(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	projectID := env.project(t, admin)

	category, err := env.svc.Categories.Create(env.ctx, dto.CreateCategoryRequest{Name: "Graphics", Color: "#ff0000"})
	require.NoError(t, err)

	bug, err := env.svc.Bugs.Create(env.ctx, admin, dto.CreateBugRequest{ProjectID: projectID, Title: "Flicker", CategoryID: &category.ID})
	require.NoError(t, err)
	require.NotNil(t, bug.CategoryName)
	assert.Equal(t, "Graphics", *bug.CategoryName)
	require.NotNil(t, bug.CategoryColor)
	assert.Equal(t, "#ff0000", *bug.CategoryColor)

	require.NoError(t, env.svc.Bugs.UpdateSeverity(env.ctx, admin, bug.ID, "blocker"))
	requireKind(t, env.svc.Bugs.UpdateSeverity(env.ctx, admin, bug.ID, "huge"), KindValidation)

	list, err := env.svc.Bugs.List(env.ctx, admin, dto.BugFilter{Severity: "blocker", CategoryID: category.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, env.svc.Categories.Delete(env.ctx, category.ID))
	got, err := env.svc.Bugs.Get(env.ctx, admin, bug.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.CategoryName)
	assert.Equal(t, models.BugSeverityBlocker, got.Severity)
}

func TestBugAccess(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	carol := env.user(t, "carol@example.com", models.RoleUser)
	projectID := env.project(t, alice)

	bug, err := env.svc.Bugs.Create(env.ctx, alice, dto.CreateBugRequest{ProjectID: projectID, Title: "x"})
	require.NoError(t, err)

	_, err = env.svc.Bugs.Get(env.ctx, carol, bug.ID)
	requireKind(t, err, KindAuthorization)
	requireKind(t, env.svc.Bugs.Delete(env.ctx, carol, bug.ID), KindAuthorization)

	list, err := env.svc.Bugs.List(env.ctx, carol, dto.BugFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, env.svc.Bugs.Delete(env.ctx, alice, bug.ID))
	_, err = env.svc.Bugs.Get(env.ctx, alice, bug.ID)
	requireKind(t, err, KindNotFound)
}
