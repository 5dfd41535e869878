package services

import (
	"testing"
	"time"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberIDs(members []dto.UserSummary) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestCreateProjectIncludesCreator(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	bob := env.user(t, "bob@example.com", models.RoleUser)

	resp, err := env.svc.Projects.Create(env.ctx, alice, dto.CreateProjectRequest{Name: " Space Game ", Members: []string{bob.ID, bob.ID}})
	require.NoError(t, err)
	assert.Equal(t, "Space Game", resp.Name)
	assert.Equal(t, models.ProjectStatusActive, resp.Status)
	assert.Equal(t, models.DefaultColor, resp.Color)
	assert.NotNil(t, resp.StartDate)
	require.NotNil(t, resp.CreatorName)
	assert.Equal(t, alice.Name, *resp.CreatorName)
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, memberIDs(resp.Members))

	_, err = env.svc.Projects.Create(env.ctx, alice, dto.CreateProjectRequest{Name: "Other", Members: []string{"ghost"}})
	requireKind(t, err, KindValidation)
	_, err = env.svc.Projects.Create(env.ctx, alice, dto.CreateProjectRequest{Name: "Other", Status: "archived"})
	requireKind(t, err, KindValidation)
	assert.EqualValues(t, 1, env.count(t, &models.Project{}, ""))
}

func TestProjectVisibility(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	carol := env.user(t, "carol@example.com", models.RoleUser)
	projectID := env.project(t, admin, alice)
	env.project(t, admin)

	list, err := env.svc.Projects.List(env.ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, projectID, list[0].ID)

	list, err = env.svc.Projects.List(env.ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = env.svc.Projects.List(env.ctx, carol)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = env.svc.Projects.Get(env.ctx, carol, projectID)
	requireKind(t, err, KindAuthorization)
	_, err = env.svc.Projects.Get(env.ctx, alice, "missing")
	requireKind(t, err, KindNotFound)
}

func TestUpdateProjectReplacesMembers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	bob := env.user(t, "bob@example.com", models.RoleUser)
	projectID := env.project(t, admin, alice)

	resp, err := env.svc.Projects.Update(env.ctx, projectID, dto.UpdateProjectRequest{
		Name:        dto.Some("Renamed"),
		Description: dto.Some("a platformer"),
		Members:     dto.Some([]string{bob.ID}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	require.NotNil(t, resp.Description)
	assert.Equal(t, []string{bob.ID}, memberIDs(resp.Members))

	resp, err = env.svc.Projects.Update(env.ctx, projectID, dto.UpdateProjectRequest{Description: dto.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, resp.Description)
	assert.Equal(t, "Renamed", resp.Name)

	_, err = env.svc.Projects.Update(env.ctx, projectID, dto.UpdateProjectRequest{Members: dto.Some([]string{"ghost"})})
	requireKind(t, err, KindValidation)
	assert.EqualValues(t, 1, env.count(t, &models.ProjectMember{}, "project_id = ?", projectID))

	_, err = env.svc.Projects.Update(env.ctx, "missing", dto.UpdateProjectRequest{Name: dto.Some("x")})
	requireKind(t, err, KindNotFound)
}

func TestProjectMembership(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	projectID := env.project(t, admin)

	require.NoError(t, env.svc.Projects.AddMember(env.ctx, projectID, alice.ID))
	require.NoError(t, env.svc.Projects.AddMember(env.ctx, projectID, alice.ID))
	assert.EqualValues(t, 1, env.count(t, &models.ProjectMember{}, "project_id = ? AND user_id = ?", projectID, alice.ID))

	requireKind(t, env.svc.Projects.AddMember(env.ctx, projectID, "ghost"), KindValidation)
	requireKind(t, env.svc.Projects.AddMember(env.ctx, "missing", alice.ID), KindNotFound)

	require.NoError(t, env.svc.Projects.RemoveMember(env.ctx, projectID, alice.ID))
	require.NoError(t, env.svc.Projects.RemoveMember(env.ctx, projectID, alice.ID))
	assert.Zero(t, env.count(t, &models.ProjectMember{}, "project_id = ? AND user_id = ?", projectID, alice.ID))
}

func TestDeleteProjectCascades(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	projectID := env.project(t, admin)

	_, err := env.svc.Tasks.Create(env.ctx, admin, dto.CreateTaskRequest{ProjectID: projectID, Title: "t", Assignees: []string{admin.ID}})
	require.NoError(t, err)
	_, err = env.svc.Bugs.Create(env.ctx, admin, dto.CreateBugRequest{ProjectID: projectID, Title: "b"})
	require.NoError(t, err)
	_, err = env.svc.Content.CreateDocument(env.ctx, admin, projectID, dto.CreateDocumentRequest{Title: "GDD"})
	require.NoError(t, err)
	start := dto.Date{Time: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	end := dto.Date{Time: start.Add(time.Hour)}
	_, err = env.svc.Content.CreateEvent(env.ctx, admin, projectID, dto.CreateEventRequest{Title: "Kickoff", StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	_, err = env.svc.Content.CreateAsset(env.ctx, admin, projectID, dto.CreateAssetRequest{Name: "Hero sprite"})
	require.NoError(t, err)

	require.NoError(t, env.svc.Projects.Delete(env.ctx, projectID))
	requireKind(t, env.svc.Projects.Delete(env.ctx, projectID), KindNotFound)

	assert.Zero(t, env.count(t, &models.Task{}, ""))
	assert.Zero(t, env.count(t, &models.TaskAssignee{}, ""))
	assert.Zero(t, env.count(t, &models.Bug{}, ""))
	assert.Zero(t, env.count(t, &models.Document{}, ""))
	assert.Zero(t, env.count(t, &models.CalendarEvent{}, ""))
	assert.Zero(t, env.count(t, &models.Asset{}, ""))
	assert.Zero(t, env.count(t, &models.ProjectMember{}, ""))
}
