package services

import (
	"testing"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	bob := env.user(t, "bob@example.com", models.RoleUser)

	created, err := env.svc.Categories.Create(env.ctx, dto.CreateCategoryRequest{Name: "Audio", Members: []string{alice.ID}})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, created.Color)
	assert.Equal(t, []string{alice.ID}, memberIDs(created.Members))

	_, err = env.svc.Categories.Create(env.ctx, dto.CreateCategoryRequest{Name: "Ghosts", Members: []string{"ghost"}})
	requireKind(t, err, KindValidation)

	updated, err := env.svc.Categories.Update(env.ctx, created.ID, dto.UpdateCategoryRequest{
		Color:   dto.Some("#123456"),
		Members: dto.Some([]string{bob.ID}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Audio", updated.Name)
	assert.Equal(t, "#123456", updated.Color)
	assert.Equal(t, []string{bob.ID}, memberIDs(updated.Members))

	updated, err = env.svc.Categories.Update(env.ctx, created.ID, dto.UpdateCategoryRequest{Members: dto.Null[[]string]()})
	require.NoError(t, err)
	assert.NotNil(t, updated.Members)
	assert.Empty(t, updated.Members)

	require.NoError(t, env.svc.Categories.AddMember(env.ctx, created.ID, alice.ID))
	require.NoError(t, env.svc.Categories.AddMember(env.ctx, created.ID, alice.ID))
	assert.EqualValues(t, 1, env.count(t, &models.CategoryMember{}, "category_id = ?", created.ID))
	require.NoError(t, env.svc.Categories.RemoveMember(env.ctx, created.ID, alice.ID))

	list, err := env.svc.Categories.List(env.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.svc.Categories.Delete(env.ctx, created.ID))
	requireKind(t, env.svc.Categories.Delete(env.ctx, created.ID), KindNotFound)
	_, err = env.svc.Categories.Get(env.ctx, created.ID)
	requireKind(t, err, KindNotFound)
	_, err = env.svc.Categories.Update(env.ctx, created.ID, dto.UpdateCategoryRequest{Name: dto.Some("x")})
	requireKind(t, err, KindNotFound)
}
