package services

import (
	"testing"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesTokenForSameUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)

	resp, err := env.svc.Auth.Login(env.ctx, dto.LoginRequest{Email: "  ALICE@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	id, err := env.svc.Access.Authenticate(env.ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "alice@example.com", models.RoleUser)

	_, wrongPassword := env.svc.Auth.Login(env.ctx, dto.LoginRequest{Email: "alice@example.com", Password: "nope"})
	_, unknownEmail := env.svc.Auth.Login(env.ctx, dto.LoginRequest{Email: "bob@example.com", Password: testPassword})

	requireKind(t, wrongPassword, KindAuthentication)
	requireKind(t, unknownEmail, KindAuthentication)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	_, missing := env.svc.Auth.Login(env.ctx, dto.LoginRequest{Email: "alice@example.com"})
	requireKind(t, missing, KindValidation)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)

	err := env.svc.Auth.ChangePassword(env.ctx, alice, dto.ChangePasswordRequest{NewPassword: "newpass1"})
	requireKind(t, err, KindValidation)

	err = env.svc.Auth.ChangePassword(env.ctx, alice, dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass1"})
	requireKind(t, err, KindAuthentication)

	err = env.svc.Auth.ChangePassword(env.ctx, alice, dto.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "short"})
	requireKind(t, err, KindValidation)

	require.NoError(t, env.svc.Auth.ChangePassword(env.ctx, alice, dto.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "newpass1"}))

	_, err = env.svc.Auth.Login(env.ctx, dto.LoginRequest{Email: "alice@example.com", Password: "newpass1"})
	assert.NoError(t, err)
}

func TestChangePasswordFirstLoginSkipsCurrentPassword(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@example.com", models.RoleUser)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", alice.ID).Update("must_change_password", true).Error)

	require.NoError(t, env.svc.Auth.ChangePassword(env.ctx, alice, dto.ChangePasswordRequest{NewPassword: "brandnew"}))

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", alice.ID).Error)
	assert.False(t, stored.MustChangePassword)

	_, err := env.svc.Auth.Login(env.ctx, dto.LoginRequest{Email: "alice@example.com", Password: "brandnew"})
	assert.NoError(t, err)
}
