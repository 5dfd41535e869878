package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("secret", 24*time.Hour)

	token, expiresAt, err := tokens.Issue("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 2*time.Second)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenExpiryBoundary(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewTokenService("secret", time.Hour).WithClock(fixedClock(&now))

	token, expiresAt, err := tokens.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	now = expiresAt.Add(-time.Second)
	_, err = tokens.Verify(token)
	assert.NoError(t, err)

	now = expiresAt
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	now = expiresAt.Add(time.Hour)
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenRejectsForgeries(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenService("other-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	_, err = tokens.Verify(parts[0] + "." + parts[1] + ".AAAA")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "user-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Verify(noneToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenRequiresSubjectAndExpiry(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)

	_, _, err := tokens.Issue("")
	assert.Error(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	signed, err := noUser.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "user-1"})
	signed, err = noExpiry.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
