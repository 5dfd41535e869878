package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/projecthub/dto"
)

var (
	// ErrTokenExpired is returned for a well-formed token past its expiry
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed, forged and otherwise unusable tokens
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService issues and verifies HS256 session tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source, for tests
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue generates a new JWT token for a user
func (s *TokenService) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("cannot issue a token without a user id")
	}

	// JWT numeric dates carry whole seconds
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := dto.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify validates a token and returns the user id it was issued for.
// The token is accepted strictly before its expiry.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &dto.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}
