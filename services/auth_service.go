package services

import (
	"context"
	"errors"
	"strings"

	"github.com/projecthub/dto"
	"github.com/projecthub/repositories"
	"github.com/projecthub/utils"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// errBadCredentials is shared by unknown email and wrong password so callers cannot tell them apart
var errBadCredentials = Unauthenticated("invalid email or password", nil)

// AuthService handles login and password changes
type AuthService struct {
	users  *repositories.UserRepository
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(users *repositories.UserRepository, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, Validation("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Debug().Str("email", email).Msg("login with unknown email")
			return nil, errBadCredentials
		}
		return nil, Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.log.Debug().Str("user_id", user.ID).Msg("login with wrong password")
		return nil, errBadCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, Internal(err)
	}

	return &dto.AuthResponse{
		Token:     token,
		User:      dto.NewUserResponse(user),
		ExpiresAt: expiresAt,
	}, nil
}

// ChangePassword replaces the caller's password and clears the must-change flag.
// The current password is not asked for while the flag is set.
func (s *AuthService) ChangePassword(ctx context.Context, id *Identity, req dto.ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return Validation("new password must be at least %d characters", minPasswordLength)
	}

	user, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}

	if !user.MustChangePassword {
		if strings.TrimSpace(req.CurrentPassword) == "" {
			return Validation("current password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			return Unauthenticated("current password is incorrect", nil)
		}
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return Internal(err)
	}
	if err := s.users.SetPassword(ctx, user.ID, hash, false); err != nil {
		return Internal(err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
