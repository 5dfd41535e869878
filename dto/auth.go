package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest carries a new password and, outside the first-login flow, the current one
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse represents the response after authentication
type AuthResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// MeResponse wraps the current identity
type MeResponse struct {
	User UserResponse `json:"user"`
}

// MessageResponse acknowledges an action without returning an entity
type MessageResponse struct {
	Message string `json:"message"`
}
