package dto

import (
	"time"

	"github.com/projecthub/models"
	"github.com/projecthub/utils"
)

// UserResponse is the public view of a user, never carrying the password hash
type UserResponse struct {
	ID                 string      `json:"id"`
	Email              string      `json:"email"`
	Name               string      `json:"name"`
	Role               models.Role `json:"role"`
	Color              string      `json:"color"`
	Avatar             *string     `json:"avatar"`
	AllowedPages       []string    `json:"allowedPages"`
	MustChangePassword bool        `json:"mustChangePassword"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// NewUserResponse builds the public view of u
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		Color:              u.Color,
		Avatar:             u.Avatar,
		AllowedPages:       u.Pages(),
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// UserSummary is how members and assignees are embedded in other resources
type UserSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Color  string  `json:"color"`
	Avatar *string `json:"avatar"`
}

// CreateUserRequest is accepted from admins only
type CreateUserRequest struct {
	Email        string      `json:"email" binding:"required"`
	Name         string      `json:"name" binding:"required"`
	Password     string      `json:"password" binding:"required"`
	Role         models.Role `json:"role"`
	Color        string      `json:"color"`
	Avatar       *string     `json:"avatar"`
	AllowedPages []string    `json:"allowedPages"`
}

// UpdateUserRequest is a partial update; non-admins may only touch Name, Color and Avatar
type UpdateUserRequest struct {
	Email        Optional[string]      `json:"email"`
	Name         Optional[string]      `json:"name"`
	Password     Optional[string]      `json:"password"`
	Role         Optional[models.Role] `json:"role"`
	Color        Optional[string]      `json:"color"`
	Avatar       Optional[string]      `json:"avatar"`
	AllowedPages Optional[[]string]    `json:"allowedPages"`
}

// TouchesAdminFields reports whether the update sets anything beyond self-service fields
func (r UpdateUserRequest) TouchesAdminFields() bool {
	return r.Email.Set || r.Password.Set || r.Role.Set || r.AllowedPages.Set
}

// NormalizedPages returns allowedPages without duplicates
func (r UpdateUserRequest) NormalizedPages() []string {
	return utils.UniqueStrings(r.AllowedPages.Value)
}
