package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account allowed to sign in
type User struct {
	ID                 string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email              string                      `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string                      `json:"name" gorm:"not null"`
	Password           string                      `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Role               Role                        `json:"role" gorm:"type:varchar(10);not null;default:'user'"`
	Color              string                      `json:"color" gorm:"type:varchar(20);not null;default:'#3b82f6'"`
	Avatar             *string                     `json:"avatar"`
	AllowedPages       datatypes.JSONSlice[string] `json:"allowedPages"`
	MustChangePassword bool                        `json:"mustChangePassword" gorm:"not null;default:false"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user bypasses page and membership checks
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Pages returns the allowed page list, never nil
func (u *User) Pages() []string {
	if len(u.AllowedPages) == 0 {
		return []string{}
	}
	return []string(u.AllowedPages)
}
