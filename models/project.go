package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a project container
type Project struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string        `json:"name" gorm:"not null"`
	Description *string       `json:"description"`
	CreatedBy   string        `json:"createdBy" gorm:"type:varchar(36);not null;index"`
	Color       string        `json:"color" gorm:"type:varchar(20);not null;default:'#3b82f6'"`
	CoverImage  *string       `json:"coverImage"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember grants a user access to a project
type ProjectMember struct {
	ProjectID string `json:"projectId" gorm:"primaryKey;type:varchar(36)"`
	UserID    string `json:"userId" gorm:"primaryKey;type:varchar(36);index"`

	// Relations
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    *User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
