package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups users into a team or service, independently of projects
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description"`
	Color       string    `json:"color" gorm:"type:varchar(20);not null;default:'#3b82f6'"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName sets the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUID when the caller did not
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CategoryMember places a user in a category
type CategoryMember struct {
	CategoryID string `json:"categoryId" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"userId" gorm:"primaryKey;type:varchar(36);index"`

	// Relations
	Category *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	User     *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
