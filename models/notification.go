package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a message addressed to a single user
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;index"`
	Type      string    `json:"type" gorm:"type:varchar(50);not null"`
	Title     string    `json:"title" gorm:"not null"`
	Message   *string   `json:"message"`
	Link      *string   `json:"link"`
	Read      bool      `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID when the caller did not
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
