package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is a markdown page attached to a project
type Document struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID string    `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Markdown  *string   `json:"markdown"`
	CreatedBy string    `json:"createdBy" gorm:"type:varchar(36);not null"`
	Order     int       `json:"order" gorm:"column:doc_order;not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// CalendarEvent is a dated entry on a project calendar
type CalendarEvent struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID   string    `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"not null"`
	UserID      string    `json:"userId" gorm:"type:varchar(36);not null"`
	Type        EventType `json:"type" gorm:"type:varchar(20);not null;default:'other'"`
	CreatedAt   time.Time `json:"createdAt"`

	// Relations
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Asset tracks a production asset (sprite, model, sound...) of a project
type Asset struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID  string      `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Name       string      `json:"name" gorm:"not null"`
	Type       AssetType   `json:"type" gorm:"type:varchar(20);not null;default:'other'"`
	Status     AssetStatus `json:"status" gorm:"type:varchar(20);not null;default:'concept'"`
	AssignedTo *string     `json:"assignedTo" gorm:"type:varchar(36)"`
	Version    string      `json:"version" gorm:"type:varchar(20);not null;default:'1.0'"`
	FileURL    *string     `json:"fileUrl"`
	Thumbnail  *string     `json:"thumbnail"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`

	// Relations
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
