package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bug represents a defect reported against a project
type Bug struct {
	ID               string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID        string                      `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Title            string                      `json:"title" gorm:"not null"`
	Description      *string                     `json:"description"`
	Severity         BugSeverity                 `json:"severity" gorm:"type:varchar(20);not null;default:'major'"`
	Status           BugStatus                   `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	StepsToReproduce datatypes.JSONSlice[string] `json:"stepsToReproduce"`
	Attachments      datatypes.JSONSlice[string] `json:"attachments"`
	CategoryID       *string                     `json:"categoryId" gorm:"type:varchar(36);index"`
	ReportedBy       string                      `json:"reportedBy" gorm:"type:varchar(36);not null"`
	ResolvedAt       *time.Time                  `json:"resolvedAt"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`

	// Relations
	Project  *Project  `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Category *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate assigns a UUID when the caller did not
func (b *Bug) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// SetStatus moves the bug to status and keeps ResolvedAt in step:
// it is set when the bug enters closed and cleared when it leaves.
// A bug that is already closed keeps its original resolution time.
func (b *Bug) SetStatus(status BugStatus, now time.Time) {
	if status == BugStatusClosed {
		if b.Status != BugStatusClosed || b.ResolvedAt == nil {
			resolved := now.UTC()
			b.ResolvedAt = &resolved
		}
	} else {
		b.ResolvedAt = nil
	}
	b.Status = status
}
