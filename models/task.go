package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task represents a unit of work inside a project.
// Dependencies hold task IDs and are neither checked for existence nor for cycles.
type Task struct {
	ID           string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID    string                      `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Title        string                      `json:"title" gorm:"not null"`
	Description  *string                     `json:"description"`
	Status       TaskStatus                  `json:"status" gorm:"type:varchar(20);not null;default:'todo';index"`
	Priority     TaskPriority                `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	CreatedBy    string                      `json:"createdBy" gorm:"type:varchar(36);not null"`
	DueDate      *time.Time                  `json:"dueDate"`
	TimeEstimate *float64                    `json:"timeEstimate"`
	TimeSpent    float64                     `json:"timeSpent" gorm:"not null;default:0"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Dependencies datatypes.JSONSlice[string] `json:"dependencies"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`

	// Relations
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID when the caller did not
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TaskAssignee assigns a user to a task
type TaskAssignee struct {
	TaskID string `json:"taskId" gorm:"primaryKey;type:varchar(36)"`
	UserID string `json:"userId" gorm:"primaryKey;type:varchar(36);index"`

	// Relations
	Task *Task `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
