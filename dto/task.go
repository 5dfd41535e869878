package dto

import (
	"github.com/projecthub/models"
)

type CreateTaskRequest struct {
	ProjectID    string              `json:"projectId" binding:"required"`
	Title        string              `json:"title" binding:"required"`
	Description  *string             `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	Assignees    []string            `json:"assignees"`
	DueDate      *Date               `json:"dueDate"`
	TimeEstimate *float64            `json:"timeEstimate"`
	Tags         []string            `json:"tags"`
	Dependencies []string            `json:"dependencies"`
}

// UpdateTaskRequest is a partial update. Assignees, when present, replaces the assignee set.
type UpdateTaskRequest struct {
	Title        Optional[string]              `json:"title"`
	Description  Optional[string]              `json:"description"`
	Status       Optional[models.TaskStatus]   `json:"status"`
	Priority     Optional[models.TaskPriority] `json:"priority"`
	Assignees    Optional[[]string]            `json:"assignees"`
	DueDate      Optional[Date]                `json:"dueDate"`
	TimeEstimate Optional[float64]             `json:"timeEstimate"`
	TimeSpent    Optional[float64]             `json:"timeSpent"`
	Tags         Optional[[]string]            `json:"tags"`
	Dependencies Optional[[]string]            `json:"dependencies"`
}

// StatusRequest changes only the status of a task or bug
type StatusRequest struct {
	Status string `json:"status"`
}

// TaskFilter holds the optional list filters for tasks
type TaskFilter struct {
	ProjectID string
	Status    string
	Assignee  string
}

// TaskResponse is a task with its creator name and assignees
type TaskResponse struct {
	models.Task
	CreatorName *string       `json:"creatorName"`
	Assignees   []UserSummary `json:"assignees"`
}

// StatusResponse acknowledges a status change
type StatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
