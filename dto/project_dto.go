package dto

import (
	"github.com/projecthub/models"
)

// CreateProjectRequest represents the data needed to create a new project
type CreateProjectRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description *string              `json:"description"`
	Color       string               `json:"color"`
	CoverImage  *string              `json:"coverImage"`
	Status      models.ProjectStatus `json:"status"`
	StartDate   *Date                `json:"startDate"`
	EndDate     *Date                `json:"endDate"`
	Members     []string             `json:"members"`
}

// UpdateProjectRequest represents a partial project update.
// Members, when present, replaces the whole membership set.
type UpdateProjectRequest struct {
	Name        Optional[string]               `json:"name"`
	Description Optional[string]               `json:"description"`
	Color       Optional[string]               `json:"color"`
	CoverImage  Optional[string]               `json:"coverImage"`
	Status      Optional[models.ProjectStatus] `json:"status"`
	StartDate   Optional[Date]                 `json:"startDate"`
	EndDate     Optional[Date]                 `json:"endDate"`
	Members     Optional[[]string]             `json:"members"`
}

// MemberRequest names a user to add to a project or category
type MemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// ProjectResponse is a project with its creator name and members
type ProjectResponse struct {
	models.Project
	CreatorName *string       `json:"creatorName"`
	Members     []UserSummary `json:"members"`
}
