package dto

import (
	"github.com/projecthub/models"
)

type CreateBugRequest struct {
	ProjectID        string             `json:"projectId" binding:"required"`
	Title            string             `json:"title" binding:"required"`
	Description      *string            `json:"description"`
	Severity         models.BugSeverity `json:"severity"`
	Status           models.BugStatus   `json:"status"`
	StepsToReproduce []string           `json:"stepsToReproduce"`
	Attachments      []string           `json:"attachments"`
	CategoryID       *string            `json:"categoryId"`
}

type UpdateBugRequest struct {
	Title            Optional[string]             `json:"title"`
	Description      Optional[string]             `json:"description"`
	Severity         Optional[models.BugSeverity] `json:"severity"`
	Status           Optional[models.BugStatus]   `json:"status"`
	StepsToReproduce Optional[[]string]           `json:"stepsToReproduce"`
	Attachments      Optional[[]string]           `json:"attachments"`
	CategoryID       Optional[string]             `json:"categoryId"`
}

type SeverityRequest struct {
	Severity string `json:"severity"`
}

type SeverityResponse struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// BugFilter holds the optional list filters for bugs
type BugFilter struct {
	ProjectID  string
	Status     string
	Severity   string
	CategoryID string
}

// BugResponse is a bug with its reporter and category display fields
type BugResponse struct {
	models.Bug
	ReporterName  *string `json:"reporterName"`
	CategoryName  *string `json:"categoryName"`
	CategoryColor *string `json:"categoryColor"`
}
