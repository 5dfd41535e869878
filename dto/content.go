package dto

import (
	"github.com/projecthub/models"
)

type CreateDocumentRequest struct {
	Title    string  `json:"title" binding:"required"`
	Markdown *string `json:"markdown"`
	Order    *int    `json:"order"`
}

type UpdateDocumentRequest struct {
	Title    Optional[string] `json:"title"`
	Markdown Optional[string] `json:"markdown"`
	Order    Optional[int]    `json:"order"`
}

type CreateEventRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description *string          `json:"description"`
	StartDate   *Date            `json:"startDate" binding:"required"`
	EndDate     *Date            `json:"endDate" binding:"required"`
	Type        models.EventType `json:"type"`
}

type UpdateEventRequest struct {
	Title       Optional[string]           `json:"title"`
	Description Optional[string]           `json:"description"`
	StartDate   Optional[Date]             `json:"startDate"`
	EndDate     Optional[Date]             `json:"endDate"`
	Type        Optional[models.EventType] `json:"type"`
}

type CreateAssetRequest struct {
	Name       string             `json:"name" binding:"required"`
	Type       models.AssetType   `json:"type"`
	Status     models.AssetStatus `json:"status"`
	AssignedTo *string            `json:"assignedTo"`
	Version    string             `json:"version"`
	FileURL    *string            `json:"fileUrl"`
	Thumbnail  *string            `json:"thumbnail"`
}

type UpdateAssetRequest struct {
	Name       Optional[string]             `json:"name"`
	Type       Optional[models.AssetType]   `json:"type"`
	Status     Optional[models.AssetStatus] `json:"status"`
	AssignedTo Optional[string]             `json:"assignedTo"`
	Version    Optional[string]             `json:"version"`
	FileURL    Optional[string]             `json:"fileUrl"`
	Thumbnail  Optional[string]             `json:"thumbnail"`
}
