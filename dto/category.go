package dto

import (
	"github.com/projecthub/models"
)

type CreateCategoryRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Color       string   `json:"color"`
	Members     []string `json:"members"`
}

// UpdateCategoryRequest is a partial update. Members, when present, replaces the member set.
type UpdateCategoryRequest struct {
	Name        Optional[string]   `json:"name"`
	Description Optional[string]   `json:"description"`
	Color       Optional[string]   `json:"color"`
	Members     Optional[[]string] `json:"members"`
}

type CategoryResponse struct {
	models.Category
	Members []UserSummary `json:"members"`
}
