package services

import (
	"context"
	"strings"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/projecthub/repositories"
	"github.com/projecthub/utils"
	"gorm.io/gorm"
)

// CategoryService handles categories (teams or services) and their members
type CategoryService struct {
	db         *gorm.DB
	categories *repositories.CategoryRepository
	users      *repositories.UserRepository
}

func NewCategoryService(db *gorm.DB, categories *repositories.CategoryRepository, users *repositories.UserRepository) *CategoryService {
	return &CategoryService{db: db, categories: categories, users: users}
}

func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return s.responses(ctx, categories)
}

func (s *CategoryService) Get(ctx context.Context, categoryID string) (*dto.CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, notFoundOr(err, "category not found")
	}
	list, err := s.responses(ctx, []models.Category{*category})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, Validation("category name is required")
	}
	members := utils.UniqueStrings(req.Members)
	if err := requireUsers(ctx, s.users, members); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        name,
		Description: req.Description,
		Color:       colorOr(req.Color),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categories.WithTx(tx)
		if err := categories.Create(ctx, &category); err != nil {
			return err
		}
		return categories.ReplaceMembers(ctx, category.ID, members)
	})
	if err != nil {
		return nil, Internal(err)
	}
	return s.Get(ctx, category.ID)
}

// Update applies a partial update; a supplied member list replaces the current one
func (s *CategoryService) Update(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, Internal(err)
	}
	if !exists {
		return nil, NotFound("category not found")
	}

	changes := map[string]interface{}{}
	if req.Name.Set {
		name, err := requiredText("name", req.Name)
		if err != nil {
			return nil, err
		}
		changes["name"] = name
	}
	if req.Description.Set {
		changes["description"] = nullableText(req.Description)
	}
	if req.Color.Set {
		if req.Color.Null {
			return nil, Validation("color cannot be null")
		}
		changes["color"] = colorOr(req.Color.Value)
	}

	var members []string
	if req.Members.Set {
		members = utils.UniqueStrings(req.Members.Value)
		if err := requireUsers(ctx, s.users, members); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categories.WithTx(tx)
		if len(changes) > 0 {
			if err := categories.Update(ctx, categoryID, changes); err != nil {
				return err
			}
		}
		if req.Members.Set {
			return categories.ReplaceMembers(ctx, categoryID, members)
		}
		return nil
	})
	if err != nil {
		return nil, Internal(err)
	}
	return s.Get(ctx, categoryID)
}

func (s *CategoryService) Delete(ctx context.Context, categoryID string) error {
	deleted, err := s.categories.Delete(ctx, categoryID)
	if err != nil {
		return Internal(err)
	}
	if !deleted {
		return NotFound("category not found")
	}
	return nil
}

// AddMember is idempotent
func (s *CategoryService) AddMember(ctx context.Context, categoryID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return Validation("userId is required")
	}
	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return Internal(err)
	}
	if !exists {
		return NotFound("category not found")
	}
	if err := requireUsers(ctx, s.users, []string{userID}); err != nil {
		return err
	}
	return internalIf(s.categories.AddMember(ctx, categoryID, userID))
}

func (s *CategoryService) RemoveMember(ctx context.Context, categoryID, userID string) error {
	return internalIf(s.categories.RemoveMember(ctx, categoryID, userID))
}

func (s *CategoryService) responses(ctx context.Context, categories []models.Category) ([]dto.CategoryResponse, error) {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	members, err := s.categories.Members(ctx, ids)
	if err != nil {
		return nil, Internal(err)
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, dto.CategoryResponse{Category: c, Members: summaries(members[c.ID])})
	}
	return result, nil
}
