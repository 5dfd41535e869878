package repositories

import (
	"context"

	"github.com/projecthub/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// WithTx returns a copy bound to tx
func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: tx}
}

// FindAll retrieves all categories ordered by name
func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	result := r.db.WithContext(ctx).Order("name").Find(&categories)
	return categories, result.Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByIDs returns the categories keyed by id; unknown ids are left out
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Category, error) {
	result := make(map[string]models.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	for _, c := range categories {
		result[c.ID] = c
	}
	return result, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(changes).Error
}

// Delete removes a category; bugs pointing at it keep existing with no category
func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *CategoryRepository) Members(ctx context.Context, categoryIDs []string) (map[string][]MemberRow, error) {
	return loadMembers(ctx, r.db, "category_members", "category_id", categoryIDs)
}

// ReplaceMembers makes userIDs the exact member set of categoryID
func (r *CategoryRepository) ReplaceMembers(ctx context.Context, categoryID string, userIDs []string) error {
	links := make([]models.CategoryMember, 0, len(userIDs))
	for _, id := range userIDs {
		links = append(links, models.CategoryMember{CategoryID: categoryID, UserID: id})
	}
	return replaceLinks(ctx, r.db, "category_id", categoryID, links)
}

func (r *CategoryRepository) AddMember(ctx context.Context, categoryID, userID string) error {
	return insertLinkIgnore(ctx, r.db, &models.CategoryMember{CategoryID: categoryID, UserID: userID})
}

func (r *CategoryRepository) RemoveMember(ctx context.Context, categoryID, userID string) error {
	return r.db.WithContext(ctx).
		Where("category_id = ? AND user_id = ?", categoryID, userID).
		Delete(&models.CategoryMember{}).Error
}
