package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"gorm.io/gorm"
)

// BugRepository handles database operations for bugs
type BugRepository struct {
	db *gorm.DB
}

func NewBugRepository(db *gorm.DB) *BugRepository {
	return &BugRepository{db: db}
}

// List retrieves bugs matching filter, newest first.
// A non-empty memberID restricts the result to projects that user belongs to.
func (r *BugRepository) List(ctx context.Context, filter dto.BugFilter, memberID string) ([]models.Bug, error) {
	eq := sq.Eq{}
	if filter.ProjectID != "" {
		eq["project_id"] = filter.ProjectID
	}
	if filter.Status != "" {
		eq["status"] = filter.Status
	}
	if filter.Severity != "" {
		eq["severity"] = filter.Severity
	}
	if filter.CategoryID != "" {
		eq["category_id"] = filter.CategoryID
	}
	cond := sq.And{eq}
	if memberID != "" {
		cond = append(cond, sq.Expr("project_id IN (SELECT project_id FROM project_members WHERE user_id = ?)", memberID))
	}

	where, args, err := cond.ToSql()
	if err != nil {
		return nil, err
	}

	var bugs []models.Bug
	result := r.db.WithContext(ctx).Where(where, args...).Order("created_at DESC").Find(&bugs)
	return bugs, result.Error
}

func (r *BugRepository) FindByID(ctx context.Context, id string) (*models.Bug, error) {
	var bug models.Bug
	if err := r.db.WithContext(ctx).First(&bug, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bug, nil
}

func (r *BugRepository) Create(ctx context.Context, bug *models.Bug) error {
	return r.db.WithContext(ctx).Create(bug).Error
}

func (r *BugRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Bug{}).Where("id = ?", id).Updates(changes).Error
}

func (r *BugRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Bug{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
