package repositories

import (
	"context"

	"github.com/projecthub/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTx returns a copy bound to tx
func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

// FindAll retrieves every project, newest first
func (r *ProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects)
	return projects, result.Error
}

// FindForMember retrieves the projects userID belongs to, newest first
func (r *ProjectRepository) FindForMember(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	result := r.db.WithContext(ctx).
		Where("id IN (?)", memberProjectIDs(r.db, userID)).
		Order("created_at DESC").
		Find(&projects)
	return projects, result.Error
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists checks if a project exists
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update applies column changes to a project
func (r *ProjectRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(changes).Error
}

// Delete removes a project; the store cascades to its children and memberships
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// IsMember reports whether userID belongs to projectID
func (r *ProjectRepository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// Members returns the members of each project keyed by project id
func (r *ProjectRepository) Members(ctx context.Context, projectIDs []string) (map[string][]MemberRow, error) {
	return loadMembers(ctx, r.db, "project_members", "project_id", projectIDs)
}

// ReplaceMembers makes userIDs the exact membership set of projectID
func (r *ProjectRepository) ReplaceMembers(ctx context.Context, projectID string, userIDs []string) error {
	links := make([]models.ProjectMember, 0, len(userIDs))
	for _, id := range userIDs {
		links = append(links, models.ProjectMember{ProjectID: projectID, UserID: id})
	}
	return replaceLinks(ctx, r.db, "project_id", projectID, links)
}

// AddMember is a no-op when the pair already exists
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	return insertLinkIgnore(ctx, r.db, &models.ProjectMember{ProjectID: projectID, UserID: userID})
}

// RemoveMember is a no-op when the pair does not exist
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// memberProjectIDs is a subquery selecting the project ids of userID
func memberProjectIDs(db *gorm.DB, userID string) *gorm.DB {
	return db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)
}
