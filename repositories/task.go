package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy bound to tx
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

// List retrieves tasks matching filter, newest first.
// A non-empty memberID restricts the result to projects that user belongs to.
func (r *TaskRepository) List(ctx context.Context, filter dto.TaskFilter, memberID string) ([]models.Task, error) {
	cond := sq.And{}
	if filter.ProjectID != "" {
		cond = append(cond, sq.Eq{"project_id": filter.ProjectID})
	}
	if filter.Status != "" {
		cond = append(cond, sq.Eq{"status": filter.Status})
	}
	if filter.Assignee != "" {
		cond = append(cond, sq.Expr("id IN (SELECT task_id FROM task_assignees WHERE user_id = ?)", filter.Assignee))
	}
	if memberID != "" {
		cond = append(cond, sq.Expr("project_id IN (SELECT project_id FROM project_members WHERE user_id = ?)", memberID))
	}

	where, args, err := cond.ToSql()
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	result := r.db.WithContext(ctx).Where(where, args...).Order("created_at DESC").Find(&tasks)
	return tasks, result.Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(changes).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// Assignees returns the assignees of each task keyed by task id
func (r *TaskRepository) Assignees(ctx context.Context, taskIDs []string) (map[string][]MemberRow, error) {
	return loadMembers(ctx, r.db, "task_assignees", "task_id", taskIDs)
}

// ReplaceAssignees makes userIDs the exact assignee set of taskID
func (r *TaskRepository) ReplaceAssignees(ctx context.Context, taskID string, userIDs []string) error {
	links := make([]models.TaskAssignee, 0, len(userIDs))
	for _, id := range userIDs {
		links = append(links, models.TaskAssignee{TaskID: taskID, UserID: id})
	}
	return replaceLinks(ctx, r.db, "task_id", taskID, links)
}
