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

// TaskService handles business logic for tasks and their assignees
type TaskService struct {
	db       *gorm.DB
	tasks    *repositories.TaskRepository
	projects *repositories.ProjectRepository
	users    *repositories.UserRepository
	access   *AccessControl
}

func NewTaskService(db *gorm.DB, tasks *repositories.TaskRepository, projects *repositories.ProjectRepository, users *repositories.UserRepository, access *AccessControl) *TaskService {
	return &TaskService{db: db, tasks: tasks, projects: projects, users: users, access: access}
}

// List returns tasks matching filter that the caller may see, newest first
func (s *TaskService) List(ctx context.Context, id *Identity, filter dto.TaskFilter) ([]dto.TaskResponse, error) {
	scope := memberScope(id)
	if filter.ProjectID != "" {
		if err := s.access.RequireProjectAccess(ctx, id, filter.ProjectID); err != nil {
			return nil, err
		}
		scope = ""
	}

	tasks, err := s.tasks.List(ctx, filter, scope)
	if err != nil {
		return nil, Internal(err)
	}
	return s.responses(ctx, tasks)
}

func (s *TaskService) Get(ctx context.Context, id *Identity, taskID string) (*dto.TaskResponse, error) {
	task, err := s.authorize(ctx, id, taskID)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, task)
}

// Create inserts a task and its assignees in one transaction
func (s *TaskService) Create(ctx context.Context, id *Identity, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if req.ProjectID == "" || title == "" {
		return nil, Validation("projectId and title are required")
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !status.Valid() {
		return nil, Validation("invalid task status %q", status)
	}
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, Validation("invalid task priority %q", priority)
	}
	if req.TimeEstimate != nil && *req.TimeEstimate < 0 {
		return nil, Validation("timeEstimate cannot be negative")
	}

	if err := s.requireProject(ctx, id, req.ProjectID); err != nil {
		return nil, err
	}
	assignees := utils.UniqueStrings(req.Assignees)
	if err := requireUsers(ctx, s.users, assignees); err != nil {
		return nil, err
	}

	task := models.Task{
		ProjectID:    req.ProjectID,
		Title:        title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		CreatedBy:    id.ID,
		DueDate:      req.DueDate.TimePtr(),
		TimeEstimate: req.TimeEstimate,
		Tags:         jsonSlice(req.Tags),
		Dependencies: jsonSlice(req.Dependencies),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := s.tasks.WithTx(tx)
		if err := tasks.Create(ctx, &task); err != nil {
			return err
		}
		return tasks.ReplaceAssignees(ctx, task.ID, assignees)
	})
	if err != nil {
		return nil, Internal(err)
	}
	return s.load(ctx, task.ID)
}

// Update applies a partial update; a supplied assignee list replaces the current one
func (s *TaskService) Update(ctx context.Context, id *Identity, taskID string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := s.authorize(ctx, id, taskID); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Title.Set {
		title, err := requiredText("title", req.Title)
		if err != nil {
			return nil, err
		}
		changes["title"] = title
	}
	if req.Description.Set {
		changes["description"] = nullableText(req.Description)
	}
	if req.Status.Set {
		if req.Status.Null || !req.Status.Value.Valid() {
			return nil, Validation("invalid task status %q", req.Status.Value)
		}
		changes["status"] = req.Status.Value
	}
	if req.Priority.Set {
		if req.Priority.Null || !req.Priority.Value.Valid() {
			return nil, Validation("invalid task priority %q", req.Priority.Value)
		}
		changes["priority"] = req.Priority.Value
	}
	if req.DueDate.Set {
		changes["due_date"] = nullableDate(req.DueDate)
	}
	if req.TimeEstimate.Set {
		if req.TimeEstimate.Null {
			changes["time_estimate"] = nil
		} else if req.TimeEstimate.Value < 0 {
			return nil, Validation("timeEstimate cannot be negative")
		} else {
			changes["time_estimate"] = req.TimeEstimate.Value
		}
	}
	if req.TimeSpent.Set {
		if req.TimeSpent.Null || req.TimeSpent.Value < 0 {
			return nil, Validation("timeSpent must be a number greater than or equal to 0")
		}
		changes["time_spent"] = req.TimeSpent.Value
	}
	if req.Tags.Set {
		changes["tags"] = jsonSlice(req.Tags.Value)
	}
	if req.Dependencies.Set {
		changes["dependencies"] = jsonSlice(req.Dependencies.Value)
	}

	var assignees []string
	if req.Assignees.Set {
		assignees = utils.UniqueStrings(req.Assignees.Value)
		if err := requireUsers(ctx, s.users, assignees); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := s.tasks.WithTx(tx)
		if len(changes) > 0 {
			if err := tasks.Update(ctx, taskID, changes); err != nil {
				return err
			}
		}
		if req.Assignees.Set {
			return tasks.ReplaceAssignees(ctx, taskID, assignees)
		}
		return nil
	})
	if err != nil {
		return nil, Internal(err)
	}
	return s.load(ctx, taskID)
}

// UpdateStatus moves a task to another board column
func (s *TaskService) UpdateStatus(ctx context.Context, id *Identity, taskID, status string) error {
	if !models.TaskStatus(status).Valid() {
		return Validation("invalid task status %q", status)
	}
	if _, err := s.authorize(ctx, id, taskID); err != nil {
		return err
	}
	return internalIf(s.tasks.Update(ctx, taskID, map[string]interface{}{"status": status}))
}

func (s *TaskService) Delete(ctx context.Context, id *Identity, taskID string) error {
	if _, err := s.authorize(ctx, id, taskID); err != nil {
		return err
	}
	if _, err := s.tasks.Delete(ctx, taskID); err != nil {
		return Internal(err)
	}
	return nil
}

// authorize loads a task and checks the caller may access its project
func (s *TaskService) authorize(ctx context.Context, id *Identity, taskID string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "task not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

// requireProject turns an unknown project into a validation error before checking membership
func (s *TaskService) requireProject(ctx context.Context, id *Identity, projectID string) error {
	return requireProjectForWrite(ctx, s.projects, s.access, id, projectID)
}

func (s *TaskService) load(ctx context.Context, taskID string) (*dto.TaskResponse, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "task not found")
	}
	return s.response(ctx, task)
}

func (s *TaskService) response(ctx context.Context, task *models.Task) (*dto.TaskResponse, error) {
	list, err := s.responses(ctx, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *TaskService) responses(ctx context.Context, tasks []models.Task) ([]dto.TaskResponse, error) {
	ids := make([]string, 0, len(tasks))
	creators := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
		creators = append(creators, t.CreatedBy)
	}

	assignees, err := s.tasks.Assignees(ctx, ids)
	if err != nil {
		return nil, Internal(err)
	}
	names, err := s.users.NamesByID(ctx, utils.UniqueStrings(creators))
	if err != nil {
		return nil, Internal(err)
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		t.Tags = jsonSlice(t.Tags)
		t.Dependencies = jsonSlice(t.Dependencies)
		result = append(result, dto.TaskResponse{
			Task:        t,
			CreatorName: nameOf(names, t.CreatedBy),
			Assignees:   summaries(assignees[t.ID]),
		})
	}
	return result, nil
}

// requireProjectForWrite validates the target project of a new row:
// unknown projects are a validation error, non-members are forbidden
func requireProjectForWrite(ctx context.Context, projects *repositories.ProjectRepository, access *AccessControl, id *Identity, projectID string) error {
	exists, err := projects.Exists(ctx, projectID)
	if err != nil {
		return Internal(err)
	}
	if !exists {
		return Validation("project %s does not exist", projectID)
	}
	return access.RequireProjectAccess(ctx, id, projectID)
}
