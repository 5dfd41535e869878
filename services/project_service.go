package services

import (
	"context"
	"strings"
	"time"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/projecthub/repositories"
	"github.com/projecthub/utils"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects and their members
type ProjectService struct {
	db       *gorm.DB
	projects *repositories.ProjectRepository
	users    *repositories.UserRepository
	access   *AccessControl
}

// NewProjectService creates a new project service instance
func NewProjectService(db *gorm.DB, projects *repositories.ProjectRepository, users *repositories.UserRepository, access *AccessControl) *ProjectService {
	return &ProjectService{db: db, projects: projects, users: users, access: access}
}

// List returns every project for admins and the member projects for everyone else
func (s *ProjectService) List(ctx context.Context, id *Identity) ([]dto.ProjectResponse, error) {
	var (
		projects []models.Project
		err      error
	)
	if id.IsAdmin() {
		projects, err = s.projects.FindAll(ctx)
	} else {
		projects, err = s.projects.FindForMember(ctx, id.ID)
	}
	if err != nil {
		return nil, Internal(err)
	}
	return s.responses(ctx, projects)
}

// Get returns one project; non-members get Forbidden
func (s *ProjectService) Get(ctx context.Context, id *Identity, projectID string) (*dto.ProjectResponse, error) {
	if err := s.access.RequireProjectAccess(ctx, id, projectID); err != nil {
		return nil, err
	}
	return s.load(ctx, projectID)
}

// Create inserts a project whose members are the creator plus req.Members
func (s *ProjectService) Create(ctx context.Context, id *Identity, req dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, Validation("project name is required")
	}
	status := req.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	if !status.Valid() {
		return nil, Validation("invalid project status %q", status)
	}

	members := utils.UniqueStrings(append([]string{id.ID}, req.Members...))
	if err := requireUsers(ctx, s.users, members); err != nil {
		return nil, err
	}

	startDate := req.StartDate.TimePtr()
	if startDate == nil {
		now := time.Now().UTC()
		startDate = &now
	}
	project := models.Project{
		Name:        name,
		Description: req.Description,
		CreatedBy:   id.ID,
		Color:       colorOr(req.Color),
		CoverImage:  req.CoverImage,
		Status:      status,
		StartDate:   startDate,
		EndDate:     req.EndDate.TimePtr(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projects := s.projects.WithTx(tx)
		if err := projects.Create(ctx, &project); err != nil {
			return err
		}
		return projects.ReplaceMembers(ctx, project.ID, members)
	})
	if err != nil {
		return nil, Internal(err)
	}
	return s.load(ctx, project.ID)
}

// Update applies a partial update and, when members are supplied, replaces
// the membership set, both in one transaction
func (s *ProjectService) Update(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, notFoundOr(err, "project not found")
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
	if req.CoverImage.Set {
		changes["cover_image"] = nullableText(req.CoverImage)
	}
	if req.Status.Set {
		if req.Status.Null || !req.Status.Value.Valid() {
			return nil, Validation("invalid project status %q", req.Status.Value)
		}
		changes["status"] = req.Status.Value
	}
	if req.StartDate.Set {
		changes["start_date"] = nullableDate(req.StartDate)
	}
	if req.EndDate.Set {
		changes["end_date"] = nullableDate(req.EndDate)
	}

	var members []string
	if req.Members.Set {
		members = utils.UniqueStrings(req.Members.Value)
		if err := requireUsers(ctx, s.users, members); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projects := s.projects.WithTx(tx)
		if len(changes) > 0 {
			if err := projects.Update(ctx, projectID, changes); err != nil {
				return err
			}
		}
		if req.Members.Set {
			return projects.ReplaceMembers(ctx, projectID, members)
		}
		return nil
	})
	if err != nil {
		return nil, Internal(err)
	}
	return s.load(ctx, projectID)
}

// Delete removes a project together with everything it owns
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	deleted, err := s.projects.Delete(ctx, projectID)
	if err != nil {
		return Internal(err)
	}
	if !deleted {
		return NotFound("project not found")
	}
	return nil
}

// AddMember is idempotent
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return Validation("userId is required")
	}
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return Internal(err)
	}
	if !exists {
		return NotFound("project not found")
	}
	if err := requireUsers(ctx, s.users, []string{userID}); err != nil {
		return err
	}
	return internalIf(s.projects.AddMember(ctx, projectID, userID))
}

// RemoveMember succeeds even when the user was not a member
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID string) error {
	return internalIf(s.projects.RemoveMember(ctx, projectID, userID))
}

func (s *ProjectService) load(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, notFoundOr(err, "project not found")
	}
	list, err := s.responses(ctx, []models.Project{*project})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *ProjectService) responses(ctx context.Context, projects []models.Project) ([]dto.ProjectResponse, error) {
	ids := make([]string, 0, len(projects))
	creators := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		creators = append(creators, p.CreatedBy)
	}

	members, err := s.projects.Members(ctx, ids)
	if err != nil {
		return nil, Internal(err)
	}
	names, err := s.users.NamesByID(ctx, utils.UniqueStrings(creators))
	if err != nil {
		return nil, Internal(err)
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, dto.ProjectResponse{
			Project:     p,
			CreatorName: nameOf(names, p.CreatedBy),
			Members:     summaries(members[p.ID]),
		})
	}
	return result, nil
}

// nullableDate returns nil for an explicit null
func nullableDate(o dto.Optional[dto.Date]) interface{} {
	if o.Null {
		return nil
	}
	return o.Value.Time
}
