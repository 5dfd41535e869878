package services

import (
	"context"
	"strings"
	"time"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/projecthub/repositories"
	"github.com/projecthub/utils"
)

// BugService handles business logic for bug reports
type BugService struct {
	bugs       *repositories.BugRepository
	projects   *repositories.ProjectRepository
	categories *repositories.CategoryRepository
	users      *repositories.UserRepository
	access     *AccessControl
	now        func() time.Time
}

func NewBugService(bugs *repositories.BugRepository, projects *repositories.ProjectRepository, categories *repositories.CategoryRepository, users *repositories.UserRepository, access *AccessControl) *BugService {
	return &BugService{
		bugs:       bugs,
		projects:   projects,
		categories: categories,
		users:      users,
		access:     access,
		now:        time.Now,
	}
}

// List returns bugs matching filter that the caller may see, newest first
func (s *BugService) List(ctx context.Context, id *Identity, filter dto.BugFilter) ([]dto.BugResponse, error) {
	scope := memberScope(id)
	if filter.ProjectID != "" {
		if err := s.access.RequireProjectAccess(ctx, id, filter.ProjectID); err != nil {
			return nil, err
		}
		scope = ""
	}

	bugs, err := s.bugs.List(ctx, filter, scope)
	if err != nil {
		return nil, Internal(err)
	}
	return s.responses(ctx, bugs)
}

func (s *BugService) Get(ctx context.Context, id *Identity, bugID string) (*dto.BugResponse, error) {
	bug, err := s.authorize(ctx, id, bugID)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, bug)
}

// Create reports a bug as the caller. A bug created closed is resolved immediately.
func (s *BugService) Create(ctx context.Context, id *Identity, req dto.CreateBugRequest) (*dto.BugResponse, error) {
	title := strings.TrimSpace(req.Title)
	if req.ProjectID == "" || title == "" {
		return nil, Validation("projectId and title are required")
	}

	severity := req.Severity
	if severity == "" {
		severity = models.BugSeverityMajor
	}
	if !severity.Valid() {
		return nil, Validation("invalid bug severity %q", severity)
	}
	status := req.Status
	if status == "" {
		status = models.BugStatusOpen
	}
	if !status.Valid() {
		return nil, Validation("invalid bug status %q", status)
	}

	if err := requireProjectForWrite(ctx, s.projects, s.access, id, req.ProjectID); err != nil {
		return nil, err
	}
	if req.CategoryID != nil && *req.CategoryID == "" {
		req.CategoryID = nil
	}
	if req.CategoryID != nil {
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	bug := models.Bug{
		ProjectID:        req.ProjectID,
		Title:            title,
		Description:      req.Description,
		Severity:         severity,
		StepsToReproduce: jsonSlice(req.StepsToReproduce),
		Attachments:      jsonSlice(req.Attachments),
		CategoryID:       req.CategoryID,
		ReportedBy:       id.ID,
	}
	bug.SetStatus(status, s.now())

	if err := s.bugs.Create(ctx, &bug); err != nil {
		return nil, Internal(err)
	}
	return s.load(ctx, bug.ID)
}

// Update applies a partial update. Closing sets resolvedAt, reopening clears
// it, and closing an already closed bug keeps the original time.
func (s *BugService) Update(ctx context.Context, id *Identity, bugID string, req dto.UpdateBugRequest) (*dto.BugResponse, error) {
	bug, err := s.authorize(ctx, id, bugID)
	if err != nil {
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
	if req.Severity.Set {
		if req.Severity.Null || !req.Severity.Value.Valid() {
			return nil, Validation("invalid bug severity %q", req.Severity.Value)
		}
		changes["severity"] = req.Severity.Value
	}
	if req.Status.Set {
		if req.Status.Null || !req.Status.Value.Valid() {
			return nil, Validation("invalid bug status %q", req.Status.Value)
		}
		bug.SetStatus(req.Status.Value, s.now())
		changes["status"] = bug.Status
		changes["resolved_at"] = resolvedAtValue(bug)
	}
	if req.StepsToReproduce.Set {
		changes["steps_to_reproduce"] = jsonSlice(req.StepsToReproduce.Value)
	}
	if req.Attachments.Set {
		changes["attachments"] = jsonSlice(req.Attachments.Value)
	}
	if req.CategoryID.Set {
		if req.CategoryID.Null || req.CategoryID.Value == "" {
			changes["category_id"] = nil
		} else {
			if err := s.requireCategory(ctx, req.CategoryID.Value); err != nil {
				return nil, err
			}
			changes["category_id"] = req.CategoryID.Value
		}
	}

	if len(changes) > 0 {
		if err := s.bugs.Update(ctx, bugID, changes); err != nil {
			return nil, Internal(err)
		}
	}
	return s.load(ctx, bugID)
}

// UpdateStatus sets the status and always stamps a fresh resolvedAt when closing
func (s *BugService) UpdateStatus(ctx context.Context, id *Identity, bugID, status string) error {
	next := models.BugStatus(status)
	if !next.Valid() {
		return Validation("invalid bug status %q", status)
	}
	bug, err := s.authorize(ctx, id, bugID)
	if err != nil {
		return err
	}

	bug.ResolvedAt = nil
	bug.SetStatus(next, s.now())
	return internalIf(s.bugs.Update(ctx, bugID, map[string]interface{}{
		"status":      bug.Status,
		"resolved_at": resolvedAtValue(bug),
	}))
}

func (s *BugService) UpdateSeverity(ctx context.Context, id *Identity, bugID, severity string) error {
	if !models.BugSeverity(severity).Valid() {
		return Validation("invalid bug severity %q", severity)
	}
	if _, err := s.authorize(ctx, id, bugID); err != nil {
		return err
	}
	return internalIf(s.bugs.Update(ctx, bugID, map[string]interface{}{"severity": severity}))
}

func (s *BugService) Delete(ctx context.Context, id *Identity, bugID string) error {
	if _, err := s.authorize(ctx, id, bugID); err != nil {
		return err
	}
	if _, err := s.bugs.Delete(ctx, bugID); err != nil {
		return Internal(err)
	}
	return nil
}

func (s *BugService) authorize(ctx context.Context, id *Identity, bugID string) (*models.Bug, error) {
	bug, err := s.bugs.FindByID(ctx, bugID)
	if err != nil {
		return nil, notFoundOr(err, "bug not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, bug.ProjectID); err != nil {
		return nil, err
	}
	return bug, nil
}

func (s *BugService) requireCategory(ctx context.Context, categoryID string) error {
	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return Internal(err)
	}
	if !exists {
		return Validation("category %s does not exist", categoryID)
	}
	return nil
}

func (s *BugService) load(ctx context.Context, bugID string) (*dto.BugResponse, error) {
	bug, err := s.bugs.FindByID(ctx, bugID)
	if err != nil {
		return nil, notFoundOr(err, "bug not found")
	}
	return s.response(ctx, bug)
}

func (s *BugService) response(ctx context.Context, bug *models.Bug) (*dto.BugResponse, error) {
	list, err := s.responses(ctx, []models.Bug{*bug})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *BugService) responses(ctx context.Context, bugs []models.Bug) ([]dto.BugResponse, error) {
	reporters := make([]string, 0, len(bugs))
	categoryIDs := make([]string, 0, len(bugs))
	for _, b := range bugs {
		reporters = append(reporters, b.ReportedBy)
		if b.CategoryID != nil {
			categoryIDs = append(categoryIDs, *b.CategoryID)
		}
	}

	names, err := s.users.NamesByID(ctx, utils.UniqueStrings(reporters))
	if err != nil {
		return nil, Internal(err)
	}
	categories, err := s.categories.FindByIDs(ctx, utils.UniqueStrings(categoryIDs))
	if err != nil {
		return nil, Internal(err)
	}

	result := make([]dto.BugResponse, 0, len(bugs))
	for _, b := range bugs {
		b.StepsToReproduce = jsonSlice(b.StepsToReproduce)
		b.Attachments = jsonSlice(b.Attachments)
		resp := dto.BugResponse{Bug: b, ReporterName: nameOf(names, b.ReportedBy)}
		if b.CategoryID != nil {
			if c, ok := categories[*b.CategoryID]; ok {
				name, color := c.Name, c.Color
				resp.CategoryName = &name
				resp.CategoryColor = &color
			}
		}
		result = append(result, resp)
	}
	return result, nil
}

func resolvedAtValue(bug *models.Bug) interface{} {
	if bug.ResolvedAt == nil {
		return nil
	}
	return *bug.ResolvedAt
}
