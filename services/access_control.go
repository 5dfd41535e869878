package services

import (
	"context"
	"errors"
	"time"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/projecthub/repositories"
	"github.com/projecthub/utils"
	"gorm.io/gorm"
)

// Page names guarded by RequirePage
const (
	PageProjects   = "projects"
	PageTasks      = "tasks"
	PageBugs       = "bugs"
	PageCategories = "categories"
	PageDocuments  = "documents"
	PageCalendar   = "calendar"
	PageAssets     = "assets"
)

// Identity is the authenticated caller, re-read from the store on every request
type Identity struct {
	ID                 string
	Email              string
	Name               string
	Role               models.Role
	Color              string
	Avatar             *string
	AllowedPages       []string
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func identityFrom(u *models.User) *Identity {
	return &Identity{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		Color:              u.Color,
		Avatar:             u.Avatar,
		AllowedPages:       u.Pages(),
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (i *Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// CanAccessPage applies the page whitelist; an empty list means unrestricted
func (i *Identity) CanAccessPage(page string) bool {
	if i.IsAdmin() || len(i.AllowedPages) == 0 {
		return true
	}
	return utils.Contains(i.AllowedPages, page)
}

// Response renders the identity the way users are rendered elsewhere
func (i *Identity) Response() dto.UserResponse {
	return dto.UserResponse{
		ID:                 i.ID,
		Email:              i.Email,
		Name:               i.Name,
		Role:               i.Role,
		Color:              i.Color,
		Avatar:             i.Avatar,
		AllowedPages:       utils.NonNil(i.AllowedPages),
		MustChangePassword: i.MustChangePassword,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

// AccessControl turns tokens into identities and makes authorization decisions
type AccessControl struct {
	tokens   *TokenService
	users    *repositories.UserRepository
	projects *repositories.ProjectRepository
}

func NewAccessControl(tokens *TokenService, users *repositories.UserRepository, projects *repositories.ProjectRepository) *AccessControl {
	return &AccessControl{tokens: tokens, users: users, projects: projects}
}

// Authenticate verifies token and loads the user it names.
// A deleted user holding a still valid token is rejected.
func (a *AccessControl) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, Unauthenticated("authentication required", nil)
	}

	userID, err := a.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, Unauthenticated("token expired", err)
		}
		return nil, Unauthenticated("invalid token", err)
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthenticated("user not found", err)
		}
		return nil, Internal(err)
	}
	return identityFrom(user), nil
}

// RequireAdmin fails unless the caller is an admin
func (a *AccessControl) RequireAdmin(id *Identity) error {
	if !id.IsAdmin() {
		return Forbidden("admin privileges required")
	}
	return nil
}

// RequirePage fails unless the caller may open page
func (a *AccessControl) RequirePage(id *Identity, page string) error {
	if !id.CanAccessPage(page) {
		return Forbidden("access to this page is not allowed")
	}
	return nil
}

// RequireProjectAccess fails with NotFound for an unknown project and
// Forbidden when a non-admin is not a member
func (a *AccessControl) RequireProjectAccess(ctx context.Context, id *Identity, projectID string) error {
	exists, err := a.projects.Exists(ctx, projectID)
	if err != nil {
		return Internal(err)
	}
	if !exists {
		return NotFound("project not found")
	}
	if id.IsAdmin() {
		return nil
	}

	member, err := a.projects.IsMember(ctx, projectID, id.ID)
	if err != nil {
		return Internal(err)
	}
	if !member {
		return Forbidden("access to this project is not allowed")
	}
	return nil
}

// memberScope returns the user id that list queries must be restricted to, or "" for admins
func memberScope(id *Identity) string {
	if id.IsAdmin() {
		return ""
	}
	return id.ID
}
