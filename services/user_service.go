package services

import (
	"context"
	"strings"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/projecthub/repositories"
	"github.com/projecthub/utils"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

// UserService handles business logic for user accounts
type UserService struct {
	users *repositories.UserRepository
	log   zerolog.Logger
}

func NewUserService(users *repositories.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// List returns every user ordered by name
func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return result, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Create adds an account on behalf of an admin. The new user must change
// the password on first login.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || req.Password == "" {
		return nil, Validation("email, name and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, Validation("invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, Validation("password must be at least %d characters", minPasswordLength)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, Validation("invalid role %q", role)
	}

	taken, err := s.users.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, Internal(err)
	}
	if taken {
		return nil, Conflict("email already in use")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, Internal(err)
	}

	user := models.User{
		Email:              email,
		Name:               name,
		Password:           hash,
		Role:               role,
		Color:              colorOr(req.Color),
		Avatar:             req.Avatar,
		AllowedPages:       datatypes.JSONSlice[string](utils.UniqueStrings(req.AllowedPages)),
		MustChangePassword: true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, Internal(err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return s.Get(ctx, user.ID)
}

// Update applies a partial update. Admins may change any field; other users
// may only change their own name, color and avatar, and anything else they
// send is ignored. An admin password reset forces a change on next login.
func (s *UserService) Update(ctx context.Context, actor *Identity, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, Forbidden("not allowed to update this user")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}

	changes := map[string]interface{}{}
	if req.Name.Set {
		name, err := requiredText("name", req.Name)
		if err != nil {
			return nil, err
		}
		changes["name"] = name
	}
	if req.Color.Set {
		if req.Color.Null {
			return nil, Validation("color cannot be null")
		}
		changes["color"] = colorOr(req.Color.Value)
	}
	if req.Avatar.Set {
		changes["avatar"] = nullableText(req.Avatar)
	}

	if !actor.IsAdmin() && req.TouchesAdminFields() {
		s.log.Warn().Str("user_id", id).Msg("ignoring admin-only fields in self update")
	}
	if actor.IsAdmin() {
		if req.Email.Set {
			email := utils.NormalizeEmail(req.Email.Value)
			if req.Email.Null || !strings.Contains(email, "@") {
				return nil, Validation("invalid email address")
			}
			if email != user.Email {
				taken, err := s.users.EmailTaken(ctx, email, id)
				if err != nil {
					return nil, Internal(err)
				}
				if taken {
					return nil, Conflict("email already in use")
				}
			}
			changes["email"] = email
		}
		if req.Role.Set {
			if req.Role.Null || !req.Role.Value.Valid() {
				return nil, Validation("invalid role %q", req.Role.Value)
			}
			changes["role"] = req.Role.Value
		}
		if req.AllowedPages.Set {
			changes["allowed_pages"] = datatypes.JSONSlice[string](req.NormalizedPages())
		}
		if req.Password.Present() && req.Password.Value != "" {
			if len(req.Password.Value) < minPasswordLength {
				return nil, Validation("password must be at least %d characters", minPasswordLength)
			}
			hash, err := hashPassword(req.Password.Value)
			if err != nil {
				return nil, Internal(err)
			}
			changes["password"] = hash
			changes["must_change_password"] = true
		}
	}

	if len(changes) > 0 {
		if err := s.users.Update(ctx, id, changes); err != nil {
			return nil, Internal(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a user. Admins cannot delete themselves. Memberships,
// assignments and notifications go with the user; authored rows stay.
func (s *UserService) Delete(ctx context.Context, actor *Identity, id string) error {
	if actor.ID == id {
		return Validation("you cannot delete your own account")
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return Internal(err)
	}
	if !deleted {
		return NotFound("user not found")
	}
	s.log.Info().Str("user_id", id).Str("by", actor.ID).Msg("user deleted")
	return nil
}
