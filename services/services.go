package services

import (
	"fmt"

	"github.com/projecthub/config"
	"github.com/projecthub/database"
	"github.com/projecthub/repositories"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Services wires every service over one store handle
type Services struct {
	Tokens        *TokenService
	Access        *AccessControl
	Auth          *AuthService
	Users         *UserService
	Projects      *ProjectService
	Tasks         *TaskService
	Bugs          *BugService
	Categories    *CategoryService
	Notifications *NotificationService
	Content       *ContentService
	Uploads       *UploadService
	Health        *HealthChecker
}

// New builds the service graph
func New(db *gorm.DB, cfg *config.Config, log zerolog.Logger) (*Services, error) {
	pinger, err := database.SQLPinger(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	users := repositories.NewUserRepository(db)
	projects := repositories.NewProjectRepository(db)
	categories := repositories.NewCategoryRepository(db)
	tasks := repositories.NewTaskRepository(db)
	bugs := repositories.NewBugRepository(db)
	notifications := repositories.NewNotificationRepository(db)

	tokens := NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	access := NewAccessControl(tokens, users, projects)

	return &Services{
		Tokens:        tokens,
		Access:        access,
		Auth:          NewAuthService(users, tokens, log),
		Users:         NewUserService(users, log),
		Projects:      NewProjectService(db, projects, users, access),
		Tasks:         NewTaskService(db, tasks, projects, users, access),
		Bugs:          NewBugService(bugs, projects, categories, users, access),
		Categories:    NewCategoryService(db, categories, users),
		Notifications: NewNotificationService(db, notifications, users),
		Content: NewContentService(
			repositories.NewDocumentRepository(db),
			repositories.NewEventRepository(db),
			repositories.NewAssetRepository(db),
			users,
			access,
		),
		Uploads: NewUploadService(cfg.UploadDir, cfg.BaseURL, log),
		Health:  NewHealthChecker(pinger),
	}, nil
}
