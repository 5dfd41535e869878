package database

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/projecthub/models"
	"github.com/projecthub/utils"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultFixtures []byte

// SeedUser describes a bootstrap account
type SeedUser struct {
	Email    string      `yaml:"email"`
	Name     string      `yaml:"name"`
	Password string      `yaml:"password"`
	Role     models.Role `yaml:"role"`
	Color    string      `yaml:"color"`
}

type SeedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

type SeedTask struct {
	Title    string              `yaml:"title"`
	Status   models.TaskStatus   `yaml:"status"`
	Priority models.TaskPriority `yaml:"priority"`
	Tags     []string            `yaml:"tags"`
}

type SeedProject struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Color       string     `yaml:"color"`
	Tasks       []SeedTask `yaml:"tasks"`
}

// Fixtures is the document loaded by the seed command
type Fixtures struct {
	Admin           SeedUser       `yaml:"admin"`
	DefaultPassword string         `yaml:"defaultPassword"`
	Users           []SeedUser     `yaml:"users"`
	Categories      []SeedCategory `yaml:"categories"`
	Projects        []SeedProject  `yaml:"projects"`

	// GeneratedPassword is set when the admin password was generated at load time
	GeneratedPassword bool `yaml:"-"`
}

// LoadFixtures reads fixtures from path, or the built-in demo set when path is empty
func LoadFixtures(path string) (*Fixtures, error) {
	data := defaultFixtures
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixtures: %w", err)
		}
		data = raw
	}

	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if fx.Admin.Email == "" {
		return nil, fmt.Errorf("fixtures must define an admin email")
	}
	if fx.Admin.Password == "" {
		password, err := utils.GenerateSecurePassword(16)
		if err != nil {
			return nil, err
		}
		fx.Admin.Password = password
		fx.GeneratedPassword = true
	}
	return &fx, nil
}

// Seed bootstraps an empty database with the admin account and demo data.
// It reports false without touching anything when users already exist.
func Seed(ctx context.Context, db *gorm.DB, fx *Fixtures, log zerolog.Logger) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Warn().Int64("users", count).Msg("⚠️ Database already contains data, skipping seed")
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin, err := seedUser(tx, fx.Admin, fx.Admin.Password, models.RoleAdmin, true)
		if err != nil {
			return err
		}
		log.Info().Str("email", admin.Email).Msg("✅ Admin user created, change its password on first login")

		userIDs := []string{admin.ID}
		for _, u := range fx.Users {
			password := u.Password
			if password == "" {
				password = fx.DefaultPassword
			}
			role := u.Role
			if role == "" {
				role = models.RoleUser
			}
			created, err := seedUser(tx, u, password, role, false)
			if err != nil {
				return err
			}
			userIDs = append(userIDs, created.ID)
		}

		for i, c := range fx.Categories {
			category := models.Category{Name: c.Name, Color: colorOrDefault(c.Color)}
			if c.Description != "" {
				category.Description = &c.Description
			}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("create category %s: %w", c.Name, err)
			}
			if i+1 < len(userIDs) {
				member := models.CategoryMember{CategoryID: category.ID, UserID: userIDs[i+1]}
				if err := tx.Create(&member).Error; err != nil {
					return fmt.Errorf("add category member: %w", err)
				}
			}
		}

		now := time.Now().UTC()
		for _, p := range fx.Projects {
			project := models.Project{
				Name:      p.Name,
				CreatedBy: admin.ID,
				Color:     colorOrDefault(p.Color),
				Status:    models.ProjectStatusActive,
				StartDate: &now,
			}
			if p.Description != "" {
				project.Description = &p.Description
			}
			if err := tx.Create(&project).Error; err != nil {
				return fmt.Errorf("create project %s: %w", p.Name, err)
			}
			for _, id := range userIDs {
				if err := tx.Create(&models.ProjectMember{ProjectID: project.ID, UserID: id}).Error; err != nil {
					return fmt.Errorf("add project member: %w", err)
				}
			}
			for _, t := range p.Tasks {
				task := models.Task{
					ProjectID:    project.ID,
					Title:        t.Title,
					Status:       t.Status,
					Priority:     t.Priority,
					CreatedBy:    admin.ID,
					Tags:         datatypes.JSONSlice[string](t.Tags),
					Dependencies: datatypes.JSONSlice[string]{},
				}
				if !task.Status.Valid() {
					task.Status = models.TaskStatusTodo
				}
				if !task.Priority.Valid() {
					task.Priority = models.TaskPriorityMedium
				}
				if err := tx.Create(&task).Error; err != nil {
					return fmt.Errorf("create task %s: %w", t.Title, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Int("users", len(fx.Users)+1).Int("categories", len(fx.Categories)).
		Int("projects", len(fx.Projects)).Msg("🎉 Database seeded")
	return true, nil
}

func seedUser(tx *gorm.DB, u SeedUser, password string, role models.Role, mustChange bool) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:              utils.NormalizeEmail(u.Email),
		Name:               u.Name,
		Password:           string(hash),
		Role:               role,
		Color:              colorOrDefault(u.Color),
		AllowedPages:       datatypes.JSONSlice[string]{},
		MustChangePassword: mustChange,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return &user, nil
}

func colorOrDefault(color string) string {
	if color == "" {
		return models.DefaultColor
	}
	return color
}
