package repositories

import (
	"context"

	"github.com/projecthub/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy bound to tx
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindAll retrieves all users ordered by name
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	result := r.db.WithContext(ctx).Order("name").Find(&users)
	return users, result.Error
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail expects an already normalized email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether another user than excludeID owns email
func (r *UserRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update applies column changes to a user
func (r *UserRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(changes).Error
}

// SetPassword stores a new hash and the must-change flag
func (r *UserRepository) SetPassword(ctx context.Context, id, hash string, mustChange bool) error {
	return r.Update(ctx, id, map[string]interface{}{
		"password":             hash,
		"must_change_password": mustChange,
	})
}

// Delete removes a user, returning false when nothing matched
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// MissingIDs returns the ids that have no user row
func (r *UserRepository) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// NamesByID maps user ids to display names; unknown ids are left out
func (r *UserRepository) NamesByID(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
