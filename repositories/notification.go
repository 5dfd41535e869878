package repositories

import (
	"context"

	"github.com/projecthub/models"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for notifications.
// Every read and write is scoped to the owning user.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// WithTx returns a copy bound to tx
func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// ListForUser returns up to limit notifications of userID, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var notifications []models.Notification
	result := q.Order("created_at DESC").Limit(limit).Find(&notifications)
	return notifications, result.Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// CreateMany inserts all notifications in one statement
func (r *NotificationRepository) CreateMany(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

// MarkRead returns false when userID owns no notification with that id
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
	return err == nil, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("read", true).Error
}

// Delete returns false when userID owns no notification with that id
func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	return result.RowsAffected > 0, result.Error
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
