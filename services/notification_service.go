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

// notificationListLimit caps how many notifications a list returns
const notificationListLimit = 100

// NotificationService manages per-user notifications
type NotificationService struct {
	db            *gorm.DB
	notifications *repositories.NotificationRepository
	users         *repositories.UserRepository
}

func NewNotificationService(db *gorm.DB, notifications *repositories.NotificationRepository, users *repositories.UserRepository) *NotificationService {
	return &NotificationService{db: db, notifications: notifications, users: users}
}

// List returns the caller's newest notifications
func (s *NotificationService) List(ctx context.Context, id *Identity, unreadOnly bool) ([]models.Notification, error) {
	list, err := s.notifications.ListForUser(ctx, id.ID, unreadOnly, notificationListLimit)
	if err != nil {
		return nil, Internal(err)
	}
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

func (s *NotificationService) CountUnread(ctx context.Context, id *Identity) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, id.ID)
	if err != nil {
		return 0, Internal(err)
	}
	return count, nil
}

// Create addresses a notification to any existing user
func (s *NotificationService) Create(ctx context.Context, req dto.CreateNotificationRequest) (*models.Notification, error) {
	n, invalid := buildNotification(req)
	if invalid != nil {
		return nil, invalid
	}
	if err := requireUsers(ctx, s.users, []string{n.UserID}); err != nil {
		return nil, err
	}
	if err := s.notifications.Create(ctx, &n); err != nil {
		return nil, Internal(err)
	}
	return &n, nil
}

// CreateBulk inserts every notification or none of them
func (s *NotificationService) CreateBulk(ctx context.Context, reqs []dto.CreateNotificationRequest) (int, error) {
	batch := make([]models.Notification, 0, len(reqs))
	recipients := make([]string, 0, len(reqs))
	for i, req := range reqs {
		n, invalid := buildNotification(req)
		if invalid != nil {
			return 0, Validation("notification %d: %s", i, invalid.Message)
		}
		batch = append(batch, n)
		recipients = append(recipients, n.UserID)
	}
	if err := requireUsers(ctx, s.users, utils.UniqueStrings(recipients)); err != nil {
		return 0, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.notifications.WithTx(tx).CreateMany(ctx, batch)
	})
	if err != nil {
		return 0, Internal(err)
	}
	return len(batch), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id *Identity, notificationID string) error {
	ok, err := s.notifications.MarkRead(ctx, notificationID, id.ID)
	if err != nil {
		return Internal(err)
	}
	if !ok {
		return NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, id *Identity) error {
	return internalIf(s.notifications.MarkAllRead(ctx, id.ID))
}

func (s *NotificationService) Delete(ctx context.Context, id *Identity, notificationID string) error {
	ok, err := s.notifications.Delete(ctx, notificationID, id.ID)
	if err != nil {
		return Internal(err)
	}
	if !ok {
		return NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) DeleteAll(ctx context.Context, id *Identity) error {
	return internalIf(s.notifications.DeleteAll(ctx, id.ID))
}

func buildNotification(req dto.CreateNotificationRequest) (models.Notification, *AppError) {
	n := models.Notification{
		UserID:  strings.TrimSpace(req.UserID),
		Type:    strings.TrimSpace(req.Type),
		Title:   strings.TrimSpace(req.Title),
		Message: req.Message,
		Link:    req.Link,
	}
	if n.UserID == "" || n.Type == "" || n.Title == "" {
		return n, Validation("userId, type and title are required")
	}
	return n, nil
}
