package repositories

import (
	"context"
	"database/sql"

	"github.com/projecthub/models"
	"gorm.io/gorm"
)

// DocumentRepository handles database operations for project documents
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ListByProject returns documents in display order
func (r *DocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	var docs []models.Document
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("doc_order, created_at").Find(&docs)
	return docs, result.Error
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// NextOrder returns one past the highest order used in projectID
func (r *DocumentRepository) NextOrder(ctx context.Context, projectID string) (int, error) {
	var max sql.NullInt64
	err := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("project_id = ?", projectID).
		Select("MAX(doc_order)").Row().Scan(&max)
	if err != nil || !max.Valid {
		return 0, err
	}
	return int(max.Int64) + 1, nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Document{}).Where("id = ?", id).Updates(changes).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// EventRepository handles database operations for calendar events
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListByProject returns events in chronological order
func (r *EventRepository) ListByProject(ctx context.Context, projectID string) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("start_date").Find(&events)
	return events, result.Error
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.CalendarEvent{}).Where("id = ?", id).Updates(changes).Error
}

func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.CalendarEvent{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// AssetRepository handles database operations for production assets
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) ListByProject(ctx context.Context, projectID string) ([]models.Asset, error) {
	var assets []models.Asset
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("name").Find(&assets)
	return assets, result.Error
}

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *AssetRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Asset{}).Where("id = ?", id).Updates(changes).Error
}

func (r *AssetRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Asset{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
