package services

import (
	"context"
	"strings"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/projecthub/repositories"
)

// ContentService manages the documents, calendar events and assets of projects.
// Every operation requires access to the owning project.
type ContentService struct {
	documents *repositories.DocumentRepository
	events    *repositories.EventRepository
	assets    *repositories.AssetRepository
	users     *repositories.UserRepository
	access    *AccessControl
}

func NewContentService(documents *repositories.DocumentRepository, events *repositories.EventRepository, assets *repositories.AssetRepository, users *repositories.UserRepository, access *AccessControl) *ContentService {
	return &ContentService{documents: documents, events: events, assets: assets, users: users, access: access}
}

// Documents

func (s *ContentService) ListDocuments(ctx context.Context, id *Identity, projectID string) ([]models.Document, error) {
	if err := s.access.RequireProjectAccess(ctx, id, projectID); err != nil {
		return nil, err
	}
	docs, err := s.documents.ListByProject(ctx, projectID)
	if err != nil {
		return nil, Internal(err)
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// CreateDocument appends the document after the existing ones unless an order is given
func (s *ContentService) CreateDocument(ctx context.Context, id *Identity, projectID string, req dto.CreateDocumentRequest) (*models.Document, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, Validation("document title is required")
	}
	if err := s.access.RequireProjectAccess(ctx, id, projectID); err != nil {
		return nil, err
	}

	doc := models.Document{ProjectID: projectID, Title: title, Markdown: req.Markdown, CreatedBy: id.ID}
	if req.Order != nil {
		doc.Order = *req.Order
	} else {
		next, err := s.documents.NextOrder(ctx, projectID)
		if err != nil {
			return nil, Internal(err)
		}
		doc.Order = next
	}
	if err := s.documents.Create(ctx, &doc); err != nil {
		return nil, Internal(err)
	}
	return &doc, nil
}

func (s *ContentService) UpdateDocument(ctx context.Context, id *Identity, docID string, req dto.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.documents.FindByID(ctx, docID)
	if err != nil {
		return nil, notFoundOr(err, "document not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, doc.ProjectID); err != nil {
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
	if req.Markdown.Set {
		changes["markdown"] = nullableText(req.Markdown)
	}
	if req.Order.Set {
		if req.Order.Null {
			return nil, Validation("order cannot be null")
		}
		changes["doc_order"] = req.Order.Value
	}
	if len(changes) > 0 {
		if err := s.documents.Update(ctx, docID, changes); err != nil {
			return nil, Internal(err)
		}
	}

	doc, err = s.documents.FindByID(ctx, docID)
	if err != nil {
		return nil, notFoundOr(err, "document not found")
	}
	return doc, nil
}

func (s *ContentService) DeleteDocument(ctx context.Context, id *Identity, docID string) error {
	doc, err := s.documents.FindByID(ctx, docID)
	if err != nil {
		return notFoundOr(err, "document not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, doc.ProjectID); err != nil {
		return err
	}
	_, err = s.documents.Delete(ctx, docID)
	return internalIf(err)
}

// Calendar events

func (s *ContentService) ListEvents(ctx context.Context, id *Identity, projectID string) ([]models.CalendarEvent, error) {
	if err := s.access.RequireProjectAccess(ctx, id, projectID); err != nil {
		return nil, err
	}
	events, err := s.events.ListByProject(ctx, projectID)
	if err != nil {
		return nil, Internal(err)
	}
	if events == nil {
		events = []models.CalendarEvent{}
	}
	return events, nil
}

// CreateEvent records the caller as the event owner
func (s *ContentService) CreateEvent(ctx context.Context, id *Identity, projectID string, req dto.CreateEventRequest) (*models.CalendarEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.StartDate.TimePtr() == nil || req.EndDate.TimePtr() == nil {
		return nil, Validation("title, startDate and endDate are required")
	}
	if req.EndDate.Before(req.StartDate.Time) {
		return nil, Validation("endDate must not be before startDate")
	}
	eventType := req.Type
	if eventType == "" {
		eventType = models.EventTypeOther
	}
	if !eventType.Valid() {
		return nil, Validation("invalid event type %q", eventType)
	}
	if err := s.access.RequireProjectAccess(ctx, id, projectID); err != nil {
		return nil, err
	}

	event := models.CalendarEvent{
		ProjectID:   projectID,
		Title:       title,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		UserID:      id.ID,
		Type:        eventType,
	}
	if err := s.events.Create(ctx, &event); err != nil {
		return nil, Internal(err)
	}
	return &event, nil
}

func (s *ContentService) UpdateEvent(ctx context.Context, id *Identity, eventID string, req dto.UpdateEventRequest) (*models.CalendarEvent, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, notFoundOr(err, "event not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, event.ProjectID); err != nil {
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
	start, end := event.StartDate, event.EndDate
	if req.StartDate.Set {
		if req.StartDate.Null {
			return nil, Validation("startDate cannot be null")
		}
		start = req.StartDate.Value.Time
		changes["start_date"] = start
	}
	if req.EndDate.Set {
		if req.EndDate.Null {
			return nil, Validation("endDate cannot be null")
		}
		end = req.EndDate.Value.Time
		changes["end_date"] = end
	}
	if end.Before(start) {
		return nil, Validation("endDate must not be before startDate")
	}
	if req.Type.Set {
		if req.Type.Null || !req.Type.Value.Valid() {
			return nil, Validation("invalid event type %q", req.Type.Value)
		}
		changes["type"] = req.Type.Value
	}
	if len(changes) > 0 {
		if err := s.events.Update(ctx, eventID, changes); err != nil {
			return nil, Internal(err)
		}
	}

	event, err = s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, notFoundOr(err, "event not found")
	}
	return event, nil
}

func (s *ContentService) DeleteEvent(ctx context.Context, id *Identity, eventID string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return notFoundOr(err, "event not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, event.ProjectID); err != nil {
		return err
	}
	_, err = s.events.Delete(ctx, eventID)
	return internalIf(err)
}

// Assets

func (s *ContentService) ListAssets(ctx context.Context, id *Identity, projectID string) ([]models.Asset, error) {
	if err := s.access.RequireProjectAccess(ctx, id, projectID); err != nil {
		return nil, err
	}
	assets, err := s.assets.ListByProject(ctx, projectID)
	if err != nil {
		return nil, Internal(err)
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

func (s *ContentService) CreateAsset(ctx context.Context, id *Identity, projectID string, req dto.CreateAssetRequest) (*models.Asset, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, Validation("asset name is required")
	}
	assetType := req.Type
	if assetType == "" {
		assetType = models.AssetTypeOther
	}
	if !assetType.Valid() {
		return nil, Validation("invalid asset type %q", assetType)
	}
	status := req.Status
	if status == "" {
		status = models.AssetStatusConcept
	}
	if !status.Valid() {
		return nil, Validation("invalid asset status %q", status)
	}
	version := strings.TrimSpace(req.Version)
	if version == "" {
		version = "1.0"
	}
	if err := s.access.RequireProjectAccess(ctx, id, projectID); err != nil {
		return nil, err
	}
	if req.AssignedTo != nil && *req.AssignedTo == "" {
		req.AssignedTo = nil
	}
	if req.AssignedTo != nil {
		if err := requireUsers(ctx, s.users, []string{*req.AssignedTo}); err != nil {
			return nil, err
		}
	}

	asset := models.Asset{
		ProjectID:  projectID,
		Name:       name,
		Type:       assetType,
		Status:     status,
		AssignedTo: req.AssignedTo,
		Version:    version,
		FileURL:    req.FileURL,
		Thumbnail:  req.Thumbnail,
	}
	if err := s.assets.Create(ctx, &asset); err != nil {
		return nil, Internal(err)
	}
	return &asset, nil
}

func (s *ContentService) UpdateAsset(ctx context.Context, id *Identity, assetID string, req dto.UpdateAssetRequest) (*models.Asset, error) {
	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, notFoundOr(err, "asset not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, asset.ProjectID); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Name.Set {
		name, err := requiredText("name", req.Name)
		if err != nil {
			return nil, err
		}
		changes["name"] = name
	}
	if req.Type.Set {
		if req.Type.Null || !req.Type.Value.Valid() {
			return nil, Validation("invalid asset type %q", req.Type.Value)
		}
		changes["type"] = req.Type.Value
	}
	if req.Status.Set {
		if req.Status.Null || !req.Status.Value.Valid() {
			return nil, Validation("invalid asset status %q", req.Status.Value)
		}
		changes["status"] = req.Status.Value
	}
	if req.AssignedTo.Set {
		if req.AssignedTo.Null || req.AssignedTo.Value == "" {
			changes["assigned_to"] = nil
		} else {
			if err := requireUsers(ctx, s.users, []string{req.AssignedTo.Value}); err != nil {
				return nil, err
			}
			changes["assigned_to"] = req.AssignedTo.Value
		}
	}
	if req.Version.Set {
		version, err := requiredText("version", req.Version)
		if err != nil {
			return nil, err
		}
		changes["version"] = version
	}
	if req.FileURL.Set {
		changes["file_url"] = nullableText(req.FileURL)
	}
	if req.Thumbnail.Set {
		changes["thumbnail"] = nullableText(req.Thumbnail)
	}
	if len(changes) > 0 {
		if err := s.assets.Update(ctx, assetID, changes); err != nil {
			return nil, Internal(err)
		}
	}

	asset, err = s.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, notFoundOr(err, "asset not found")
	}
	return asset, nil
}

func (s *ContentService) DeleteAsset(ctx context.Context, id *Identity, assetID string) error {
	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return notFoundOr(err, "asset not found")
	}
	if err := s.access.RequireProjectAccess(ctx, id, asset.ProjectID); err != nil {
		return err
	}
	_, err = s.assets.Delete(ctx, assetID)
	return internalIf(err)
}
