package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// ContentController handles project documents, calendar events and assets
type ContentController struct {
	content *services.ContentService
	access  *services.AccessControl
}

func NewContentController(content *services.ContentService, access *services.AccessControl) *ContentController {
	return &ContentController{content: content, access: access}
}

// RegisterRoutes registers content routes on an authenticated group
func (ctrl *ContentController) RegisterRoutes(router *gin.RouterGroup) {
	documents := middleware.PageAccessMiddleware(ctrl.access, services.PageDocuments)
	calendar := middleware.PageAccessMiddleware(ctrl.access, services.PageCalendar)
	assets := middleware.PageAccessMiddleware(ctrl.access, services.PageAssets)

	router.GET("/projects/:id/documents", documents, ctrl.ListDocuments)
	router.POST("/projects/:id/documents", documents, ctrl.CreateDocument)
	router.PUT("/documents/:id", documents, ctrl.UpdateDocument)
	router.DELETE("/documents/:id", documents, ctrl.DeleteDocument)

	router.GET("/projects/:id/events", calendar, ctrl.ListEvents)
	router.POST("/projects/:id/events", calendar, ctrl.CreateEvent)
	router.PUT("/events/:id", calendar, ctrl.UpdateEvent)
	router.DELETE("/events/:id", calendar, ctrl.DeleteEvent)

	router.GET("/projects/:id/assets", assets, ctrl.ListAssets)
	router.POST("/projects/:id/assets", assets, ctrl.CreateAsset)
	router.PUT("/assets/:id", assets, ctrl.UpdateAsset)
	router.DELETE("/assets/:id", assets, ctrl.DeleteAsset)
}

// Documents

func (ctrl *ContentController) ListDocuments(c *gin.Context) {
	docs, err := ctrl.content.ListDocuments(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (ctrl *ContentController) CreateDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := ctrl.content.CreateDocument(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (ctrl *ContentController) UpdateDocument(c *gin.Context) {
	var req dto.UpdateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := ctrl.content.UpdateDocument(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (ctrl *ContentController) DeleteDocument(c *gin.Context) {
	if err := ctrl.content.DeleteDocument(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("document deleted"))
}

// Calendar events

func (ctrl *ContentController) ListEvents(c *gin.Context) {
	events, err := ctrl.content.ListEvents(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (ctrl *ContentController) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := ctrl.content.CreateEvent(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (ctrl *ContentController) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := ctrl.content.UpdateEvent(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (ctrl *ContentController) DeleteEvent(c *gin.Context) {
	if err := ctrl.content.DeleteEvent(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("event deleted"))
}

// Assets

func (ctrl *ContentController) ListAssets(c *gin.Context) {
	assets, err := ctrl.content.ListAssets(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (ctrl *ContentController) CreateAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if !bindJSON(c, &req) {
		return
	}
	asset, err := ctrl.content.CreateAsset(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (ctrl *ContentController) UpdateAsset(c *gin.Context) {
	var req dto.UpdateAssetRequest
	if !bindJSON(c, &req) {
		return
	}
	asset, err := ctrl.content.UpdateAsset(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (ctrl *ContentController) DeleteAsset(c *gin.Context) {
	if err := ctrl.content.DeleteAsset(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("asset deleted"))
}
