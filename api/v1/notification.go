package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// NotificationController handles the caller's notifications
type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// RegisterRoutes registers notification routes on an authenticated group
func (ctrl *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", ctrl.ListNotifications)
		notifications.GET("/count", ctrl.CountUnread)
		notifications.POST("", ctrl.CreateNotification)
		notifications.POST("/bulk", ctrl.CreateBulk)
		notifications.PATCH("/read-all", ctrl.MarkAllRead)
		notifications.PATCH("/:id/read", ctrl.MarkRead)
		notifications.DELETE("/:id", ctrl.DeleteNotification)
		notifications.DELETE("", ctrl.DeleteAll)
	}
}

// ListNotifications returns the newest notifications, unread only with ?unreadOnly=true
func (ctrl *NotificationController) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unreadOnly") == "true"
	list, err := ctrl.notifications.List(c.Request.Context(), middleware.CurrentIdentity(c), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *NotificationController) CountUnread(c *gin.Context) {
	count, err := ctrl.notifications.CountUnread(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (ctrl *NotificationController) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.Validation("userId, type and title are required"))
		return
	}
	n, err := ctrl.notifications.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// CreateBulk inserts every notification or none
func (ctrl *NotificationController) CreateBulk(c *gin.Context) {
	var req dto.BulkNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.Validation("notifications must be an array"))
		return
	}
	count, err := ctrl.notifications.CreateBulk(c.Request.Context(), req.Notifications)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message(fmt.Sprintf("%d notifications created", count)))
}

func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	if err := ctrl.notifications.MarkRead(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("notification marked as read"))
}

func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	if err := ctrl.notifications.MarkAllRead(c.Request.Context(), middleware.CurrentIdentity(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("all notifications marked as read"))
}

func (ctrl *NotificationController) DeleteNotification(c *gin.Context) {
	if err := ctrl.notifications.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("notification deleted"))
}

func (ctrl *NotificationController) DeleteAll(c *gin.Context) {
	if err := ctrl.notifications.DeleteAll(c.Request.Context(), middleware.CurrentIdentity(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("all notifications deleted"))
}
