package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// BugController handles bug report endpoints
type BugController struct {
	bugs   *services.BugService
	access *services.AccessControl
}

func NewBugController(bugs *services.BugService, access *services.AccessControl) *BugController {
	return &BugController{bugs: bugs, access: access}
}

// RegisterRoutes registers bug routes on an authenticated group
func (ctrl *BugController) RegisterRoutes(router *gin.RouterGroup) {
	bugs := router.Group("/bugs", middleware.PageAccessMiddleware(ctrl.access, services.PageBugs))
	{
		bugs.GET("", ctrl.ListBugs)
		bugs.GET("/:id", ctrl.GetBug)
		bugs.POST("", ctrl.CreateBug)
		bugs.PUT("/:id", ctrl.UpdateBug)
		bugs.DELETE("/:id", ctrl.DeleteBug)
		bugs.PATCH("/:id/status", ctrl.UpdateBugStatus)
		bugs.PATCH("/:id/severity", ctrl.UpdateBugSeverity)
	}
}

func (ctrl *BugController) ListBugs(c *gin.Context) {
	filter := dto.BugFilter{
		ProjectID:  c.Query("projectId"),
		Status:     c.Query("status"),
		Severity:   c.Query("severity"),
		CategoryID: c.Query("categoryId"),
	}
	bugs, err := ctrl.bugs.List(c.Request.Context(), middleware.CurrentIdentity(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bugs)
}

func (ctrl *BugController) GetBug(c *gin.Context) {
	bug, err := ctrl.bugs.Get(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bug)
}

// CreateBug reports a bug as the caller
func (ctrl *BugController) CreateBug(c *gin.Context) {
	var req dto.CreateBugRequest
	if !bindJSON(c, &req) {
		return
	}
	bug, err := ctrl.bugs.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bug)
}

func (ctrl *BugController) UpdateBug(c *gin.Context) {
	var req dto.UpdateBugRequest
	if !bindJSON(c, &req) {
		return
	}
	bug, err := ctrl.bugs.Update(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bug)
}

func (ctrl *BugController) DeleteBug(c *gin.Context) {
	if err := ctrl.bugs.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("bug deleted"))
}

func (ctrl *BugController) UpdateBugStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ctrl.bugs.UpdateStatus(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Message: "status updated", Status: req.Status})
}

func (ctrl *BugController) UpdateBugSeverity(c *gin.Context) {
	var req dto.SeverityRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ctrl.bugs.UpdateSeverity(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req.Severity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SeverityResponse{Message: "severity updated", Severity: req.Severity})
}
