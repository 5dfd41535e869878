package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// ProjectController handles project and membership endpoints
type ProjectController struct {
	projects *services.ProjectService
	access   *services.AccessControl
}

func NewProjectController(projects *services.ProjectService, access *services.AccessControl) *ProjectController {
	return &ProjectController{projects: projects, access: access}
}

// RegisterRoutes registers project routes on an authenticated group
func (ctrl *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.AdminMiddleware(ctrl.access)

	projects := router.Group("/projects", middleware.PageAccessMiddleware(ctrl.access, services.PageProjects))
	{
		projects.GET("", ctrl.ListProjects)
		projects.GET("/:id", ctrl.GetProject)
		projects.POST("", admin, ctrl.CreateProject)
		projects.PUT("/:id", admin, ctrl.UpdateProject)
		projects.DELETE("/:id", admin, ctrl.DeleteProject)
		projects.POST("/:id/members", admin, ctrl.AddMember)
		projects.DELETE("/:id/members/:userId", admin, ctrl.RemoveMember)
	}
}

// ListProjects godoc
// @Summary List projects
// @Description Get all projects for admins, or only the caller's projects for regular users
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Router /projects [get]
func (ctrl *ProjectController) ListProjects(c *gin.Context) {
	projects, err := ctrl.projects.List(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Router /projects/{id} [get]
func (ctrl *ProjectController) GetProject(c *gin.Context) {
	project, err := ctrl.projects.Get(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject godoc
// @Summary Create a project
// @Description The creator is always a member
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Router /projects [post]
func (ctrl *ProjectController) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := ctrl.projects.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (ctrl *ProjectController) UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := ctrl.projects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (ctrl *ProjectController) DeleteProject(c *gin.Context) {
	if err := ctrl.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("project deleted"))
}

func (ctrl *ProjectController) AddMember(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.Validation("userId is required"))
		return
	}
	if err := ctrl.projects.AddMember(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("member added"))
}

func (ctrl *ProjectController) RemoveMember(c *gin.Context) {
	if err := ctrl.projects.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("member removed"))
}
