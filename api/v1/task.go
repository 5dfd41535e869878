package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// TaskController handles task endpoints
type TaskController struct {
	tasks  *services.TaskService
	access *services.AccessControl
}

func NewTaskController(tasks *services.TaskService, access *services.AccessControl) *TaskController {
	return &TaskController{tasks: tasks, access: access}
}

// RegisterRoutes registers task routes on an authenticated group
func (ctrl *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks", middleware.PageAccessMiddleware(ctrl.access, services.PageTasks))
	{
		tasks.GET("", ctrl.ListTasks)
		tasks.GET("/:id", ctrl.GetTask)
		tasks.POST("", ctrl.CreateTask)
		tasks.PUT("/:id", ctrl.UpdateTask)
		tasks.DELETE("/:id", ctrl.DeleteTask)
		tasks.PATCH("/:id/status", ctrl.UpdateTaskStatus)
	}
}

// ListTasks filters by the projectId, status and assignee query parameters
func (ctrl *TaskController) ListTasks(c *gin.Context) {
	filter := dto.TaskFilter{
		ProjectID: c.Query("projectId"),
		Status:    c.Query("status"),
		Assignee:  c.Query("assignee"),
	}
	tasks, err := ctrl.tasks.List(c.Request.Context(), middleware.CurrentIdentity(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (ctrl *TaskController) GetTask(c *gin.Context) {
	task, err := ctrl.tasks.Get(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (ctrl *TaskController) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := ctrl.tasks.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (ctrl *TaskController) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := ctrl.tasks.Update(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (ctrl *TaskController) DeleteTask(c *gin.Context) {
	if err := ctrl.tasks.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("task deleted"))
}

// UpdateTaskStatus moves a task between board columns
func (ctrl *TaskController) UpdateTaskStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ctrl.tasks.UpdateStatus(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Message: "status updated", Status: req.Status})
}
