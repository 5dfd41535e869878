package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// UserController handles user account endpoints
type UserController struct {
	users  *services.UserService
	access *services.AccessControl
}

func NewUserController(users *services.UserService, access *services.AccessControl) *UserController {
	return &UserController{users: users, access: access}
}

// RegisterRoutes registers user routes on an authenticated group
func (ctrl *UserController) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.AdminMiddleware(ctrl.access)

	users := router.Group("/users")
	{
		users.GET("", ctrl.ListUsers)
		users.GET("/:id", ctrl.GetUser)
		users.POST("", admin, ctrl.CreateUser)
		users.PUT("/:id", ctrl.UpdateUser)
		users.DELETE("/:id", admin, ctrl.DeleteUser)
	}
}

func (ctrl *UserController) ListUsers(c *gin.Context) {
	users, err := ctrl.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctrl *UserController) GetUser(c *gin.Context) {
	user, err := ctrl.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser adds an account; the new user must change the password on first login
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.users.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser is open to admins and to the user themself
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.users.Update(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	if err := ctrl.users.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("user deleted"))
}
