package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// AuthController handles login and the caller's own session
type AuthController struct {
	auth   *services.AuthService
	access *services.AccessControl
}

func NewAuthController(auth *services.AuthService, access *services.AccessControl) *AuthController {
	return &AuthController{auth: auth, access: access}
}

// RegisterRoutes registers auth routes
func (ctrl *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", ctrl.Login)

		authed := auth.Group("", middleware.AuthMiddleware(ctrl.access))
		authed.GET("/me", ctrl.Me)
		authed.POST("/change-password", ctrl.ChangePassword)
		authed.POST("/logout", ctrl.Logout)
	}
}

// Login handles user authentication
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.Validation("email and password are required"))
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user
func (ctrl *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MeResponse{User: middleware.CurrentIdentity(c).Response()})
}

func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ctrl.auth.ChangePassword(c.Request.Context(), middleware.CurrentIdentity(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("password changed"))
}

// Logout only acknowledges; tokens stay valid until they expire
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, message("logged out"))
}
