package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// CategoryController handles categories and their members
type CategoryController struct {
	categories *services.CategoryService
	access     *services.AccessControl
}

func NewCategoryController(categories *services.CategoryService, access *services.AccessControl) *CategoryController {
	return &CategoryController{categories: categories, access: access}
}

// RegisterRoutes registers category routes on an authenticated group
func (ctrl *CategoryController) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.AdminMiddleware(ctrl.access)

	categories := router.Group("/categories", middleware.PageAccessMiddleware(ctrl.access, services.PageCategories))
	{
		categories.GET("", ctrl.ListCategories)
		categories.GET("/:id", ctrl.GetCategory)
		categories.POST("", admin, ctrl.CreateCategory)
		categories.PUT("/:id", admin, ctrl.UpdateCategory)
		categories.DELETE("/:id", admin, ctrl.DeleteCategory)
		categories.POST("/:id/members", admin, ctrl.AddMember)
		categories.DELETE("/:id/members/:userId", admin, ctrl.RemoveMember)
	}
}

func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	categories, err := ctrl.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	category, err := ctrl.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := ctrl.categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := ctrl.categories.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory leaves the bugs of the category uncategorized
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	if err := ctrl.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("category deleted"))
}

func (ctrl *CategoryController) AddMember(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.Validation("userId is required"))
		return
	}
	if err := ctrl.categories.AddMember(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("member added"))
}

func (ctrl *CategoryController) RemoveMember(c *gin.Context) {
	if err := ctrl.categories.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("member removed"))
}
