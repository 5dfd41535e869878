package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/services"
)

// multipartOverhead covers boundaries and part headers on top of the file bytes
const multipartOverhead = 1 << 20

// UploadController stores and removes user files
type UploadController struct {
	uploads *services.UploadService
	// maxFileBody caps the request body of a single-file upload
	maxFileBody int64
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads, maxFileBody: services.MaxUploadSize + multipartOverhead}
}

// RegisterRoutes registers upload routes on an authenticated group
func (ctrl *UploadController) RegisterRoutes(router *gin.RouterGroup) {
	uploads := router.Group("/uploads")
	{
		uploads.POST("", limitBody(ctrl.maxFileBody), ctrl.UploadFile)
		uploads.POST("/multiple", limitBody(ctrl.maxFileBody*services.MaxUploadFiles), ctrl.UploadFiles)
		uploads.DELETE("/:subdir/:filename", ctrl.DeleteFile)
	}
}

// limitBody stops multipart parsing once the body passes n bytes
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// UploadFile stores the multipart field "file"
func (ctrl *UploadController) UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, noFileError(err))
		return
	}
	resp, err := ctrl.uploads.Save(fh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UploadFiles stores up to ten files from the multipart field "files"
func (ctrl *UploadController) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, noFileError(err))
		return
	}
	resp, err := ctrl.uploads.SaveMany(form.File["files"])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *UploadController) DeleteFile(c *gin.Context) {
	if err := ctrl.uploads.Delete(c.Param("subdir"), c.Param("filename")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("file deleted"))
}

func noFileError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return services.Validation("file too large (max %d MB)", services.MaxUploadSize>>20)
	}
	return services.Validation("no file provided")
}
