package v1

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/dto"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
)

// respondError writes err as the error envelope
func respondError(c *gin.Context, err error) {
	middleware.Abort(c, err)
}

// bindJSON decodes the request body into req, answering 400 when it cannot
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(c, services.Validation("request body is required"))
			return false
		}
		respondError(c, services.Validation("invalid request body: %v", err))
		return false
	}
	return true
}

func message(text string) dto.MessageResponse {
	return dto.MessageResponse{Message: text}
}
