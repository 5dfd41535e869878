package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/services"
)

// HealthController reports liveness and store connectivity
type HealthController struct {
	checker *services.HealthChecker
}

func NewHealthController(checker *services.HealthChecker) *HealthController {
	return &HealthController{checker: checker}
}

// HealthCheck answers 503 when the store cannot be reached
func (ctrl *HealthController) HealthCheck(c *gin.Context) {
	resp, ok := ctrl.checker.Check(c.Request.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
