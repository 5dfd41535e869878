package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/services"
)

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation, services.KindConflict:
		return http.StatusBadRequest
	case services.KindAuthentication:
		return http.StatusUnauthorized
	case services.KindAuthorization:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrorBody renders err as the {error} envelope. Internal failures only
// carry their detail in debug mode.
func ErrorBody(err error) (int, gin.H) {
	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		appErr = services.Internal(err)
	}

	status := StatusFor(appErr.Kind)
	body := gin.H{"error": appErr.Message}
	if status == http.StatusInternalServerError && gin.IsDebugging() && appErr.Err != nil {
		body["message"] = appErr.Err.Error()
	}
	return status, body
}

// Abort records err on the context for the request logger and stops the chain
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := ErrorBody(err)
	c.AbortWithStatusJSON(status, body)
}
