package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/services"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP())
		if identity := CurrentIdentity(c); identity != nil {
			event = event.Str("user_id", identity.ID)
		}
		if err := c.Errors.Last(); err != nil && status >= http.StatusInternalServerError {
			event = event.Err(err.Err)
		}
		event.Msg("request")
	}
}

// Recovery turns a panic into the 500 envelope
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		status, body := ErrorBody(services.Internal(nil))
		c.AbortWithStatusJSON(status, body)
	})
}
