package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/services"
)

// identityKey is where AuthMiddleware stores the caller in the gin context
const identityKey = "identity"

// AuthMiddleware resolves the bearer token to the calling user
func AuthMiddleware(access *services.AccessControl) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			Abort(c, services.Unauthenticated("authentication required", nil))
			return
		}

		identity, err := access.Authenticate(c.Request.Context(), strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			Abort(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// AdminMiddleware only lets admins through. Use after AuthMiddleware.
func AdminMiddleware(access *services.AccessControl) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			Abort(c, services.Unauthenticated("authentication required", nil))
			return
		}
		if err := access.RequireAdmin(identity); err != nil {
			Abort(c, err)
			return
		}
		c.Next()
	}
}

// PageAccessMiddleware rejects users whose allowed pages exclude page
func PageAccessMiddleware(access *services.AccessControl, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			Abort(c, services.Unauthenticated("authentication required", nil))
			return
		}
		if err := access.RequirePage(identity, page); err != nil {
			Abort(c, err)
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, or nil on public routes
func CurrentIdentity(c *gin.Context) *services.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*services.Identity)
	return identity
}
