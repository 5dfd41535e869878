package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/projecthub/config"
	"github.com/projecthub/middleware"
	"github.com/projecthub/services"
	"github.com/rs/zerolog"
)

// RegisterRoutes registers all API routes on router, which is mounted at /api
func RegisterRoutes(router *gin.RouterGroup, svc *services.Services) {
	// Health check endpoint
	router.GET("/health", NewHealthController(svc.Health).HealthCheck)

	// Auth endpoints handle their own authentication
	NewAuthController(svc.Auth, svc.Access).RegisterRoutes(router)

	// Everything else requires a valid token
	authRouter := router.Group("")
	authRouter.Use(middleware.AuthMiddleware(svc.Access))

	NewUserController(svc.Users, svc.Access).RegisterRoutes(authRouter)
	NewProjectController(svc.Projects, svc.Access).RegisterRoutes(authRouter)
	NewTaskController(svc.Tasks, svc.Access).RegisterRoutes(authRouter)
	NewBugController(svc.Bugs, svc.Access).RegisterRoutes(authRouter)
	NewCategoryController(svc.Categories, svc.Access).RegisterRoutes(authRouter)
	NewNotificationController(svc.Notifications).RegisterRoutes(authRouter)
	NewContentController(svc.Content, svc.Access).RegisterRoutes(authRouter)
	NewUploadController(svc.Uploads).RegisterRoutes(authRouter)
}

// NewRouter builds the engine: middleware, static uploads, /api routes and
// the JSON 404
func NewRouter(svc *services.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log), cors.New(CORSConfig(cfg.FrontendURL)))
	router.MaxMultipartMemory = 8 << 20

	router.Static("/uploads", svc.Uploads.Dir())
	RegisterRoutes(router.Group("/api"), svc)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return router
}

// CORSConfig allows the configured frontend origins, or any origin for "*"
func CORSConfig(frontendURL string) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := make([]string, 0)
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = origins
	}
	return corsConfig
}
