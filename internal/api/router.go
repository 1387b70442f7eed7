package api

import (
	routes "geocluster/internal/api/handlers"
	"geocluster/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, cfg config.Config) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), cfg)

	// Setup clustering handlers
	routes.SetupClusterHandlers(api, cfg)
}
