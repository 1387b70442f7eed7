package routes

import (
	"github.com/gin-gonic/gin"

	"geocluster/internal/config"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup, cfg config.Config) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"port":     cfg.Port,
			"redisUrl": cfg.RedisUrl,
			"radius":   cfg.Radius,
			"region":   cfg.Region().Envelope(),
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
