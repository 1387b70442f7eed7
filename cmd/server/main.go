package main

import (
	"log"

	"geocluster/internal/api"
	"geocluster/internal/config"
	"geocluster/internal/redis"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func main() {
	// Load configuration
	cfg, err := loadConfiguration()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize cache when configured
	initializeCache(cfg)
	defer redis.Close()

	// Setup and run API server
	runAPIServer(cfg)
}

func loadConfiguration() (config.Config, error) {
	// Try loading from config package first
	cfg, err := config.LoadConfig()
	if err != nil {
		// Fallback to loading from environment directly
		log.Println("Failed to load config via config package, using fallback method")

		cfg.Port = getEnvWithDefault("PORT", ":8080")
		cfg.RedisUrl = viper.GetString("REDIS_URL")
		cfg.Radius = 4.0
		cfg.ChunkSize = 256

		// Germany bounding box
		cfg.RegionMinLng, cfg.RegionMinLat = 5.866211, 47.270111
		cfg.RegionMaxLng, cfg.RegionMaxLat = 15.013611, 55.058333
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		log.Printf("%s environment variable is not set, using default", key)
		return defaultValue
	}
	return value
}

func initializeCache(cfg config.Config) {
	if cfg.RedisUrl == "" {
		log.Println("REDIS_URL not set, running without result cache")
		return
	}
	redis.Init(cfg.RedisUrl)
}

func runAPIServer(cfg config.Config) {
	// Initialize Gin router
	r := gin.Default()

	// Configure API routes
	api.SetupRouter(r, cfg)

	// Start the server
	r.Run(cfg.Port)
}
