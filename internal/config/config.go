package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"geocluster/internal/geometry"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	RedisUrl string `mapstructure:"REDIS_URL"`

	// Clustering defaults, overridable per request.
	Radius    float64 `mapstructure:"CLUSTER_RADIUS"`
	Workers   int     `mapstructure:"CLUSTER_WORKERS"`
	ChunkSize int     `mapstructure:"CLUSTER_CHUNK_SIZE"`

	// Region of interest bounds, WGS84 degrees.
	RegionMinLng float64 `mapstructure:"REGION_MIN_LNG"`
	RegionMinLat float64 `mapstructure:"REGION_MIN_LAT"`
	RegionMaxLng float64 `mapstructure:"REGION_MAX_LNG"`
	RegionMaxLat float64 `mapstructure:"REGION_MAX_LAT"`
}

// Region returns the configured region of interest as a rectangle.
func (c Config) Region() geometry.Rect {
	return geometry.NewRect(c.RegionMinLng, c.RegionMinLat, c.RegionMaxLng, c.RegionMaxLat)
}

func LoadConfig() (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Set default values
	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("CLUSTER_RADIUS", 4.0)
	viper.SetDefault("CLUSTER_WORKERS", 0)
	viper.SetDefault("CLUSTER_CHUNK_SIZE", 256)

	// Germany bounding box
	viper.SetDefault("REGION_MIN_LNG", 5.866211)
	viper.SetDefault("REGION_MIN_LAT", 47.270111)
	viper.SetDefault("REGION_MAX_LNG", 15.013611)
	viper.SetDefault("REGION_MAX_LAT", 55.058333)

	// Load environment file
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".") // Look in the project root directory

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Map the values to the Config struct
	err = viper.Unmarshal(&c)
	return
}
