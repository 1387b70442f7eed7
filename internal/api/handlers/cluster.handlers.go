package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"geocluster/internal/clusterer"
	"geocluster/internal/config"
	"geocluster/internal/footprint"
	"geocluster/internal/geometry"
	"geocluster/internal/redis"
)

// clusterResult is the response of a clustering run and the payload cached
// for later replay.
type clusterResult struct {
	ID         string       `json:"id"`
	Count      int          `json:"count"`
	Rectangles [][4]float64 `json:"rectangles"`
}

// SetupClusterHandlers registers the clustering endpoints
func SetupClusterHandlers(router *gin.RouterGroup, cfg config.Config) {
	router.POST("/cluster", func(c *gin.Context) { HandleCluster(c, cfg) })
	router.POST("/hulls", func(c *gin.Context) { HandleHulls(c, cfg) })
	router.GET("/results/:id", HandleResult)
}

// HandleCluster runs the full pipeline on the posted feature collection:
// footprints, expanded rectangles, overlap clustering, merged components.
// Query parameters radius, workers and chunk override the configured
// defaults; mode=parallel switches to concurrent overlap discovery.
func HandleCluster(c *gin.Context, cfg config.Config) {
	fc, ok := parseFeatureCollection(c)
	if !ok {
		return
	}

	radius := queryFloat(c, "radius", cfg.Radius)
	workers := queryInt(c, "workers", cfg.Workers)
	chunkSize := queryInt(c, "chunk", cfg.ChunkSize)

	rects := footprint.NewExtractor(cfg.Region()).CollectRects(fc, radius)

	var merged []geometry.Rect
	if c.Query("mode") == "parallel" {
		merged = clusterer.ClusterParallel(rects, workers, chunkSize)
	} else {
		merged = clusterer.Cluster(rects)
	}

	result := clusterResult{
		ID:         uuid.NewString(),
		Count:      len(merged),
		Rectangles: make([][4]float64, len(merged)),
	}
	for i, r := range merged {
		result.Rectangles[i] = r.Envelope()
	}

	if redis.Enabled() {
		payload, err := json.Marshal(result)
		if err == nil {
			err = redis.StoreResult(result.ID, payload)
		}
		if err != nil {
			// The caller still gets the result, only the replay is lost.
			log.Printf("Failed to cache result %s: %v", result.ID, err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// HandleHulls returns the deduplicated footprint polygons of the posted
// feature collection as a GeoJSON feature collection.
func HandleHulls(c *gin.Context, cfg config.Config) {
	fc, ok := parseFeatureCollection(c)
	if !ok {
		return
	}

	hulls := footprint.NewExtractor(cfg.Region()).CollectHulls(fc)

	out := geojson.NewFeatureCollection()
	for _, h := range hulls {
		out.Append(geojson.NewFeature(h))
	}
	c.JSON(http.StatusOK, out)
}

// HandleResult replays a cached clustering result by job id.
func HandleResult(c *gin.Context) {
	if !redis.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "result cache disabled"})
		return
	}

	payload, err := redis.LoadResult(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(payload))
}

func parseFeatureCollection(c *gin.Context) (*geojson.FeatureCollection, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return nil, false
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is not a GeoJSON feature collection"})
		return nil, false
	}
	return fc, true
}

func queryFloat(c *gin.Context, name string, fallback float64) float64 {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
