package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"geocluster/internal/config"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port:         ":8080",
		Radius:       0,
		RegionMinLng: -180, RegionMinLat: -90,
		RegionMaxLng: 180, RegionMaxLat: 90,
	}
	r := gin.New()
	SetupMainHandlers(r.Group(""), cfg)
	SetupClusterHandlers(r.Group("/api"), cfg)
	return r
}

const twoPointFC = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [10, 50]}, "properties": {}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [10.5, 50.5]}, "properties": {}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [100, 20]}, "properties": {}}
	]
}`

func TestHandleClusterMergesNearbyPoints(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/cluster?radius=1", strings.NewReader(twoPointFC))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		ID         string       `json:"id"`
		Count      int          `json:"count"`
		Rectangles [][4]float64 `json:"rectangles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// The two nearby points merge, the distant one stays alone.
	if result.Count != 2 {
		t.Errorf("Expected 2 clusters, got %d", result.Count)
	}
	if len(result.Rectangles) != result.Count {
		t.Errorf("Expected %d rectangles, got %d", result.Count, len(result.Rectangles))
	}
	if result.ID == "" {
		t.Error("Expected a job id in the response")
	}
}

func TestHandleClusterParallelMode(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/cluster?radius=1&mode=parallel&workers=2&chunk=1", strings.NewReader(twoPointFC))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("Expected 2 clusters in parallel mode, got %d", result.Count)
	}
}

func TestHandleClusterRejectsBadBody(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/cluster", strings.NewReader(`not geojson at all`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a non-FeatureCollection body, got %d", w.Code)
	}
}

func TestHandleHulls(t *testing.T) {
	r := testRouter()

	body := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0,0],[4,0],[2,3]]}, "properties": {}}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/hulls", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("Expected a FeatureCollection, got %q", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Errorf("Expected 1 hull feature, got %d", len(fc.Features))
	}
}

func TestHandleResultWithoutCache(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/results/some-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 when the cache is disabled, got %d", w.Code)
	}
}

func TestMainHandlerEchoesConfig(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["port"] != ":8080" {
		t.Errorf("Expected port to be echoed, got %v", body["port"])
	}
}
