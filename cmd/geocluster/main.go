package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"geocluster/internal/clusterer"
	"geocluster/internal/concat"
	"geocluster/internal/domain"
	"geocluster/internal/footprint"
	"geocluster/internal/geometry"
	"geocluster/internal/picker"
	"geocluster/internal/scale"

	"github.com/paulmach/orb/geojson"
)

// Command line flags
var (
	runMode     int
	inputFile   string
	outputFile  string
	radius      float64
	workers     int
	chunkSize   int
	parallel    bool
	regionSpec  string
	gridCells   float64
	maxGap      float64
	scaleFactor float64
	kindsSpec   string
)

// RunMode represents different operation modes
const (
	RunModeCluster = 1
	RunModeHulls   = 2
	RunModeGrid    = 3
	RunModeConcat  = 4
	RunModeScale   = 5
	RunModePick    = 6
)

func init() {
	// Define command line flags
	flag.IntVar(&runMode, "mode", 0, "Run mode: 1 = Cluster rectangles, 2 = Footprint hulls, 3 = Cover grid, 4 = Concat line strings, 5 = Scale polygons, 6 = Pick by region")
	flag.StringVar(&inputFile, "input", "", "Input GeoJSON feature collection")
	flag.StringVar(&outputFile, "output", "output.geojson", "Output GeoJSON file")
	flag.Float64Var(&radius, "radius", 0, "Expansion radius in degrees, 0 uses the default padding")
	flag.IntVar(&workers, "workers", 0, "Worker count for parallel clustering, 0 = one per CPU")
	flag.IntVar(&chunkSize, "chunk", 0, "Chunk size for parallel clustering, 0 picks a default")
	flag.BoolVar(&parallel, "parallel", false, "Use concurrent overlap discovery")
	flag.StringVar(&regionSpec, "region", "5.866211,47.270111,15.013611,55.058333", "Region of interest as minLng,minLat,maxLng,maxLat (default: Germany)")
	flag.Float64Var(&gridCells, "grid-cells", 1000, "Approximate cell count for grid mode")
	flag.Float64Var(&maxGap, "max-gap", 10.0, "Maximum endpoint gap in meters for concat mode")
	flag.Float64Var(&scaleFactor, "scale-factor", 1.2, "Scale factor for scale mode")
	flag.StringVar(&kindsSpec, "kinds", "", "Comma-separated entity kinds to keep (marker,building,street), empty keeps all")
}

func main() {
	// Parse command line flags
	flag.Parse()

	// Validate run mode
	if runMode == 0 {
		log.Fatal("Run mode must be specified: 1 = Cluster, 2 = Hulls, 3 = Grid, 4 = Concat, 5 = Scale, 6 = Pick")
	}
	if inputFile == "" {
		log.Fatal("Input file must be specified")
	}

	region, err := parseRegion(regionSpec)
	if err != nil {
		log.Fatalf("Invalid region: %v", err)
	}

	fc, err := readFeatureCollection(inputFile)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	fc = filterKinds(fc, kindsSpec)

	// Execute the appropriate function based on run mode
	switch runMode {
	case RunModeCluster:
		runClusterMode(fc, region)
	case RunModeHulls:
		runHullsMode(fc, region)
	case RunModeGrid:
		runGridMode(fc, region)
	case RunModeConcat:
		writeFeatureCollection(concat.MergeLineStrings(fc, maxGap))
	case RunModeScale:
		writeFeatureCollection(scale.FeatureCollection(fc, scaleFactor))
	case RunModePick:
		writeFeatureCollection(picker.ByBound(fc, region))
	default:
		log.Fatalf("Invalid run mode: %d", runMode)
	}
}

// runClusterMode merges overlapping expanded footprints into rectangles
func runClusterMode(fc *geojson.FeatureCollection, region geometry.Rect) {
	merged := clusterRects(fc, region)
	log.Printf("Clustered into %d rectangles", len(merged))
	writeFeatureCollection(rectCollection(merged))
}

// runHullsMode exports deduplicated footprint polygons
func runHullsMode(fc *geojson.FeatureCollection, region geometry.Rect) {
	hulls := footprint.NewExtractor(region).CollectHulls(fc)
	log.Printf("Extracted %d footprint hulls", len(hulls))

	out := geojson.NewFeatureCollection()
	for _, h := range hulls {
		out.Append(geojson.NewFeature(h))
	}
	writeFeatureCollection(out)
}

// runGridMode covers the merged rectangles with square grid cells
func runGridMode(fc *geojson.FeatureCollection, region geometry.Rect) {
	merged := clusterRects(fc, region)
	cells := clusterer.CoverGrid(merged, gridCells)
	log.Printf("Covered %d rectangles with %d grid cells", len(merged), len(cells))
	writeFeatureCollection(rectCollection(cells))
}

func clusterRects(fc *geojson.FeatureCollection, region geometry.Rect) []geometry.Rect {
	rects := footprint.NewExtractor(region).CollectRects(fc, radius)
	log.Printf("Extracted %d expanded footprint rectangles", len(rects))

	if parallel {
		return clusterer.ClusterParallel(rects, workers, chunkSize)
	}
	return clusterer.Cluster(rects)
}

// filterKinds keeps only the features classified as one of the requested
// entity kinds. An empty spec keeps everything.
func filterKinds(fc *geojson.FeatureCollection, spec string) *geojson.FeatureCollection {
	if spec == "" {
		return fc
	}
	wanted := make(map[string]bool)
	for _, k := range strings.Split(spec, ",") {
		wanted[strings.TrimSpace(k)] = true
	}

	out := geojson.NewFeatureCollection()
	for _, e := range domain.Classify(fc) {
		if wanted[e.Kind.String()] {
			out.Append(e.Feature)
		}
	}
	log.Printf("Kept %d of %d features after kind filter", len(out.Features), len(fc.Features))
	return out
}

func parseRegion(spec string) (geometry.Rect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	var vals [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("value %q: %w", part, err)
		}
		vals[i] = v
	}
	return geometry.NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fc, nil
}

func rectCollection(rects []geometry.Rect) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, r := range rects {
		f := geojson.NewFeature(r.Bound().ToPolygon())
		f.Properties = geojson.Properties{
			"width":  r.Width(),
			"height": r.Height(),
		}
		out.Append(f)
	}
	return out
}

func writeFeatureCollection(fc *geojson.FeatureCollection) {
	data, err := json.Marshal(fc)
	if err != nil {
		log.Fatalf("Failed to marshal output: %v", err)
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", outputFile, err)
	}
	log.Printf("Wrote %s", outputFile)
}
