// osm-ingest converts buildings and highways from an OSM PBF extract into a
// GeoJSON feature collection the clustering pipeline can consume.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/qedus/osmpbf"
)

// Command line flags
var (
	osmFilePath   string
	outputFile    string
	withBuildings bool
	withHighways  bool
)

func init() {
	flag.StringVar(&osmFilePath, "osm-file", "", "Path to OSM PBF file")
	flag.StringVar(&outputFile, "output", "ingest.geojson", "Output GeoJSON file")
	flag.BoolVar(&withBuildings, "buildings", true, "Extract building ways as polygons")
	flag.BoolVar(&withHighways, "highways", true, "Extract highway ways as line strings")
}

// Ingestor accumulates node coordinates in the first pass and materializes
// way geometries in the second.
type Ingestor struct {
	Nodes    map[int64]orb.Point
	Features *geojson.FeatureCollection
}

func NewIngestor() *Ingestor {
	return &Ingestor{
		Nodes:    make(map[int64]orb.Point),
		Features: geojson.NewFeatureCollection(),
	}
}

func main() {
	flag.Parse()

	if osmFilePath == "" {
		log.Fatal("OSM file path must be specified")
	}
	if _, err := os.Stat(osmFilePath); os.IsNotExist(err) {
		log.Fatalf("OSM file not found: %s", osmFilePath)
	}

	ingestor := NewIngestor()
	if err := ingestor.ProcessOSMFile(osmFilePath); err != nil {
		log.Fatalf("Failed to process OSM file: %v", err)
	}

	data, err := json.Marshal(ingestor.Features)
	if err != nil {
		log.Fatalf("Failed to marshal feature collection: %v", err)
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", outputFile, err)
	}
	log.Printf("Wrote %d features to %s", len(ingestor.Features.Features), outputFile)
}

// ProcessOSMFile runs the two decoding passes over the PBF file.
func (p *Ingestor) ProcessOSMFile(path string) error {
	log.Printf("Processing OSM file: %s", path)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open OSM file: %w", err)
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	decoder.Start(runtime.GOMAXPROCS(-1))

	// First pass: collect all nodes
	log.Println("First pass: collecting nodes...")
	if err := p.collectNodes(decoder); err != nil {
		return err
	}

	// Rewind the file for the second pass
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind OSM file: %w", err)
	}

	decoder = osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	decoder.Start(runtime.GOMAXPROCS(-1))

	// Second pass: materialize way geometries
	log.Println("Second pass: processing ways...")
	return p.processWays(decoder)
}

// collectNodes collects all nodes from the OSM file
func (p *Ingestor) collectNodes(decoder *osmpbf.Decoder) error {
	var nodeCount int

	for {
		obj, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding OSM data: %w", err)
		}

		if node, ok := obj.(*osmpbf.Node); ok {
			p.Nodes[node.ID] = orb.Point{node.Lon, node.Lat}
			nodeCount++

			if nodeCount%1000000 == 0 {
				log.Printf("Processed %d nodes...", nodeCount)
			}
		}
	}

	log.Printf("Collected %d nodes", nodeCount)
	return nil
}

// processWays turns building ways into polygon features and highway ways
// into line string features.
func (p *Ingestor) processWays(decoder *osmpbf.Decoder) error {
	var wayCount int

	for {
		obj, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding OSM data: %w", err)
		}

		way, ok := obj.(*osmpbf.Way)
		if !ok {
			continue
		}

		var f *geojson.Feature
		if tag, isBuilding := way.Tags["building"]; withBuildings && isBuilding && tag != "no" {
			f = p.buildingFeature(way)
		} else if _, isHighway := way.Tags["highway"]; withHighways && isHighway {
			f = p.highwayFeature(way)
		}
		if f == nil {
			continue
		}

		p.Features.Append(f)
		wayCount++

		if wayCount%10000 == 0 {
			log.Printf("Processed %d ways...", wayCount)
		}
	}

	log.Printf("Processed %d ways", wayCount)
	return nil
}

// buildingFeature builds a polygon feature from a building way
func (p *Ingestor) buildingFeature(way *osmpbf.Way) *geojson.Feature {
	points := p.resolveNodes(way)
	if len(points) < 3 {
		return nil
	}

	// Ensure the polygon is closed
	if points[0] != points[len(points)-1] {
		points = append(points, points[0])
	}

	f := geojson.NewFeature(orb.Polygon{points})
	f.ID = way.ID
	f.Properties = wayProperties(way, "building")
	return f
}

// highwayFeature builds a line string feature from a highway way
func (p *Ingestor) highwayFeature(way *osmpbf.Way) *geojson.Feature {
	points := p.resolveNodes(way)
	if len(points) < 2 {
		return nil
	}

	f := geojson.NewFeature(orb.LineString(points))
	f.ID = way.ID
	f.Properties = wayProperties(way, "highway")
	return f
}

// resolveNodes looks up the way's node references. Nodes missing from the
// extract are skipped.
func (p *Ingestor) resolveNodes(way *osmpbf.Way) []orb.Point {
	var points []orb.Point
	for _, nodeID := range way.NodeIDs {
		if point, exists := p.Nodes[nodeID]; exists {
			points = append(points, point)
		}
	}
	return points
}

func wayProperties(way *osmpbf.Way, kind string) geojson.Properties {
	props := geojson.Properties{
		"osm_kind": kind,
		kind:       way.Tags[kind],
	}
	if name, ok := way.Tags["name"]; ok {
		props["name"] = name
	}
	return props
}
