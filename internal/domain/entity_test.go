package domain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func featureWith(g orb.Geometry, inner interface{}) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.Properties = geojson.Properties{"properties": inner}
	return f
}

func TestClassifyInlineProperties(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(featureWith(orb.Point{1, 1}, map[string]interface{}{"objectId": "Kugelmarker"}))
	fc.Append(featureWith(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, map[string]interface{}{"objectId": "Gebaeude"}))
	fc.Append(featureWith(orb.LineString{{0, 0}, {1, 1}}, map[string]interface{}{"objectId": "Strasse"}))

	entities := Classify(fc)
	if len(entities) != 3 {
		t.Fatalf("Expected 3 entities, got %d", len(entities))
	}
	for i, want := range []Kind{KindMarker, KindBuilding, KindStreet} {
		if entities[i].Kind != want {
			t.Errorf("Entity %d: expected kind %v, got %v", i, want, entities[i].Kind)
		}
	}
}

func TestClassifyJSONStringProperties(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(featureWith(orb.Point{1, 1}, `{"objectId": "Kugelmarker", "label": "M1"}`))

	entities := Classify(fc)
	if len(entities) != 1 {
		t.Fatalf("Expected 1 entity, got %d", len(entities))
	}
	if entities[0].Kind != KindMarker {
		t.Errorf("Expected marker, got %v", entities[0].Kind)
	}
	if entities[0].Props["label"] != "M1" {
		t.Errorf("Expected inner properties to be decoded, got %v", entities[0].Props)
	}
}

func TestClassifyGeometryMismatchDegrades(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	// A marker must be a point; a line string degrades to unknown.
	fc.Append(featureWith(orb.LineString{{0, 0}, {1, 1}}, map[string]interface{}{"objectId": "Kugelmarker"}))

	entities := Classify(fc)
	if entities[0].Kind != KindUnknown {
		t.Errorf("Expected unknown for mismatched geometry, got %v", entities[0].Kind)
	}
}

func TestClassifyMalformedInputNeverErrors(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(&geojson.Feature{})                                                       // no geometry
	fc.Append(geojson.NewFeature(orb.Point{1, 1}))                                      // no nested properties
	fc.Append(featureWith(orb.Point{1, 1}, `not json`))                                 // broken payload
	fc.Append(featureWith(orb.Point{1, 1}, 42))                                         // wrong type
	fc.Append(featureWith(orb.Point{1, 1}, map[string]interface{}{"objectId": 7}))      // non-string id
	fc.Append(featureWith(orb.Point{1, 1}, map[string]interface{}{"objectId": "Haus"})) // unknown id

	entities := Classify(fc)
	if len(entities) != len(fc.Features) {
		t.Fatalf("Expected one entity per feature, got %d of %d", len(entities), len(fc.Features))
	}
	for i, e := range entities {
		if e.Kind != KindUnknown {
			t.Errorf("Entity %d: expected unknown, got %v", i, e.Kind)
		}
		if e.Feature != fc.Features[i] {
			t.Errorf("Entity %d: expected original feature to be retained", i)
		}
	}
}

func TestClassifyNilCollection(t *testing.T) {
	if entities := Classify(nil); entities != nil {
		t.Errorf("Expected nil for nil input, got %v", entities)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindMarker:   "marker",
		KindBuilding: "building",
		KindStreet:   "street",
		KindUnknown:  "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind %d: expected %q, got %q", k, want, got)
		}
	}
}
