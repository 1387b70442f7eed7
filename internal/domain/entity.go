// Package domain classifies GeoJSON features into domain entities based on
// the objectId carried in their nested properties payload. Anything that
// fails a classification step degrades to Unknown, never to an error.
package domain

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Kind labels a classified feature.
type Kind int

const (
	KindUnknown Kind = iota
	KindMarker
	KindBuilding
	KindStreet
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindBuilding:
		return "building"
	case KindStreet:
		return "street"
	default:
		return "unknown"
	}
}

// Object ids used by the upstream capture tooling.
const (
	objectIDMarker   = "Kugelmarker"
	objectIDBuilding = "Gebaeude"
	objectIDStreet   = "Strasse"
)

// Entity is a classified feature. For Unknown entities only Feature is
// guaranteed to be set.
type Entity struct {
	Kind     Kind
	ID       string
	ObjectID string
	Geometry orb.Geometry
	Props    map[string]interface{}
	Feature  *geojson.Feature
}

// Classify maps every feature of the collection to an Entity. The feature's
// outer properties carry a "properties" member that is either an inline
// JSON object or a JSON string that itself parses to one; its objectId
// string plus the geometry type decide the kind. Markers must be points,
// buildings polygons, streets line strings.
func Classify(fc *geojson.FeatureCollection) []Entity {
	if fc == nil {
		return nil
	}
	entities := make([]Entity, 0, len(fc.Features))
	for _, f := range fc.Features {
		entities = append(entities, classifyFeature(f))
	}
	return entities
}

func classifyFeature(f *geojson.Feature) Entity {
	unknown := Entity{Kind: KindUnknown, Feature: f}
	if f == nil || f.Geometry == nil {
		return unknown
	}

	inner, ok := innerProperties(f.Properties)
	if !ok {
		return unknown
	}
	objectID, ok := inner["objectId"].(string)
	if !ok {
		return unknown
	}

	entity := Entity{
		ID:       featureID(f),
		ObjectID: objectID,
		Geometry: f.Geometry,
		Props:    inner,
		Feature:  f,
	}

	switch objectID {
	case objectIDMarker:
		if _, ok := f.Geometry.(orb.Point); !ok {
			return unknown
		}
		entity.Kind = KindMarker
	case objectIDBuilding:
		if _, ok := f.Geometry.(orb.Polygon); !ok {
			return unknown
		}
		entity.Kind = KindBuilding
	case objectIDStreet:
		if _, ok := f.Geometry.(orb.LineString); !ok {
			return unknown
		}
		entity.Kind = KindStreet
	default:
		return unknown
	}
	return entity
}

// innerProperties digs out the nested properties map. Some producers embed
// it as a JSON-encoded string rather than an object.
func innerProperties(outer geojson.Properties) (map[string]interface{}, bool) {
	raw, ok := outer["properties"]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case map[string]interface{}:
		return v, true
	case string:
		var inner map[string]interface{}
		if err := json.Unmarshal([]byte(v), &inner); err != nil {
			return nil, false
		}
		return inner, true
	default:
		return nil, false
	}
}

func featureID(f *geojson.Feature) string {
	if f.ID == nil {
		return ""
	}
	if s, ok := f.ID.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", f.ID)
}
