package concessions

import (
	"encoding/json"
	"fmt"
	"math"
)

// Ring is an ordered sequence of [longitude, latitude] pairs describing a
// single polygon boundary. No holes, no multi-polygon support. Rings are
// passed to PostGIS exactly as supplied — no auto-closing; closure and
// self-intersection are the store's to validate.
type Ring [][]float64

// PolygonGeoJSON is the structured shape returned on reads; matches the
// output of ST_AsGeoJSON.
type PolygonGeoJSON struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// EncodeRing validates a ring and returns the GeoJSON polygon document fed to
// ST_GeomFromGeoJSON. Centroids are never encoded here: writes derive them in
// SQL with ST_Centroid over the same geometry expression, so geometry and
// centroid cannot diverge.
func EncodeRing(ring Ring) (string, error) {
	if len(ring) < 3 {
		return "", &InvalidGeometryError{
			Reason: fmt.Sprintf("polygon ring needs at least 3 points, got %d", len(ring)),
		}
	}
	for i, pt := range ring {
		if len(pt) != 2 {
			return "", &InvalidGeometryError{
				Reason: fmt.Sprintf("point %d must be a [longitude, latitude] pair", i),
			}
		}
		for _, c := range pt {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return "", &InvalidGeometryError{
					Reason: fmt.Sprintf("point %d has a non-finite coordinate", i),
				}
			}
		}
	}

	doc := PolygonGeoJSON{Type: "Polygon", Coordinates: [][][]float64{ring}}
	buf, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal geometry: %w", err)
	}
	return string(buf), nil
}

// DecodeGeometry parses ST_AsGeoJSON output back into the structured shape
// and its outer ring.
func DecodeGeometry(raw string) (*PolygonGeoJSON, Ring, error) {
	if raw == "" {
		return nil, nil, nil
	}
	var g PolygonGeoJSON
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, nil, fmt.Errorf("decode stored geometry: %w", err)
	}
	var ring Ring
	if len(g.Coordinates) > 0 {
		ring = Ring(g.Coordinates[0])
	}
	return &g, ring, nil
}
