package concessions

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// TestEncodeRing_RejectsShortRing verifies that rings with fewer than 3
// points fail with an InvalidGeometryError before any SQL is involved.
func TestEncodeRing_RejectsShortRing(t *testing.T) {
	for _, ring := range []Ring{nil, {}, {{0, 0}}, {{0, 0}, {1, 1}}} {
		_, err := EncodeRing(ring)
		var ig *InvalidGeometryError
		if !errors.As(err, &ig) {
			t.Errorf("ring of %d points: expected InvalidGeometryError, got %v", len(ring), err)
		}
	}
}

// TestEncodeRing_RejectsNonPairs verifies that every point must be exactly a
// [longitude, latitude] pair.
func TestEncodeRing_RejectsNonPairs(t *testing.T) {
	_, err := EncodeRing(Ring{{0, 0}, {1}, {2, 2}})
	var ig *InvalidGeometryError
	if !errors.As(err, &ig) {
		t.Fatalf("expected InvalidGeometryError, got %v", err)
	}

	_, err = EncodeRing(Ring{{0, 0}, {1, 1, 1}, {2, 2}})
	if !errors.As(err, &ig) {
		t.Fatalf("expected InvalidGeometryError for triple, got %v", err)
	}
}

// TestEncodeRing_RejectsNonFinite verifies NaN and infinite coordinates are
// rejected.
func TestEncodeRing_RejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := EncodeRing(Ring{{0, 0}, {bad, 1}, {2, 2}})
		var ig *InvalidGeometryError
		if !errors.As(err, &ig) {
			t.Errorf("coordinate %v: expected InvalidGeometryError, got %v", bad, err)
		}
	}
}

// TestEncodeDecode_RoundTrip verifies that for any valid ring, decoding the
// encoded geometry yields the ring coordinate-for-coordinate, order
// preserved — including rings the caller did not close, which are passed
// through unmodified.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	rings := []Ring{
		{{0, 0}, {0, 2}, {2, 2}, {2, 0}},                  // open: no auto-close
		{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}},          // closed
		{{-2.30, 5.10}, {-2.30, 5.16}, {-2.22, 5.16}},     // triangle
		{{-0.5, 6.123456}, {-0.4, 6.2}, {-0.3, 6.123456}}, // fractional lat/lng
	}

	for _, ring := range rings {
		doc, err := EncodeRing(ring)
		if err != nil {
			t.Fatalf("encode %v: %v", ring, err)
		}

		g, got, err := DecodeGeometry(doc)
		if err != nil {
			t.Fatalf("decode %q: %v", doc, err)
		}
		if g == nil || g.Type != "Polygon" {
			t.Fatalf("expected Polygon shape, got %+v", g)
		}
		if !reflect.DeepEqual(got, ring) {
			t.Errorf("round trip mismatch: sent %v, got back %v", ring, got)
		}
	}
}

// TestDecodeGeometry_Empty verifies that a missing stored geometry decodes to
// nothing rather than an error.
func TestDecodeGeometry_Empty(t *testing.T) {
	g, ring, err := DecodeGeometry("")
	if err != nil || g != nil || ring != nil {
		t.Errorf("expected all-nil for empty input, got %v, %v, %v", g, ring, err)
	}
}

// TestDecodeGeometry_Malformed verifies invalid stored JSON is surfaced.
func TestDecodeGeometry_Malformed(t *testing.T) {
	if _, _, err := DecodeGeometry("{not json"); err == nil {
		t.Error("expected an error for malformed stored geometry")
	}
}
