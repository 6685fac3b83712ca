package geometry

import (
	"fmt"
	"math"
)

// Multipart aggregation with a total area below this threshold collapses the
// centroid to the origin instead of dividing by a near-zero area.
const degenerateArea = 1e-10

// PolygonCentroid computes the signed area and centroid of a simple polygon
// ring with the shoelace formula. The ring need not be explicitly closed;
// the edge from the last vertex back to the first is implied. Area sign
// follows winding order (positive is counter-clockwise).
//
// Panics if the ring has fewer than 3 vertices or a vertex without exactly
// 2 columns; that is a caller contract violation, not a recoverable error.
func PolygonCentroid(r Ring) (area, cx, cy float64) {
	if len(r) < 3 {
		panic(fmt.Sprintf("geometry: polygon ring needs at least 3 vertices, got %d", len(r)))
	}
	for _, v := range r {
		if len(v) != 2 {
			panic(fmt.Sprintf("geometry: polygon ring vertex has %d columns, want 2", len(v)))
		}
	}

	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := r[i][0]*r[j][1] - r[j][0]*r[i][1]
		area += cross
		cx += (r[i][0] + r[j][0]) * cross
		cy += (r[i][1] + r[j][1]) * cross
	}
	area *= 0.5
	cx /= 6 * area
	cy /= 6 * area
	return area, cx, cy
}

// MultiPolygonCentroid aggregates several rings into one area-weighted
// centroid. Signed areas are used as weights, so winding order matters.
// When the signed areas cancel to (nearly) nothing the centroid defensively
// collapses to (0, 0) rather than propagating Inf/NaN.
func MultiPolygonCentroid(rings []Ring) (total, cx, cy float64) {
	var sumX, sumY float64
	for _, r := range rings {
		area, x, y := PolygonCentroid(r)
		total += area
		sumX += area * x
		sumY += area * y
	}
	if math.Abs(total) < degenerateArea {
		return total, 0.0, 0.0
	}
	return total, sumX / total, sumY / total
}

// CalcCentroid reduces a geometry to rings and returns its centroid. A
// Polygon must reduce to exactly one ring and a MultiPolygon to more than
// one; a mismatch means the input is inconsistent and panics.
func CalcCentroid(g Geometry) (cx, cy float64, err error) {
	rings, err := ReduceTo2DRings(g)
	if err != nil {
		return 0, 0, err
	}
	switch g.Type {
	case TypePolygon:
		if len(rings) != 1 {
			panic(fmt.Sprintf("geometry: polygon reduced to %d rings, want 1", len(rings)))
		}
		_, cx, cy = PolygonCentroid(rings[0])
	case TypeMultiPolygon:
		if len(rings) <= 1 {
			panic(fmt.Sprintf("geometry: multipolygon reduced to %d rings, want more than 1", len(rings)))
		}
		_, cx, cy = MultiPolygonCentroid(rings)
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedGeometry, g.Type)
	}
	return cx, cy, nil
}
