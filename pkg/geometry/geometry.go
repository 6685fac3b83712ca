// Package geometry reduces GeoJSON-style Polygon and MultiPolygon coordinate
// arrays to flat 2D rings and computes signed areas and area-weighted
// centroids with the shoelace formula.
package geometry

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Geometry type discriminators.
const (
	TypePolygon      = "Polygon"
	TypeMultiPolygon = "MultiPolygon"
)

// Ring is one closed polygon boundary as vertices x columns. Rings produced
// by ReduceTo2DRings always have exactly 2 columns per vertex.
type Ring [][]float64

// Orb converts a 2D ring to an orb.Ring for interop with paulmach/orb.
func (r Ring) Orb() orb.Ring {
	out := make(orb.Ring, len(r))
	for i, v := range r {
		out[i] = orb.Point{v[0], v[1]}
	}
	return out
}

// Geometry is a tagged Polygon/MultiPolygon variant constructed at the I/O
// boundary. Coordinates stay raw until reduction so that 3D positions and
// provider nesting quirks survive decoding intact.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// NewPolygon builds a Polygon geometry from its rings.
func NewPolygon(rings ...Ring) Geometry {
	raw, err := json.Marshal(rings)
	if err != nil {
		panic(fmt.Sprintf("geometry: marshal polygon rings: %v", err))
	}
	return Geometry{Type: TypePolygon, Coordinates: raw}
}

// NewMultiPolygon builds a MultiPolygon geometry from a list of polygons,
// each given as its list of rings.
func NewMultiPolygon(polygons ...[]Ring) Geometry {
	raw, err := json.Marshal(polygons)
	if err != nil {
		panic(fmt.Sprintf("geometry: marshal multipolygon rings: %v", err))
	}
	return Geometry{Type: TypeMultiPolygon, Coordinates: raw}
}

// ReduceTo2DRings flattens a Polygon or MultiPolygon geometry into a list of
// 2D rings. 3D rings are accepted only when their z column sums to exactly
// zero; the z column is then dropped. MultiPolygon entries may nest a ring
// one level deeper than the GeoJSON convention (a decode quirk of some
// providers); such a wrapper must hold exactly one ring, anything else is a
// caller contract violation and panics.
func ReduceTo2DRings(g Geometry) ([]Ring, error) {
	switch g.Type {
	case TypePolygon:
		var entries []json.RawMessage
		if err := json.Unmarshal(g.Coordinates, &entries); err != nil {
			return nil, fmt.Errorf("geometry: decode polygon coordinates: %w", err)
		}
		rings := make([]Ring, 0, len(entries))
		for _, entry := range entries {
			ring, err := reduceRing(entry)
			if err != nil {
				return nil, err
			}
			rings = append(rings, ring)
		}
		return rings, nil

	case TypeMultiPolygon:
		var polygons []json.RawMessage
		if err := json.Unmarshal(g.Coordinates, &polygons); err != nil {
			return nil, fmt.Errorf("geometry: decode multipolygon coordinates: %w", err)
		}
		var rings []Ring
		for _, polygon := range polygons {
			var entries []json.RawMessage
			if err := json.Unmarshal(polygon, &entries); err != nil {
				return nil, fmt.Errorf("geometry: decode multipolygon entry: %w", err)
			}
			// An entry may hold a single ring or several rings for one
			// feature (disjoint sub-polygons observed in real data).
			for _, entry := range entries {
				ring, err := reduceRing(entry)
				if err != nil {
					return nil, err
				}
				rings = append(rings, ring)
			}
		}
		return rings, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGeometry, g.Type)
	}
}

// reduceRing normalizes one raw ring entry to a 2D ring.
func reduceRing(raw json.RawMessage) (Ring, error) {
	var verts [][]float64
	if err := json.Unmarshal(raw, &verts); err != nil {
		// Tolerant variant: the ring is wrapped one level deeper.
		var nested [][][]float64
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("geometry: decode ring: %w", err)
		}
		if len(nested) != 1 {
			panic(fmt.Sprintf("geometry: singleton ring dimension holds %d elements", len(nested)))
		}
		verts = nested[0]
	}
	return dropZ(verts)
}

// dropZ verifies and strips the z column of a 3D ring. 2D rings pass
// through unchanged.
func dropZ(verts [][]float64) (Ring, error) {
	if len(verts) == 0 {
		// Too short for any centroid work; PolygonCentroid rejects it.
		return Ring(verts), nil
	}
	cols := len(verts[0])
	for _, v := range verts[1:] {
		if len(v) != cols {
			return nil, fmt.Errorf("geometry: ragged ring: vertex has %d columns, want %d", len(v), cols)
		}
	}
	switch cols {
	case 2:
		return Ring(verts), nil
	case 3:
		zsum := 0.0
		for _, v := range verts {
			zsum += v[2]
		}
		if zsum != 0 {
			return nil, ErrZNotZero
		}
		ring := make(Ring, len(verts))
		for i, v := range verts {
			ring[i] = []float64{v[0], v[1]}
		}
		return ring, nil
	default:
		return nil, fmt.Errorf("geometry: ring vertices have %d columns, want 2 or 3", cols)
	}
}
