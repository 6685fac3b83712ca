package geometry

import (
	"testing"

	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonCentroidUnitSquare(t *testing.T) {
	ring := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	area, cx, cy := PolygonCentroid(ring)
	assert.InDelta(t, 1.0, area, 1e-12)
	assert.InDelta(t, 0.5, cx, 1e-12)
	assert.InDelta(t, 0.5, cy, 1e-12)
}

func TestPolygonCentroidWindingOrder(t *testing.T) {
	ccw := Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	cw := Ring{{0, 2}, {2, 2}, {2, 0}, {0, 0}}

	areaCCW, cxCCW, cyCCW := PolygonCentroid(ccw)
	areaCW, cxCW, cyCW := PolygonCentroid(cw)

	assert.InDelta(t, 4.0, areaCCW, 1e-12)
	assert.InDelta(t, -4.0, areaCW, 1e-12)
	assert.InDelta(t, cxCCW, cxCW, 1e-12)
	assert.InDelta(t, cyCCW, cyCW, 1e-12)
}

func TestPolygonCentroidTriangle(t *testing.T) {
	ring := Ring{{0, 0}, {3, 0}, {0, 3}}

	area, cx, cy := PolygonCentroid(ring)
	assert.InDelta(t, 4.5, area, 1e-12)
	assert.InDelta(t, 1.0, cx, 1e-12)
	assert.InDelta(t, 1.0, cy, 1e-12)
}

func TestPolygonCentroidClosedRing(t *testing.T) {
	// Explicitly closed rings add a zero-length edge that contributes nothing.
	open := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	closed := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}

	areaOpen, cxOpen, cyOpen := PolygonCentroid(open)
	areaClosed, cxClosed, cyClosed := PolygonCentroid(closed)

	assert.InDelta(t, areaOpen, areaClosed, 1e-12)
	assert.InDelta(t, cxOpen, cxClosed, 1e-12)
	assert.InDelta(t, cyOpen, cyClosed, 1e-12)
}

func TestPolygonCentroidPreconditions(t *testing.T) {
	assert.Panics(t, func() {
		PolygonCentroid(Ring{{0, 0}, {1, 1}})
	})
	assert.Panics(t, func() {
		PolygonCentroid(Ring{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
	})
}

func TestPolygonCentroidMatchesOrb(t *testing.T) {
	testCases := []struct {
		name string
		ring Ring
	}{
		{"square", Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{"offset rectangle", Ring{{10, -4}, {16, -4}, {16, 1}, {10, 1}, {10, -4}}},
		{"pentagon", Ring{{0, 0}, {4, 0}, {5, 3}, {2, 5}, {-1, 3}, {0, 0}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			area, cx, cy := PolygonCentroid(tc.ring)

			orbCentroid, orbArea := planar.CentroidArea(tc.ring.Orb())
			assert.InDelta(t, orbArea, area, 1e-9)
			assert.InDelta(t, orbCentroid[0], cx, 1e-9)
			assert.InDelta(t, orbCentroid[1], cy, 1e-9)
		})
	}
}

func TestMultiPolygonCentroidDuplicate(t *testing.T) {
	ring := Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}}

	single, cx1, cy1 := PolygonCentroid(ring)
	total, cx2, cy2 := MultiPolygonCentroid([]Ring{ring, ring})

	assert.InDelta(t, 2*single, total, 1e-12)
	assert.InDelta(t, cx1, cx2, 1e-12)
	assert.InDelta(t, cy1, cy2, 1e-12)
}

func TestMultiPolygonCentroidWeighted(t *testing.T) {
	// Unit square at origin (area 1) and a 2x2 square centered at (5, 5)
	// (area 4). The centroid lands 4/5 of the way to the bigger square.
	small := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	big := Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}}

	total, cx, cy := MultiPolygonCentroid([]Ring{small, big})
	assert.InDelta(t, 5.0, total, 1e-12)
	assert.InDelta(t, (0.5+4*5.0)/5.0, cx, 1e-12)
	assert.InDelta(t, (0.5+4*5.0)/5.0, cy, 1e-12)
}

func TestMultiPolygonCentroidDegenerateArea(t *testing.T) {
	ccw := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	cw := Ring{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	total, cx, cy := MultiPolygonCentroid([]Ring{ccw, cw})
	assert.InDelta(t, 0.0, total, 1e-10)
	assert.Equal(t, 0.0, cx)
	assert.Equal(t, 0.0, cy)
}

func TestCalcCentroidPolygon(t *testing.T) {
	g := NewPolygon(Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}})

	cx, cy, err := CalcCentroid(g)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cx, 1e-12)
	assert.InDelta(t, 0.5, cy, 1e-12)
}

func TestCalcCentroidMultiPolygon(t *testing.T) {
	g := NewMultiPolygon(
		[]Ring{{{0, 0}, {2, 0}, {2, 2}, {0, 2}}},
		[]Ring{{{10, 10}, {12, 10}, {12, 12}, {10, 12}}},
	)

	cx, cy, err := CalcCentroid(g)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, cx, 1e-12)
	assert.InDelta(t, 6.0, cy, 1e-12)
}

func TestCalcCentroidRingCountMismatch(t *testing.T) {
	twoRings := NewPolygon(
		Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Ring{{2, 2}, {3, 2}, {3, 3}, {2, 3}},
	)
	assert.Panics(t, func() {
		_, _, _ = CalcCentroid(twoRings)
	})

	oneRing := NewMultiPolygon([]Ring{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}})
	assert.Panics(t, func() {
		_, _, _ = CalcCentroid(oneRing)
	})
}

func TestCalcCentroidUnsupportedType(t *testing.T) {
	g := Geometry{Type: "LineString", Coordinates: []byte(`[[0,0],[1,1]]`)}

	_, _, err := CalcCentroid(g)
	assert.ErrorIs(t, err, ErrUnsupportedGeometry)
}
