package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ISN93 / Lambert 1993 parameters (EPSG:3057).
const (
	lccLon0   = -19.0
	lccLat0   = 65.0
	lccLat1   = 64.25
	lccLat2   = 65.75
	lccFalseE = 500000.0
	lccFalseN = 500000.0
)

// forwardLCC is the ellipsoidal forward Lambert Conformal Conic projection,
// used to verify the inverse by round trip.
func forwardLCC(lat, lon, lon0, lat0, lat1, lat2, falseEasting, falseNorthing float64) (x, y float64) {
	f := 1 / lccInvFlattening
	e2 := 2*f - f*f
	e := math.Sqrt(e2)

	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180
	lam0 := lon0 * math.Pi / 180
	phi0 := lat0 * math.Pi / 180
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180

	m1 := lccM(phi1, e2)
	m2 := lccM(phi2, e2)
	t0 := lccT(phi0, e)
	t1 := lccT(phi1, e)
	t2 := lccT(phi2, e)

	n := math.Log(m1/m2) / math.Log(t1/t2)
	bigF := m1 / (n * math.Pow(t1, n))
	rho0 := lccSemiMajor * bigF * math.Pow(t0, n)

	rho := lccSemiMajor * bigF * math.Pow(lccT(phi, e), n)
	theta := n * (lam - lam0)

	x = falseEasting + rho*math.Sin(theta)
	y = falseNorthing + rho0 - rho*math.Cos(theta)
	return x, y
}

func TestLCCOrigin(t *testing.T) {
	// x'=0, y'=0 sits at rho = rho0, which is the projection origin.
	lat, lon := LCCPointToWGS84(lccFalseE, lccFalseN,
		lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)

	assert.InDelta(t, lccLat0, lat, 1e-9)
	assert.InDelta(t, lccLon0, lon, 1e-9)
}

func TestLCCRoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lon float64
	}{
		{"Reykjavik", 64.1466, -21.9426},
		{"Akureyri", 65.6885, -18.1262},
		{"Hofn", 64.2539, -15.2082},
		{"Vestmannaeyjar", 63.4427, -20.2734},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := forwardLCC(tc.lat, tc.lon,
				lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)
			lat, lon := LCCPointToWGS84(x, y,
				lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)

			assert.InDelta(t, tc.lat, lat, 1e-7)
			assert.InDelta(t, tc.lon, lon, 1e-7)
		})
	}
}

func TestLCCStandardParallelsRecovered(t *testing.T) {
	// Points on either standard parallel project and invert without scale
	// distortion affecting the round trip.
	for _, lat := range []float64{lccLat1, lccLat2} {
		x, y := forwardLCC(lat, lccLon0, lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)
		gotLat, gotLon := LCCPointToWGS84(x, y, lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)

		assert.InDelta(t, lat, gotLat, 1e-7)
		assert.InDelta(t, lccLon0, gotLon, 1e-7)
	}
}

func TestLCCVectorized(t *testing.T) {
	pts := []struct{ lat, lon float64 }{
		{64.1466, -21.9426},
		{65.6885, -18.1262},
		{64.2539, -15.2082},
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = forwardLCC(p.lat, p.lon,
			lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)
	}

	lats, lons := LCCToWGS84(xs, ys, lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)
	for i, p := range pts {
		assert.InDelta(t, p.lat, lats[i], 1e-7)
		assert.InDelta(t, p.lon, lons[i], 1e-7)
	}
}

func TestLCCDegenerateRho(t *testing.T) {
	// The cone apex maps rho' to the 1e-10 substitute instead of dividing
	// by zero; the result is finite.
	apexY := lccFalseN + func() float64 {
		f := 1 / lccInvFlattening
		e2 := 2*f - f*f
		e := math.Sqrt(e2)
		m1 := lccM(lccLat1*math.Pi/180, e2)
		t1 := lccT(lccLat1*math.Pi/180, e)
		t0 := lccT(lccLat0*math.Pi/180, e)
		n := math.Log(m1/lccM(lccLat2*math.Pi/180, e2)) /
			math.Log(t1/lccT(lccLat2*math.Pi/180, e))
		bigF := m1 / (n * math.Pow(t1, n))
		return lccSemiMajor * bigF * math.Pow(t0, n)
	}()

	lat, lon := LCCPointToWGS84(lccFalseE, apexY,
		lccLon0, lccLat0, lccLat1, lccLat2, lccFalseE, lccFalseN)

	assert.False(t, math.IsNaN(lat))
	assert.False(t, math.IsInf(lat, 0))
	assert.InDelta(t, 90.0, lat, 1e-3)
	assert.False(t, math.IsNaN(lon))
}
