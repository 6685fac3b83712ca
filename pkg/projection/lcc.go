package projection

import "math"

// GRS80 ellipsoid, as used by ISN93 / EPSG:3057-style Lambert Conformal
// Conic grids.
const (
	lccSemiMajor     = 6378137.0
	lccInvFlattening = 298.257222101
)

// lccT is the conformal-latitude helper relating geodetic latitude to the
// projection's isometric latitude.
func lccT(phi, e float64) float64 {
	return math.Tan(math.Pi/4-phi/2) /
		math.Pow((1-e*math.Sin(phi))/(1+e*math.Sin(phi)), e/2)
}

// lccM is the parallel-radius helper evaluated at the standard parallels.
func lccM(phi, e2 float64) float64 {
	sin := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-e2*sin*sin)
}

// LCCToWGS84 converts Lambert Conformal Conic x/y coordinates in meters to
// WGS84 latitude/longitude in degrees, using the ellipsoidal inverse
// formulas on GRS80. lon0/lat0 are the projection origin, lat1/lat2 the two
// standard parallels, all in degrees. x and y must have equal length.
//
// Latitude is solved by fixed-point iteration: 5 rounds, with an early exit
// once the largest absolute change across the whole batch drops below
// 1e-10. The convergence check is global, not per element, matching the
// data pipelines this was built against.
func LCCToWGS84(x, y []float64, lon0, lat0, lat1, lat2, falseEasting, falseNorthing float64) (lat, lon []float64) {
	f := 1 / lccInvFlattening
	e2 := 2*f - f*f
	e := math.Sqrt(e2)

	lat0Rad := lat0 * math.Pi / 180
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon0Rad := lon0 * math.Pi / 180

	m1 := lccM(lat1Rad, e2)
	m2 := lccM(lat2Rad, e2)
	t0 := lccT(lat0Rad, e)
	t1 := lccT(lat1Rad, e)
	t2 := lccT(lat2Rad, e)

	n := math.Log(m1/m2) / math.Log(t1/t2)
	bigF := m1 / (n * math.Pow(t1, n))
	rho0 := lccSemiMajor * bigF * math.Pow(t0, n)

	lat = make([]float64, len(x))
	lon = make([]float64, len(x))
	t := make([]float64, len(x))
	for i := range x {
		xa := x[i] - falseEasting
		ya := y[i] - falseNorthing

		rho := math.Sqrt(xa*xa + (rho0-ya)*(rho0-ya))
		if n < 0 {
			rho = -rho
		}
		if rho == 0 {
			rho = 1e-10
		}
		t[i] = math.Pow(rho/(lccSemiMajor*bigF), 1/n)

		theta := math.Atan2(xa, rho0-ya)
		lon[i] = (theta/n + lon0Rad) * 180 / math.Pi

		lat[i] = math.Pi/2 - 2*math.Atan(t[i])
	}

	for iter := 0; iter < 5; iter++ {
		maxDiff := 0.0
		for i := range lat {
			sin := math.Sin(lat[i])
			next := math.Pi/2 - 2*math.Atan(t[i]*math.Pow((1-e*sin)/(1+e*sin), e/2))
			if diff := math.Abs(next - lat[i]); diff > maxDiff {
				maxDiff = diff
			}
			lat[i] = next
		}
		if maxDiff < 1e-10 {
			break
		}
	}

	for i := range lat {
		lat[i] *= 180 / math.Pi
	}
	return lat, lon
}

// LCCPointToWGS84 converts a single LCC coordinate pair.
func LCCPointToWGS84(x, y, lon0, lat0, lat1, lat2, falseEasting, falseNorthing float64) (lat, lon float64) {
	lats, lons := LCCToWGS84([]float64{x}, []float64{y}, lon0, lat0, lat1, lat2, falseEasting, falseNorthing)
	return lats[0], lons[0]
}
