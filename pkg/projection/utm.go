// Package projection implements inverse map projections to WGS84
// latitude/longitude: zone-based UTM, spherical Lambert Azimuthal
// Equal-Area, and ellipsoidal Lambert Conformal Conic. All functions are
// pure and safe for concurrent use; slice-based conversions are strictly
// elementwise so batches partition freely across workers.
package projection

import "math"

// WGS84 transverse Mercator constants used by the UTM grid.
const (
	utmSemiMajor    = 6378137.0
	utmEccentricity = 0.081819190842622
	utmScaleFactor  = 0.9996
	utmFalseEasting = 500000.0
)

// UTMToLatLon converts UTM easting/northing in the given zone (1-60) to
// WGS84 latitude/longitude in degrees, using the standard Snyder inverse
// transverse Mercator series.
//
// Northings are interpreted with the northern-hemisphere convention; no
// southern false-northing correction is applied. Inputs are not validated:
// an out-of-range zone or non-finite coordinate propagates garbage rather
// than returning an error.
func UTMToLatLon(easting, northing float64, zone int) (lat, lon float64) {
	e2 := utmEccentricity * utmEccentricity
	ep2 := e2 / (1 - e2)

	x := easting - utmFalseEasting
	m := northing / utmScaleFactor

	mu := m / (utmSemiMajor * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	// Footprint latitude from the harmonic series in e1.
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	n1 := utmSemiMajor / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	t1 := tanPhi1 * tanPhi1
	c1 := ep2 * cosPhi1 * cosPhi1
	r1 := utmSemiMajor * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * utmScaleFactor)

	latRad := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)

	lonRad := (d -
		(1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / cosPhi1

	centralMeridian := float64(zone)*6 - 183

	lat = latRad * 180 / math.Pi
	lon = centralMeridian + lonRad*180/math.Pi
	return lat, lon
}
