package projection

import "math"

// Spherical Earth radius for the Lambert Azimuthal Equal-Area grids this
// package targets (e.g. the EEA reference grid, EPSG:3035-style).
const laeaRadius = 6378137.0

// LAEAToWGS84 converts Lambert Azimuthal Equal-Area x/y coordinates in
// meters to WGS84 latitude/longitude in degrees, using the spherical
// inverse formulas. lon0/lat0 are the projection origin in degrees and
// falseEasting/falseNorthing the grid offsets in meters. x and y must have
// equal length; conversion is elementwise.
//
// A point at the projection origin (rho == 0) maps to (lat0, lon0) directly
// rather than dividing by zero.
func LAEAToWGS84(x, y []float64, lon0, lat0, falseEasting, falseNorthing float64) (lat, lon []float64) {
	lon0Rad := lon0 * math.Pi / 180
	lat0Rad := lat0 * math.Pi / 180
	sinLat0 := math.Sin(lat0Rad)
	cosLat0 := math.Cos(lat0Rad)

	lat = make([]float64, len(x))
	lon = make([]float64, len(x))
	for i := range x {
		xa := x[i] - falseEasting
		ya := y[i] - falseNorthing

		rho := math.Sqrt(xa*xa + ya*ya)
		if rho == 0 {
			lat[i] = lat0
			lon[i] = lon0
			continue
		}
		c := 2 * math.Asin(rho/(2*laeaRadius))
		sinC := math.Sin(c)
		cosC := math.Cos(c)

		latRad := math.Asin(cosC*sinLat0 + ya*sinC*cosLat0/rho)
		lonRad := lon0Rad + math.Atan2(xa*sinC, rho*cosLat0*cosC-ya*sinLat0*sinC)

		lat[i] = latRad * 180 / math.Pi
		lon[i] = lonRad * 180 / math.Pi
	}
	return lat, lon
}

// LAEAPointToWGS84 converts a single LAEA coordinate pair.
func LAEAPointToWGS84(x, y, lon0, lat0, falseEasting, falseNorthing float64) (lat, lon float64) {
	lats, lons := LAEAToWGS84([]float64{x}, []float64{y}, lon0, lat0, falseEasting, falseNorthing)
	return lats[0], lons[0]
}
