package geometry

import "errors"

var (
	// ErrUnsupportedGeometry reports a geometry type this package cannot
	// reduce (anything other than Polygon or MultiPolygon).
	ErrUnsupportedGeometry = errors.New("geometry: unsupported geometry type")

	// ErrZNotZero reports a 3D ring whose z column does not sum to zero.
	ErrZNotZero = errors.New("geometry: z coordinate must be zero")
)
