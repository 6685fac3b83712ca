package models

// Location represents a geographic location with latitude and longitude in degrees
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Feature represents a polygon feature reduced to its centroid and signed area
type Feature struct {
	ID       string    `json:"id"`
	Centroid *Location `json:"centroid"`
	Area     float64   `json:"area"`
}

// BoundingBox represents a rectangular area defined by two corners
type BoundingBox struct {
	BottomLeft Location
	TopRight   Location
}
