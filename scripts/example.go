package main

import (
	"fmt"
	"log"

	"github.com/kass/go-geo-project/pkg/geometry"
	"github.com/kass/go-geo-project/pkg/index"
	"github.com/kass/go-geo-project/pkg/models"
	"github.com/kass/go-geo-project/pkg/projection"
)

func main() {
	// Example 1: centroid of a simple polygon (ISN93/LCC meters)
	fmt.Println("=== Polygon centroid ===")
	g := geometry.NewPolygon(geometry.Ring{
		{356000, 407000},
		{358000, 407000},
		{358000, 409000},
		{356000, 409000},
	})

	cx, cy, err := geometry.CalcCentroid(g)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Centroid in projected meters: (%.1f, %.1f)\n", cx, cy)

	// Example 2: project the centroid to WGS84 (EPSG:3057 parameters)
	fmt.Println("\n=== LCC -> WGS84 ===")
	lat, lon := projection.LCCPointToWGS84(cx, cy, -19, 65, 64.25, 65.75, 500000, 500000)
	fmt.Printf("Centroid in WGS84: lat=%.6f lon=%.6f\n", lat, lon)

	// Example 3: UTM and LAEA conversions
	fmt.Println("\n=== UTM / LAEA -> WGS84 ===")
	utmLat, utmLon := projection.UTMToLatLon(500000, 4649776, 33)
	fmt.Printf("UTM 33N (500000, 4649776): lat=%.6f lon=%.6f\n", utmLat, utmLon)

	laeaLat, laeaLon := projection.LAEAPointToWGS84(4321000, 3210000, 10, 52, 4321000, 3210000)
	fmt.Printf("LAEA grid origin: lat=%.6f lon=%.6f\n", laeaLat, laeaLon)

	// Example 4: index a few feature centroids and query around one
	fmt.Println("\n=== Centroid index ===")
	idx := index.NewCentroidIndex()
	idx.IndexFeatures([]*models.Feature{
		{ID: "A", Centroid: &models.Location{Lat: lat, Lon: lon}},
		{ID: "B", Centroid: &models.Location{Lat: lat + 0.1, Lon: lon + 0.1}},
		{ID: "C", Centroid: &models.Location{Lat: lat + 5, Lon: lon + 5}},
	})

	near, err := idx.QueryRadius(models.Location{Lat: lat, Lon: lon}, 50)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Features within 50km: %d\n", len(near))
	for _, f := range near {
		fmt.Printf("  - %s: (%.4f, %.4f)\n", f.ID, f.Centroid.Lat, f.Centroid.Lon)
	}
}
