// Package index provides a thread-safe R-Tree index over polygon features
// keyed by their computed centroids, for box, radius and nearest-neighbor
// lookups after projection to WGS84.
package index

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/go-geo-project/pkg/models"
)

const (
	tolerance   = 0.01
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
	earthRadius = 6371.0 // km
)

// spatialFeature wraps a Feature for R-Tree indexing
type spatialFeature struct {
	*models.Feature
	rect *rtreego.Rect
}

func (sf *spatialFeature) Bounds() *rtreego.Rect {
	return sf.rect
}

// CentroidIndex is a thread-safe R-Tree index of feature centroids
type CentroidIndex struct {
	tree      *rtreego.Rtree
	mu        sync.RWMutex
	itemCount atomic.Int64
}

// NewCentroidIndex creates an empty centroid index
func NewCentroidIndex() *CentroidIndex {
	return &CentroidIndex{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// IndexFeatures adds a batch of features to the index. Features without a
// centroid are skipped.
func (c *CentroidIndex) IndexFeatures(features []*models.Feature) {
	if len(features) == 0 {
		return
	}

	items := make([]rtreego.Spatial, 0, len(features))
	for _, f := range features {
		if f == nil || f.Centroid == nil {
			continue
		}
		p := rtreego.Point{f.Centroid.Lat, f.Centroid.Lon}
		items = append(items, &spatialFeature{f, p.ToRect(tolerance)})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		c.tree.Insert(item)
	}
	c.itemCount.Add(int64(len(items)))
}

// QueryBox returns all features whose centroid falls inside the bounding box
func (c *CentroidIndex) QueryBox(box models.BoundingBox) ([]*models.Feature, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bottomLeft := rtreego.Point{box.BottomLeft.Lat, box.BottomLeft.Lon}
	size := []float64{
		box.TopRight.Lat - box.BottomLeft.Lat,
		box.TopRight.Lon - box.BottomLeft.Lon,
	}

	bounds, err := rtreego.NewRect(bottomLeft, size)
	if err != nil {
		return nil, fmt.Errorf("invalid bounding box: %w", err)
	}

	results := c.tree.SearchIntersect(bounds)

	features := make([]*models.Feature, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialFeature)
		if !ok || item.Centroid == nil {
			continue
		}
		// The R-Tree rectangles carry the insertion tolerance, so filter
		// down to the exact box.
		if item.Centroid.Lat >= box.BottomLeft.Lat && item.Centroid.Lat <= box.TopRight.Lat &&
			item.Centroid.Lon >= box.BottomLeft.Lon && item.Centroid.Lon <= box.TopRight.Lon {
			features = append(features, item.Feature)
		}
	}

	return features, nil
}

// QueryRadius returns all features whose centroid lies within radiusKm of
// the center point
func (c *CentroidIndex) QueryRadius(center models.Location, radiusKm float64) ([]*models.Feature, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Over-approximate with a bounding box, then filter by real distance
	deg := (radiusKm / earthRadius) * (180 / math.Pi)
	bounds, err := rtreego.NewRect(
		rtreego.Point{center.Lat - deg, center.Lon - deg},
		[]float64{2 * deg, 2 * deg},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid radius search: %w", err)
	}

	results := c.tree.SearchIntersect(bounds)

	features := make([]*models.Feature, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialFeature)
		if !ok || item.Centroid == nil {
			continue
		}
		dist := haversineDistance(center.Lat, center.Lon, item.Centroid.Lat, item.Centroid.Lon)
		if dist <= radiusKm {
			features = append(features, item.Feature)
		}
	}

	return features, nil
}

// NearestNeighbors returns the n features with centroids closest to the
// given location
func (c *CentroidIndex) NearestNeighbors(loc models.Location, n int) []*models.Feature {
	c.mu.RLock()
	defer c.mu.RUnlock()

	results := c.tree.NearestNeighbors(n, rtreego.Point{loc.Lat, loc.Lon})

	features := make([]*models.Feature, 0, len(results))
	for _, result := range results {
		if item, ok := result.(*spatialFeature); ok {
			features = append(features, item.Feature)
		}
	}
	return features
}

// Size returns the number of features in the index
func (c *CentroidIndex) Size() int64 {
	return c.itemCount.Load()
}

// Clear removes all features from the index
func (c *CentroidIndex) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	c.itemCount.Store(0)
}

// haversineDistance calculates the distance between two lat/lon points in kilometers
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
