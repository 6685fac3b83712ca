package index

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/go-geo-project/pkg/models"
)

// Features returns every feature currently in the index
func (c *CentroidIndex) Features() []*models.Feature {
	c.mu.RLock()
	defer c.mu.RUnlock()

	world, _ := rtreego.NewRect(rtreego.Point{-90, -180}, []float64{180, 360})
	results := c.tree.SearchIntersect(world)

	features := make([]*models.Feature, 0, len(results))
	for _, result := range results {
		if item, ok := result.(*spatialFeature); ok {
			features = append(features, item.Feature)
		}
	}
	return features
}

// SaveToFile writes a gob snapshot of the indexed features
func (c *CentroidIndex) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	features := c.Features()
	if err := gob.NewEncoder(file).Encode(features); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return nil
}

// LoadFromFile replaces the index contents with a gob snapshot
func (c *CentroidIndex) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var features []*models.Feature
	if err := gob.NewDecoder(file).Decode(&features); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	c.Clear()
	c.IndexFeatures(features)
	return nil
}
