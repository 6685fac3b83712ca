package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/kass/go-geo-project/pkg/geometry"
	"github.com/kass/go-geo-project/pkg/index"
	"github.com/kass/go-geo-project/pkg/models"
	"github.com/kass/go-geo-project/pkg/projection"
)

var rootCmd = &cobra.Command{
	Use:   "geoproj",
	Short: "Projected-coordinate conversion and polygon centroid toolkit",
	Long:  `Convert UTM, Lambert Azimuthal Equal-Area and Lambert Conformal Conic coordinates to WGS84, and compute polygon centroids from GeoJSON-style geometries.`,
}

var centroidCmd = &cobra.Command{
	Use:   "centroid",
	Short: "Compute the centroid of a Polygon or MultiPolygon geometry",
	Long:  `Reduce a GeoJSON-style geometry object to 2D rings and compute its area-weighted centroid. Reads the geometry from --geometry or stdin.`,
	RunE:  runCentroid,
}

var utmCmd = &cobra.Command{
	Use:   "utm",
	Short: "Convert UTM easting/northing to WGS84 lat/lon",
	Run:   runUTM,
}

var laeaCmd = &cobra.Command{
	Use:   "laea",
	Short: "Convert Lambert Azimuthal Equal-Area x/y to WGS84 lat/lon",
	Run:   runLAEA,
}

var lccCmd = &cobra.Command{
	Use:   "lcc",
	Short: "Convert Lambert Conformal Conic x/y to WGS84 lat/lon",
	Run:   runLCC,
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index synthetic feature centroids and benchmark queries",
	Long:  `Generate random LAEA-projected square features, compute their centroids, convert them to WGS84, index them in an R-Tree and run nearest-neighbor query benchmarks.`,
	Run:   runIndex,
}

var (
	geometryJSON string
	showArea     bool

	easting  float64
	northing float64
	zone     int

	xCoord        float64
	yCoord        float64
	originLon     float64
	originLat     float64
	parallel1     float64
	parallel2     float64
	falseEasting  float64
	falseNorthing float64

	numFeatures int
	numQueries  int
	numWorkers  int
	indexFile   string
)

func init() {
	centroidCmd.Flags().StringVarP(&geometryJSON, "geometry", "g", "", "Geometry as JSON (default: read stdin)")
	centroidCmd.Flags().BoolVar(&showArea, "area", false, "Also print the signed area")

	utmCmd.Flags().Float64VarP(&easting, "easting", "e", 500000, "Easting in meters")
	utmCmd.Flags().Float64VarP(&northing, "northing", "n", 0, "Northing in meters")
	utmCmd.Flags().IntVarP(&zone, "zone", "z", 33, "UTM zone (1-60)")

	laeaCmd.Flags().Float64VarP(&xCoord, "x", "x", 4321000, "X coordinate in meters")
	laeaCmd.Flags().Float64VarP(&yCoord, "y", "y", 3210000, "Y coordinate in meters")
	laeaCmd.Flags().Float64Var(&originLon, "lon0", 10, "Origin longitude in degrees")
	laeaCmd.Flags().Float64Var(&originLat, "lat0", 52, "Origin latitude in degrees")
	laeaCmd.Flags().Float64Var(&falseEasting, "false-easting", 4321000, "False easting in meters")
	laeaCmd.Flags().Float64Var(&falseNorthing, "false-northing", 3210000, "False northing in meters")

	lccCmd.Flags().Float64VarP(&xCoord, "x", "x", 500000, "X coordinate in meters")
	lccCmd.Flags().Float64VarP(&yCoord, "y", "y", 500000, "Y coordinate in meters")
	lccCmd.Flags().Float64Var(&originLon, "lon0", -19, "Origin longitude in degrees")
	lccCmd.Flags().Float64Var(&originLat, "lat0", 65, "Origin latitude in degrees")
	lccCmd.Flags().Float64Var(&parallel1, "lat1", 64.25, "First standard parallel in degrees")
	lccCmd.Flags().Float64Var(&parallel2, "lat2", 65.75, "Second standard parallel in degrees")
	lccCmd.Flags().Float64Var(&falseEasting, "false-easting", 500000, "False easting in meters")
	lccCmd.Flags().Float64Var(&falseNorthing, "false-northing", 500000, "False northing in meters")

	indexCmd.Flags().IntVarP(&numFeatures, "features", "p", 100000, "Number of features to generate")
	indexCmd.Flags().IntVarP(&numQueries, "queries", "q", 1000, "Number of nearest-neighbor queries to run")
	indexCmd.Flags().IntVarP(&numWorkers, "workers", "w", 4, "Number of worker goroutines")
	indexCmd.Flags().StringVarP(&indexFile, "file", "f", "", "Optional gob snapshot path to write")

	rootCmd.AddCommand(centroidCmd, utmCmd, laeaCmd, lccCmd, indexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCentroid(cmd *cobra.Command, args []string) error {
	raw := []byte(geometryJSON)
	if len(raw) == 0 {
		var err error
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read geometry from stdin: %w", err)
		}
	}

	var g geometry.Geometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return fmt.Errorf("decode geometry: %w", err)
	}

	cx, cy, err := geometry.CalcCentroid(g)
	if err != nil {
		return err
	}

	if showArea {
		rings, err := geometry.ReduceTo2DRings(g)
		if err != nil {
			return err
		}
		area, _, _ := geometry.MultiPolygonCentroid(rings)
		fmt.Printf("centroid: (%.8f, %.8f)  area: %.8f\n", cx, cy, area)
		return nil
	}

	fmt.Printf("centroid: (%.8f, %.8f)\n", cx, cy)
	return nil
}

func runUTM(cmd *cobra.Command, args []string) {
	lat, lon := projection.UTMToLatLon(easting, northing, zone)
	fmt.Printf("zone %d easting=%.3f northing=%.3f -> lat=%.8f lon=%.8f\n",
		zone, easting, northing, lat, lon)
}

func runLAEA(cmd *cobra.Command, args []string) {
	lat, lon := projection.LAEAPointToWGS84(xCoord, yCoord, originLon, originLat, falseEasting, falseNorthing)
	fmt.Printf("x=%.3f y=%.3f -> lat=%.8f lon=%.8f\n", xCoord, yCoord, lat, lon)
}

func runLCC(cmd *cobra.Command, args []string) {
	lat, lon := projection.LCCPointToWGS84(xCoord, yCoord, originLon, originLat, parallel1, parallel2, falseEasting, falseNorthing)
	fmt.Printf("x=%.3f y=%.3f -> lat=%.8f lon=%.8f\n", xCoord, yCoord, lat, lon)
}

func runIndex(cmd *cobra.Command, args []string) {
	fmt.Printf("Generating %d synthetic features with %d workers...\n", numFeatures, numWorkers)

	features := generateFeatures(numFeatures, numWorkers)

	idx := index.NewCentroidIndex()

	start := time.Now()
	batchSize := numFeatures / numWorkers
	if batchSize < 1 {
		batchSize = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers && w*batchSize < numFeatures; w++ {
		wg.Add(1)
		startIdx := w * batchSize
		endIdx := startIdx + batchSize
		if w == numWorkers-1 {
			endIdx = numFeatures
		}
		go func(batch []*models.Feature) {
			defer wg.Done()
			idx.IndexFeatures(batch)
		}(features[startIdx:endIdx])
	}
	wg.Wait()
	loadTime := time.Since(start)

	fmt.Printf("Indexed %d centroids in %v (%.0f features/s)\n",
		idx.Size(), loadTime, float64(numFeatures)/loadTime.Seconds())

	if indexFile != "" {
		if err := idx.SaveToFile(indexFile); err != nil {
			log.Fatalf("Failed to save index: %v", err)
		}
		fmt.Printf("Index saved to %s\n", indexFile)
	}

	runQueries(idx)
}

func runQueries(idx *index.CentroidIndex) {
	fmt.Printf("Running %d nearest-neighbor queries using %d workers...\n", numQueries, numWorkers)

	centers := make([]models.Location, numQueries)
	for i := range centers {
		centers[i] = models.Location{
			Lat: rand.Float64()*30 + 35, // 35-65
			Lon: rand.Float64()*50 - 10, // -10 to 40
		}
	}

	var totalResults atomic.Int64
	var queryCount atomic.Int64

	start := time.Now()
	var wg sync.WaitGroup
	queriesPerWorker := numQueries / numWorkers
	if queriesPerWorker < 1 {
		queriesPerWorker = 1
	}

	for w := 0; w < numWorkers && w*queriesPerWorker < numQueries; w++ {
		wg.Add(1)
		startIdx := w * queriesPerWorker
		endIdx := startIdx + queriesPerWorker
		if w == numWorkers-1 {
			endIdx = numQueries
		}

		go func(start, end int) {
			defer wg.Done()
			local := 0
			for i := start; i < end; i++ {
				results := idx.NearestNeighbors(centers[i], 10)
				local += len(results)
				queryCount.Add(1)
			}
			totalResults.Add(int64(local))
		}(startIdx, endIdx)
	}
	wg.Wait()
	elapsed := time.Since(start)

	completed := queryCount.Load()
	fmt.Printf("\nBenchmark Results:\n")
	fmt.Printf("Total queries: %d\n", completed)
	fmt.Printf("Total time: %v\n", elapsed)
	fmt.Printf("Queries per second: %.0f\n", float64(completed)/elapsed.Seconds())
	fmt.Printf("Average results per query: %.1f\n", float64(totalResults.Load())/float64(completed))
}

// generateFeatures builds random square polygons in ETRS89-LAEA meters,
// computes their centroids and converts them to WGS84.
func generateFeatures(n, workers int) []*models.Feature {
	const (
		lon0   = 10.0
		lat0   = 52.0
		falseE = 4321000.0
		falseN = 3210000.0
	)

	features := make([]*models.Feature, n)
	batchSize := n / workers
	if batchSize < 1 {
		batchSize = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers && w*batchSize < n; w++ {
		wg.Add(1)
		startIdx := w * batchSize
		endIdx := startIdx + batchSize
		if w == workers-1 {
			endIdx = n
		}

		go func(start, end int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(start)))

			for i := start; i < end; i++ {
				// Random square, 100m to 10km on a side, within the
				// European LAEA grid extent.
				cx := r.Float64()*4000000 + 2500000
				cy := r.Float64()*3000000 + 1500000
				half := (r.Float64()*9900 + 100) / 2

				ring := geometry.Ring{
					{cx - half, cy - half},
					{cx + half, cy - half},
					{cx + half, cy + half},
					{cx - half, cy + half},
				}
				area, px, py := geometry.PolygonCentroid(ring)
				lat, lon := projection.LAEAPointToWGS84(px, py, lon0, lat0, falseE, falseN)

				features[i] = &models.Feature{
					ID:       fmt.Sprintf("feature_%d", i),
					Centroid: &models.Location{Lat: lat, Lon: lon},
					Area:     area,
				}
			}
		}(startIdx, endIdx)
	}
	wg.Wait()
	return features
}
