package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/kass/go-geo-project/pkg/projection"
)

func main() {
	var (
		numPoints = flag.Int("n", 1000000, "Number of coordinate pairs per run")
		workers   = flag.Int("w", runtime.NumCPU(), "Number of worker goroutines")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
		which     = flag.String("p", "all", "Projection to benchmark: utm, laea, lcc, all")
	)
	flag.Parse()

	r := rand.New(rand.NewSource(*seed))

	log.Printf("Generating %d random projected coordinates...", *numPoints)
	xs := make([]float64, *numPoints)
	ys := make([]float64, *numPoints)
	for i := range xs {
		xs[i] = r.Float64()*4000000 + 2500000
		ys[i] = r.Float64()*3000000 + 1500000
	}

	switch *which {
	case "utm":
		benchUTM(xs, ys, *workers)
	case "laea":
		benchLAEA(xs, ys, *workers)
	case "lcc":
		benchLCC(xs, ys, *workers)
	case "all":
		benchUTM(xs, ys, *workers)
		benchLAEA(xs, ys, *workers)
		benchLCC(xs, ys, *workers)
	default:
		log.Fatalf("Unknown projection %q", *which)
	}
}

// partition splits [0, n) into near-equal worker slices.
func partition(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	size := n / workers
	if size < 1 {
		size = 1
	}
	var spans [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}

func benchUTM(xs, ys []float64, workers int) {
	spans := partition(len(xs), workers)

	start := time.Now()
	var wg sync.WaitGroup
	for _, span := range spans {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				// Scale the test grid into plausible UTM ranges.
				easting := xs[i]/10 + 100000
				northing := ys[i] * 2
				projection.UTMToLatLon(easting, northing, 33)
			}
		}(span[0], span[1])
	}
	wg.Wait()
	report("UTM", len(xs), workers, time.Since(start))
}

func benchLAEA(xs, ys []float64, workers int) {
	spans := partition(len(xs), workers)

	start := time.Now()
	var wg sync.WaitGroup
	for _, span := range spans {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			projection.LAEAToWGS84(xs[lo:hi], ys[lo:hi], 10, 52, 4321000, 3210000)
		}(span[0], span[1])
	}
	wg.Wait()
	report("LAEA", len(xs), workers, time.Since(start))
}

func benchLCC(xs, ys []float64, workers int) {
	spans := partition(len(xs), workers)

	start := time.Now()
	var wg sync.WaitGroup
	for _, span := range spans {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			projection.LCCToWGS84(xs[lo:hi], ys[lo:hi], -19, 65, 64.25, 65.75, 500000, 500000)
		}(span[0], span[1])
	}
	wg.Wait()
	report("LCC", len(xs), workers, time.Since(start))
}

func report(name string, n, workers int, elapsed time.Duration) {
	fmt.Printf("%-5s %d conversions, %d workers: %v (%.0f/s)\n",
		name, n, workers, elapsed, float64(n)/elapsed.Seconds())
}
