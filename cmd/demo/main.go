package main

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kass/go-geo-project/pkg/geometry"
	"github.com/kass/go-geo-project/pkg/index"
	"github.com/kass/go-geo-project/pkg/models"
	"github.com/kass/go-geo-project/pkg/projection"
)

const (
	numFeatures = 250000
	numQueries  = 1000

	laeaLon0   = 10.0
	laeaLat0   = 52.0
	laeaFalseE = 4321000.0
	laeaFalseN = 3210000.0
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))
)

type stage int

const (
	stageProjecting stage = iota
	stageProjectComplete
	stageIndexing
	stageIndexComplete
	stageQuerying
	stageQueryComplete
	stageDone
)

type projectStats struct {
	features  int
	duration  time.Duration
	totalArea float64
}

type indexStats struct {
	features int
	duration time.Duration
}

type queryStats struct {
	totalQueries  int64
	totalTime     time.Duration
	totalResults  int64
	queriesPerSec float64
}

type progressMsg float64
type stageCompleteMsg struct {
	stage stage
	stats interface{}
}
type advanceMsg struct{}

type model struct {
	stage           stage
	spinner         spinner.Model
	progress        progress.Model
	progressPercent float64

	projectStats projectStats
	indexStats   indexStats
	queryStats   queryStats

	width  int
	height int
}

func initialModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	p := progress.New(progress.WithDefaultGradient())

	return model{
		stage:    stageProjecting,
		spinner:  s,
		progress: p,
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			go executeDemo()
			return nil
		},
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		m.progressPercent = float64(msg)
		return m, m.progress.SetPercent(float64(msg))

	case stageCompleteMsg:
		switch msg.stage {
		case stageProjecting:
			if stats, ok := msg.stats.(projectStats); ok {
				m.projectStats = stats
			}
			m.stage = stageProjectComplete
		case stageIndexing:
			if stats, ok := msg.stats.(indexStats); ok {
				m.indexStats = stats
			}
			m.stage = stageIndexComplete
		case stageQuerying:
			if stats, ok := msg.stats.(queryStats); ok {
				m.queryStats = stats
			}
			m.stage = stageQueryComplete
		}

		// Auto-advance after a short pause
		if m.stage < stageDone {
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return advanceMsg{}
			})
		}
		return m, nil

	case advanceMsg:
		if m.stage < stageDone {
			m.stage++
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🌍 Geo-Projection Pipeline Demo"))
	b.WriteString("\n\n")

	switch m.stage {
	case stageProjecting:
		b.WriteString(subtitleStyle.Render("Reducing & Projecting Features"))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + fmt.Sprintf(" Computing centroids for %d LAEA polygons...\n\n", numFeatures))
		b.WriteString(m.progress.ViewAs(m.progressPercent))

	case stageProjectComplete:
		b.WriteString(renderProjectStats(m.projectStats))

	case stageIndexing:
		b.WriteString(subtitleStyle.Render("Indexing Centroids"))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + " Inserting WGS84 centroids into the R-Tree...\n\n")
		b.WriteString(m.progress.ViewAs(m.progressPercent))

	case stageIndexComplete:
		b.WriteString(renderIndexStats(m.indexStats))

	case stageQuerying:
		b.WriteString(subtitleStyle.Render("Running Nearest-Neighbor Queries"))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + fmt.Sprintf(" Executing %d queries...\n\n", numQueries))
		b.WriteString(m.progress.ViewAs(m.progressPercent))

	case stageQueryComplete:
		b.WriteString(renderQueryStats(m.queryStats))

	case stageDone:
		b.WriteString(renderSummary(m))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press 'q' to quit"))

	return b.String()
}

func renderProjectStats(stats projectStats) string {
	content := fmt.Sprintf(
		"✓ Features processed: %s\n"+
			"✓ Total time: %s\n"+
			"✓ Centroids per second: %s\n"+
			"✓ Total polygon area: %s km²",
		statStyle.Render(fmt.Sprintf("%d", stats.features)),
		statStyle.Render(stats.duration.String()),
		statStyle.Render(fmt.Sprintf("%.0f", float64(stats.features)/stats.duration.Seconds())),
		statStyle.Render(fmt.Sprintf("%.0f", stats.totalArea/1e6)),
	)
	return boxStyle.Render(successStyle.Render("Projection Complete!\n\n") + content)
}

func renderIndexStats(stats indexStats) string {
	content := fmt.Sprintf(
		"✓ Centroids indexed: %s\n"+
			"✓ Total time: %s\n"+
			"✓ Inserts per second: %s",
		statStyle.Render(fmt.Sprintf("%d", stats.features)),
		statStyle.Render(stats.duration.String()),
		statStyle.Render(fmt.Sprintf("%.0f", float64(stats.features)/stats.duration.Seconds())),
	)
	return boxStyle.Render(successStyle.Render("Indexing Complete!\n\n") + content)
}

func renderQueryStats(stats queryStats) string {
	content := fmt.Sprintf(
		"✓ Total queries: %s\n"+
			"✓ Total time: %s\n"+
			"✓ Queries per second: %s\n"+
			"✓ Average results per query: %s",
		statStyle.Render(fmt.Sprintf("%d", stats.totalQueries)),
		statStyle.Render(stats.totalTime.String()),
		statStyle.Render(fmt.Sprintf("%.0f", stats.queriesPerSec)),
		statStyle.Render(fmt.Sprintf("%.1f", float64(stats.totalResults)/float64(stats.totalQueries))),
	)
	return boxStyle.Render(successStyle.Render("Queries Complete!\n\n") + content)
}

func renderSummary(m model) string {
	summary := titleStyle.Render("🎉 Demo Complete!")
	summary += "\n\n"

	summary += infoStyle.Render("The pipeline demonstrated:")
	summary += "\n\n"

	lines := []string{
		fmt.Sprintf("• Shoelace centroids for %d polygons across %d cores", m.projectStats.features, runtime.NumCPU()),
		"• Inverse LAEA projection of every centroid to WGS84",
		fmt.Sprintf("• R-Tree lookups at %s queries/sec", statStyle.Render(fmt.Sprintf("%.0f", m.queryStats.queriesPerSec))),
	}
	for _, line := range lines {
		summary += successStyle.Render(line) + "\n"
	}

	return summary
}

var program *tea.Program

func executeDemo() {
	features := projectFeatures()

	time.Sleep(500 * time.Millisecond)
	idx := indexFeatures(features)

	time.Sleep(500 * time.Millisecond)
	runQueries(idx)
}

// projectFeatures generates random LAEA squares, reduces them through the
// geometry pipeline and projects the centroids to WGS84.
func projectFeatures() []*models.Feature {
	numWorkers := runtime.NumCPU()
	features := make([]*models.Feature, numFeatures)

	start := time.Now()
	var done atomic.Int64
	var areaMu sync.Mutex
	totalArea := 0.0

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			program.Send(progressMsg(float64(done.Load()) / float64(numFeatures)))
			if done.Load() >= int64(numFeatures) {
				return
			}
		}
	}()

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

		go func(lo, hi int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(lo)))
			localArea := 0.0

			for i := lo; i < hi; i++ {
				cx := r.Float64()*4000000 + 2500000
				cy := r.Float64()*3000000 + 1500000
				half := (r.Float64()*9900 + 100) / 2

				g := geometry.NewPolygon(geometry.Ring{
					{cx - half, cy - half},
					{cx + half, cy - half},
					{cx + half, cy + half},
					{cx - half, cy + half},
				})
				rings, err := geometry.ReduceTo2DRings(g)
				if err != nil {
					continue
				}
				area, px, py := geometry.PolygonCentroid(rings[0])
				lat, lon := projection.LAEAPointToWGS84(px, py, laeaLon0, laeaLat0, laeaFalseE, laeaFalseN)

				features[i] = &models.Feature{
					ID:       fmt.Sprintf("feature_%d", i),
					Centroid: &models.Location{Lat: lat, Lon: lon},
					Area:     area,
				}
				localArea += area
				done.Add(1)
			}

			areaMu.Lock()
			totalArea += localArea
			areaMu.Unlock()
		}(startIdx, endIdx)
	}
	wg.Wait()

	program.Send(progressMsg(1.0))
	program.Send(stageCompleteMsg{
		stage: stageProjecting,
		stats: projectStats{features: numFeatures, duration: time.Since(start), totalArea: totalArea},
	})
	return features
}

func indexFeatures(features []*models.Feature) *index.CentroidIndex {
	idx := index.NewCentroidIndex()
	numWorkers := runtime.NumCPU()

	start := time.Now()
	batchSize := len(features) / numWorkers
	if batchSize < 1 {
		batchSize = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers && w*batchSize < len(features); w++ {
		wg.Add(1)
		startIdx := w * batchSize
		endIdx := startIdx + batchSize
		if w == numWorkers-1 {
			endIdx = len(features)
		}
		go func(batch []*models.Feature) {
			defer wg.Done()
			idx.IndexFeatures(batch)
		}(features[startIdx:endIdx])
	}
	wg.Wait()

	program.Send(progressMsg(1.0))
	program.Send(stageCompleteMsg{
		stage: stageIndexing,
		stats: indexStats{features: int(idx.Size()), duration: time.Since(start)},
	})
	return idx
}

func runQueries(idx *index.CentroidIndex) {
	numWorkers := runtime.NumCPU()

	var totalResults atomic.Int64
	var queryCount atomic.Int64

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			program.Send(progressMsg(float64(queryCount.Load()) / float64(numQueries)))
			if queryCount.Load() >= int64(numQueries) {
				return
			}
		}
	}()

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

		go func(lo, hi int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(lo)))
			local := 0
			for i := lo; i < hi; i++ {
				center := models.Location{
					Lat: r.Float64()*30 + 35,
					Lon: r.Float64()*50 - 10,
				}
				results := idx.NearestNeighbors(center, 10)
				local += len(results)
				queryCount.Add(1)
			}
			totalResults.Add(int64(local))
		}(startIdx, endIdx)
	}
	wg.Wait()
	elapsed := time.Since(start)

	completed := queryCount.Load()
	program.Send(progressMsg(1.0))
	program.Send(stageCompleteMsg{
		stage: stageQuerying,
		stats: queryStats{
			totalQueries:  completed,
			totalTime:     elapsed,
			totalResults:  totalResults.Load(),
			queriesPerSec: float64(completed) / elapsed.Seconds(),
		},
	})
}

func main() {
	program = tea.NewProgram(initialModel())
	if _, err := program.Run(); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}
