package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/glimmer-ui/glimmer"
	"github.com/olekukonko/tablewriter"
)

// Layered dependency-graph workload: a row of signal sources feeding stacked
// rows of computeds, a fraction of which swap one of their sources at runtime
// depending on a phase signal. Each iteration writes one source and reads a
// fraction of the leaves.

type graphTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int     // width of dependency graph to construct
	totalLayers    int     // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes with a fixed dependency set
	nSources       int     // number of sources in each node
	readFraction   float64 // fraction of leaves to read in each iteration
	iterations     int     // number of test iterations
}

type graph struct {
	tr      *glimmer.Tracker
	phase   *glimmer.Signal[int]
	sources []*glimmer.Signal[int]
	leaves  []*glimmer.Computed[int]
}

func main() {
	log.Print("Starting glimmer graph benchmark, please wait...")
	defer log.Print("Finished glimmer graph benchmark")

	cfgs := []graphTestConfig{
		{
			name:           "simple component",
			width:          10,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       2,
			readFraction:   0.2,
			iterations:     100_000,
		},
		{
			name:           "dynamic component",
			width:          10,
			totalLayers:    10,
			staticFraction: 0.75,
			nSources:       6,
			readFraction:   0.2,
			iterations:     15_000,
		},
		{
			name:           "large web app",
			width:          1000,
			totalLayers:    12,
			staticFraction: 0.95,
			nSources:       4,
			readFraction:   1,
			iterations:     7_000,
		},
		{
			name:           "wide dense",
			width:          1000,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       25,
			readFraction:   1,
			iterations:     3_000,
		},
		{
			name:           "deep",
			width:          5,
			totalLayers:    500,
			staticFraction: 1,
			nSources:       3,
			readFraction:   1,
			iterations:     500,
		},
		{
			name:           "very dynamic",
			width:          100,
			totalLayers:    15,
			staticFraction: 0.5,
			nSources:       6,
			readFraction:   1,
			iterations:     2_000,
		},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"framework", "size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})

	testRepeats := 5
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)
		counter := new(int64)
		g := makeGraph(&cfg, counter)

		runOnce := func() int {
			return runGraph(g, &cfg)
		}
		// run once to warm up
		runOnce()

		bestDuration := time.Hour
		var bestCount int64
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d", cfg.name, i+1, testRepeats)
			*counter = 0
			start := time.Now()
			runOnce()
			duration := time.Since(start)
			if duration < bestDuration {
				bestDuration = duration
				bestCount = *counter
			}
		}

		makeTitle := func() string {
			sb := strings.Builder{}
			sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
			if cfg.staticFraction < 1 {
				sb.WriteString(" dynamic")
			}
			if cfg.readFraction < 1 {
				sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
			}
			return sb.String()
		}

		updateRate := float64(bestCount) / (float64(bestDuration) / float64(time.Millisecond))

		table.Append([]string{
			"glimmer",
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(int64(cfg.iterations)),
			cfg.name,
			fmt.Sprint(bestDuration),
			humanize.Comma(int64(updateRate)),
			makeTitle(),
		})
	}
	table.Render()
}

func makeGraph(cfg *graphTestConfig, counter *int64) *graph {
	tr := glimmer.NewTracker(func(from glimmer.Reactor, err error) {
		log.Panic(err)
	})
	g := &graph{
		tr:      tr,
		phase:   glimmer.NewSignal(tr, 0),
		sources: make([]*glimmer.Signal[int], cfg.width),
	}
	for i := range g.sources {
		g.sources[i] = glimmer.NewSignal(tr, i)
	}

	random := rand.New(rand.NewSource(0))
	prevRow := make([]func() int, cfg.width)
	for i, src := range g.sources {
		src := src
		prevRow[i] = func() int { return src.Value() }
	}

	var lastRow []*glimmer.Computed[int]
	for l := 0; l < cfg.totalLayers-1; l++ {
		row := make([]*glimmer.Computed[int], cfg.width)
		reads := make([]func() int, cfg.width)
		for myDex := range row {
			mySources := make([]func() int, 0, cfg.nSources)
			for sourceDex := 0; sourceDex < cfg.nSources; sourceDex++ {
				mySources = append(mySources, prevRow[(myDex+sourceDex)%cfg.width])
			}
			dynamic := random.Float64() > cfg.staticFraction

			c := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
				*counter++
				sum := 0
				start := 0
				if dynamic && g.phase.Value()%2 == 1 {
					// drop the first source this phase, picking it back up next phase
					start = 1
				}
				for _, read := range mySources[start:] {
					sum += read()
				}
				return sum, nil
			})
			row[myDex] = c
			reads[myDex] = func() int { return c.Value() }
		}
		prevRow = reads
		lastRow = row
	}
	g.leaves = lastRow
	return g
}

// Execute the graph by writing one of the sources and reading some or all of
// the leaves; returns the sum of the leaf values read last.
func runGraph(g *graph, cfg *graphTestConfig) int {
	random := rand.New(rand.NewSource(0))
	skipCount := int(math.Round(float64(len(g.leaves)) * (1 - cfg.readFraction)))
	readLeaves := removeElems(g.leaves, skipCount, random)

	for i := 0; i < cfg.iterations; i++ {
		sourceDex := i % len(g.sources)
		if err := g.sources[sourceDex].Set(i + sourceDex); err != nil {
			log.Panic(err)
		}
		if cfg.staticFraction < 1 && i%97 == 0 {
			if err := g.phase.Set(g.phase.Peek() + 1); err != nil {
				log.Panic(err)
			}
		}
		for _, leaf := range readLeaves {
			leaf.Value()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}
