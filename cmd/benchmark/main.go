package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/glimmer-ui/glimmer"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	profileKey = "profile"
	itersKey   = "iters"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation latency across dependency grids",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this path",
			},
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes per grid",
				Value: 100,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}
	iters := int(cmd.Int(itersKey))

	log.Printf("warming up")

	tbl := table.NewWriter()
	tbl.SetTitle("Glimmer Signals")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			tr := glimmer.NewTracker(func(from glimmer.Reactor, err error) {
				log.Panic(err)
			})
			src := glimmer.NewSignal(tr, 1)
			for i := 0; i < w; i++ {
				last := func() int { return src.Value() }
				for j := 0; j < h; j++ {
					prev := last
					c := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
						return prev() + 1, nil
					})
					last = func() int { return c.Value() }
				}

				glimmer.NewEffect(tr, func() error {
					last()
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.Set(src.Peek() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return nil
}
