package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	itersKey    = "iters"
	widthKey    = "width"
	depthKey    = "depth"
	itemsKey    = "items"
	roundsKey   = "rounds"
	disposeKey  = "dispose"
	skipRenders = "skip-render"
)

func main() {
	cmd := &cli.Command{
		Name:  "sigview",
		Usage: "Benchmarks and demos for sigview signals and rendering",
		Commands: []*cli.Command{
			{
				Name:  "bench",
				Usage: "Time signal propagation and structural re-renders",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  itersKey,
						Usage: "Writes timed per configuration",
						Value: 100,
					},
					&cli.UintFlag{
						Name:  widthKey,
						Usage: "Largest number of parallel effect chains",
						Value: 1_000,
					},
					&cli.UintFlag{
						Name:  depthKey,
						Usage: "Largest chain depth",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  skipRenders,
						Usage: "Only run the signal propagation benchmarks",
					},
				},
				Action: bench,
			},
			{
				Name:  "stress",
				Usage: "Rebuild large iterators and verify their output",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  itemsKey,
						Usage: "Largest collection size",
						Value: 10_000,
					},
					&cli.UintFlag{
						Name:  roundsKey,
						Usage: "Rebuilds per collection size",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  disposeKey,
						Usage: "Dispose nested effects on teardown",
						Value: true,
					},
				},
				Action: stress,
			},
			{
				Name:  "demo",
				Usage: "Mount a small app into an in-memory document and print it after each step",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  disposeKey,
						Usage: "Dispose nested effects on teardown",
					},
				},
				Action: demo,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
