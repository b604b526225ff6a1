package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/delaneyj/sigview/host/memdom"
	"github.com/delaneyj/sigview/reactive"
	"github.com/delaneyj/sigview/render"
	"github.com/delaneyj/sigview/view"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

type stressResult struct {
	items    int
	rounds   int
	duration time.Duration
	created  int
	print    uint64
}

func stress(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting iterator stress, please wait...")
	defer log.Print("Finished iterator stress")

	rounds := int(cmd.Uint(roundsKey))
	dispose := cmd.Bool(disposeKey)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"items", "rounds", "dispose", "time", "rebuilds/s", "nodes/s", "nodes created", "fingerprint",
	})

	for _, n := range steps(int(cmd.Uint(itemsKey))) {
		log.Printf("Rebuilding %s items %d times", humanize.Comma(int64(n)), rounds)
		res, err := stressIterator(n, rounds, dispose)
		if err != nil {
			return err
		}

		seconds := res.duration.Seconds()
		if seconds == 0 {
			seconds = 1e-9
		}
		rebuildRate := float64(res.rounds) / seconds
		nodeRate := float64(res.created) / seconds

		table.Append([]string{
			humanize.Comma(int64(res.items)),
			fmt.Sprint(res.rounds),
			fmt.Sprint(dispose),
			fmt.Sprint(res.duration),
			humanize.Comma(int64(rebuildRate)),
			humanize.Comma(int64(nodeRate)),
			humanize.Comma(int64(res.created)),
			strconv.FormatUint(res.print, 16),
		})
	}
	table.Render()
	return nil
}

// stressIterator rebuilds an n-item list rounds times and checks each
// rebuild against a statically mounted copy of the same list.
func stressIterator(n, rounds int, dispose bool) (*stressResult, error) {
	rt := reactive.NewRuntime()
	doc := memdom.NewDocument()
	r := render.New(rt, doc, render.WithDisposeOnTeardown(dispose))

	items, setItems := reactive.CreateSignal(rt, labels(n, 0))
	row := func(s string, i int) view.View {
		return view.El("li", view.A("data-i", i), view.Children(view.Text(s)))
	}

	root := doc.Root("ul")
	if _, err := r.Mount(view.Each(items, row), root); err != nil {
		return nil, err
	}

	res := &stressResult{items: n, rounds: rounds}
	for round := 1; round <= rounds; round++ {
		next := labels(n, round)

		created := doc.Created()
		start := time.Now()
		if err := setItems(next); err != nil {
			return nil, err
		}
		res.duration += time.Since(start)
		res.created += doc.Created() - created

		want, err := expected(next, row)
		if err != nil {
			return nil, err
		}
		got := memdom.Fingerprint(root)
		if got != want {
			return nil, fmt.Errorf("round %d: fingerprint %x, want %x", round, got, want)
		}
		res.print = got
	}
	return res, nil
}

func labels(n, round int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %d.%d", round, i)
	}
	return out
}

func expected(items []string, row func(string, int) view.View) (uint64, error) {
	rt := reactive.NewRuntime()
	doc := memdom.NewDocument()
	root := doc.Root("ul")

	views := make([]view.View, len(items))
	for i, s := range items {
		views[i] = row(s, i)
	}
	if _, err := render.New(rt, doc).Mount(view.Seq(views...), root); err != nil {
		return 0, err
	}
	return memdom.Fingerprint(root), nil
}
