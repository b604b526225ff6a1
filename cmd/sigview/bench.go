package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/sigview/host/memdom"
	"github.com/delaneyj/sigview/reactive"
	"github.com/delaneyj/sigview/render"
	"github.com/delaneyj/sigview/view"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func bench(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("benchmark started")
	defer func() {
		log.Printf("benchmark finished in %v", time.Since(start))
	}()

	iters := int(cmd.Uint(itersKey))
	ww := steps(int(cmd.Uint(widthKey)))
	hh := steps(int(cmd.Uint(depthKey)))

	if err := benchmarkPropagation(ww, hh, iters); err != nil {
		return err
	}
	if cmd.Bool(skipRenders) {
		return nil
	}
	return benchmarkRender(ww, iters)
}

// steps is 1, 10, 100... up to and including limit.
func steps(limit int) []int {
	out := []int{}
	for n := 1; n <= limit; n *= 10 {
		out = append(out, n)
	}
	if limit > 0 && out[len(out)-1] != limit {
		out = append(out, limit)
	}
	return out
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// benchmarkPropagation builds w chains of h effects, each copying its input
// signal into the next one, all fed by a single source.
func benchmarkPropagation(ww, hh []int, iters int) error {
	tbl := newTable("Signal propagation")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := reactive.NewRuntime()
			src, setSrc := reactive.CreateSignal(rt, 1)
			sinks := 0
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					prev := last
					next, setNext := reactive.CreateSignal(rt, 0)
					if _, err := reactive.CreateEffect(rt, func() error {
						return setNext(prev() + 1)
					}); err != nil {
						return fmt.Errorf("building chain %d: %w", i, err)
					}
					last = next
				}
				tail := last
				if _, err := reactive.CreateEffect(rt, func() error {
					tail()
					sinks++
					return nil
				}); err != nil {
					return fmt.Errorf("building sink %d: %w", i, err)
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := setSrc(src() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			if want := w * (iters + 1); sinks != want {
				return fmt.Errorf("propagate %d * %d: sinks ran %d times, want %d", w, h, sinks, want)
			}
			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	tbl.Render()
	return nil
}

func benchmarkRender(ww []int, iters int) error {
	tbl := newTable("Structural re-render")

	for _, w := range ww {
		rt := reactive.NewRuntime()
		doc := memdom.NewDocument()
		r := render.New(rt, doc, render.WithDisposeOnTeardown(true))

		show, setShow := reactive.CreateSignal(rt, true)
		rows := make([]view.View, w)
		for i := range rows {
			rows[i] = view.El("li", view.A("data-i", i), view.Children(view.Value(i)))
		}
		if _, err := r.Mount(view.IfElse(
			func() any { return show() },
			view.El("ul", view.Children(rows...)),
			view.Text("hidden"),
		), doc.Root("body")); err != nil {
			return err
		}

		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		for i := 0; i < iters; i++ {
			start := time.Now()
			if err := setShow(!show()); err != nil {
				return err
			}
			tach.AddTime(time.Since(start))
		}
		appendCalc(tbl, fmt.Sprintf("conditional toggle: %d rows", w), tach)

		items, setItems := reactive.CreateSignal(rt, make([]int, w))
		if _, err := r.Mount(view.Each(items, func(n, i int) view.View {
			return view.El("li", view.Children(view.Value(n+i)))
		}), doc.Root("ul")); err != nil {
			return err
		}

		tach = tachymeter.New(&tachymeter.Config{Size: iters})
		for i := 0; i < iters; i++ {
			next := make([]int, w)
			for j := range next {
				next[j] = i
			}
			start := time.Now()
			if err := setItems(next); err != nil {
				return err
			}
			tach.AddTime(time.Since(start))
		}
		appendCalc(tbl, fmt.Sprintf("iterator rebuild: %d items", w), tach)
	}

	tbl.Render()
	return nil
}
