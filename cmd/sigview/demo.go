package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/delaneyj/sigview/host"
	"github.com/delaneyj/sigview/host/memdom"
	"github.com/delaneyj/sigview/reactive"
	"github.com/delaneyj/sigview/render"
	"github.com/delaneyj/sigview/view"
	"github.com/urfave/cli/v3"
)

type todo struct {
	title string
	done  bool
}

func demo(ctx context.Context, cmd *cli.Command) error {
	rt := reactive.NewRuntime()
	doc := memdom.NewDocument()
	r := render.New(rt, doc, render.WithDisposeOnTeardown(cmd.Bool(disposeKey)))

	count, setCount := reactive.CreateSignal(rt, 0)
	showList, setShowList := reactive.CreateSignal(rt, true)
	todos, setTodos := reactive.CreateSignal(rt, []todo{
		{title: "write signals"},
		{title: "write renderer", done: true},
	})

	var button *memdom.Element
	app := view.El("main",
		view.Children(
			view.El("button",
				view.A("data-count", func() any { return count() }),
				view.On("click", func(*host.Event) {
					if err := setCount(count() + 1); err != nil {
						log.Printf("click: %v", err)
					}
				}),
				view.Ref(func(el host.Element) {
					button, _ = el.(*memdom.Element)
				}),
				view.Children(view.Text("clicked "), view.Dyn(func() any { return count() })),
			),
			view.When(
				func() bool { return count()%2 == 0 },
				view.El("p", view.Children(view.Text("even"))),
				view.El("p", view.Children(view.Text("odd"))),
			),
			view.If(func() any { return showList() }, view.El("ul", view.Children(
				view.Each(todos, func(t todo, i int) view.View {
					return view.El("li",
						view.A("class", func() any {
							if t.done {
								return "done"
							}
							return false
						}),
						view.Children(view.Value(i+1), view.Text(". "), view.Text(t.title)),
					)
				}),
			))),
		),
	)

	root := doc.Root("body")
	res, err := r.Mount(app, root)
	if err != nil {
		return err
	}
	if button == nil {
		return fmt.Errorf("button ref was not set")
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"mounted", func() error { return nil }},
		{"click", func() error {
			button.Dispatch("click", nil)
			return nil
		}},
		{"click again", func() error {
			button.Dispatch("click", nil)
			return nil
		}},
		{"add todo", func() error {
			return setTodos(append(todos(), todo{title: "ship it"}))
		}},
		{"hide list", func() error { return setShowList(false) }},
		{"show list", func() error { return setShowList(true) }},
		{"teardown", func() error {
			r.Teardown(res)
			return nil
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		log.Printf("%s: %d nodes created", step.name, doc.Created())
		memdom.WriteHTML(os.Stdout, root)
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
