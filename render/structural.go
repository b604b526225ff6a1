package render

import (
	"fmt"

	"github.com/delaneyj/sigview/host"
	"github.com/delaneyj/sigview/reactive"
	"github.com/delaneyj/sigview/view"
)

// region is the live output of one conditional or iterator, rebuilt by its
// effect.
type region struct {
	r       *Renderer
	parent  host.Element
	current Result
	mounted bool
	effect  *reactive.Effect
}

// clear tears down the previous output, if any.
func (g *region) clear() {
	if g.mounted {
		g.r.teardown(g.current)
		g.current, g.mounted = Result{}, false
	}

	if g.r.disposeOnTeardown {
		// Disposed with an enclosing scope: take our output down too
		reactive.OnCleanup(g.r.rt, func() {
			if g.effect != nil && g.effect.Disposed() {
				g.r.teardown(g.current)
			}
		})
	}
}

func (g *region) mount(v view.View) error {
	next, err := g.r.mountOwned(v, g.parent)
	if err != nil {
		return err
	}
	g.current, g.mounted = next, true
	return nil
}

func (r *Renderer) mountConditional(c *view.Conditional, parent host.Element) (Result, error) {
	g := &region{r: r, parent: parent}

	effect, err := reactive.CreateEffect(r.rt, func() error {
		ok := truthy(c.Condition())
		g.clear()
		switch {
		case ok:
			return g.mount(c.Then)
		case !c.Else.IsNil():
			return g.mount(c.Else)
		}
		return nil
	})
	g.effect = effect
	if err != nil {
		return live(g), fmt.Errorf("conditional: %w", err)
	}
	return live(g), nil
}

func (r *Renderer) mountIterator(it *view.Iterator, parent host.Element) (Result, error) {
	g := &region{r: r, parent: parent}

	effect, err := reactive.CreateEffect(r.rt, func() error {
		items := it.Collection()
		g.clear()
		views := make([]view.View, len(items))
		for i, item := range items {
			views[i] = it.Item(item, i)
		}
		return g.mount(view.Seq(views...))
	})
	g.effect = effect
	if err != nil {
		return live(g), fmt.Errorf("iterator: %w", err)
	}
	return live(g), nil
}

// teardown detaches every top-level node of res and removes the listeners its
// elements were mounted with. Descendants go with their detached ancestors.
// Nested regions are torn down through their current output, not the output
// they had when res was mounted.
func (r *Renderer) teardown(res Result) {
	switch {
	case res.region != nil:
		if res.region.mounted {
			r.teardown(res.region.current)
		}
	case res.seq:
		for _, p := range res.parts {
			r.teardown(p)
		}
	case res.node != nil:
		detach(res.node)
	}
	res.scope.Dispose()
}

func detach(n host.Node) {
	host.Detach(n)

	el, ok := n.(host.Element)
	if !ok {
		return
	}
	src, ok := el.Source().(*view.Element)
	if !ok || src == nil {
		return
	}
	for event, l := range src.Events {
		el.RemoveEventListener(event, l)
	}
}
