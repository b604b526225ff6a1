package render_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/sigview/host"
	"github.com/delaneyj/sigview/host/memdom"
	"github.com/delaneyj/sigview/reactive"
	"github.com/delaneyj/sigview/render"
	"github.com/delaneyj/sigview/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	rt   *reactive.Runtime
	doc  *memdom.Document
	root *memdom.Element
	r    *render.Renderer
}

func newFixture(opts ...render.Option) *fixture {
	rt := reactive.NewRuntime()
	doc := memdom.NewDocument()
	return &fixture{
		rt:   rt,
		doc:  doc,
		root: doc.Root("body"),
		r:    render.New(rt, doc, opts...),
	}
}

func texts(nodes []host.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		if t, ok := n.(host.Text); ok {
			out[i] = t.Text()
		}
	}
	return out
}

func TestPrimitives(t *testing.T) {
	tcs := []struct {
		name string
		v    view.View
		want string
	}{
		{"string", view.Text("hello"), "hello"},
		{"int", view.Value(42), "42"},
		{"float", view.Value(1.5), "1.5"},
		{"bool", view.Value(true), "true"},
		{"absent", view.Nil(), ""},
		{"nil value", view.Value(nil), ""},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			res, err := f.r.Mount(tc.v, f.root)
			require.NoError(t, err)
			require.False(t, res.IsSeq())

			txt, ok := res.Node().(host.Text)
			require.True(t, ok)
			assert.Equal(t, tc.want, txt.Text())
			assert.Equal(t, host.Element(f.root), txt.Parent())
		})
	}
}

func TestSequenceFlattening(t *testing.T) {
	f := newFixture()
	res, err := f.r.Mount(view.Seq(
		view.Seq(view.Text("a"), view.Text("b")),
		view.Text("c"),
	), f.root)
	require.NoError(t, err)

	require.True(t, res.IsSeq())
	assert.Nil(t, res.Node())
	assert.Equal(t, []string{"a", "b", "c"}, texts(res.Nodes()))
	assert.Equal(t, res.Nodes(), f.root.Children())
}

func TestDynamicText(t *testing.T) {
	f := newFixture()
	name, setName := reactive.CreateSignal(f.rt, "world")

	calls := 0
	res, err := f.r.Mount(view.Dyn(func() any {
		calls++
		return "hello " + name()
	}), f.root)
	require.NoError(t, err)

	txt := res.Node().(host.Text)
	assert.Equal(t, "hello world", txt.Text())
	assert.Equal(t, 1, calls)

	require.NoError(t, setName("go"))
	assert.Equal(t, "hello go", txt.Text())
	assert.Same(t, txt, f.root.Children()[0])
}

func TestElement(t *testing.T) {
	f := newFixture()

	var refd host.Element
	var childrenCalls int
	res, err := f.r.Mount(view.Elem(&view.Element{
		Name: "a",
		Attributes: []view.Attr{
			{Name: "href", Value: "/home"},
			{Name: "tabindex", Value: 3},
			{Name: "hidden", Value: false},
		},
		ChildrenFunc: func() view.View {
			childrenCalls++
			return view.Seq(view.Text("go "), view.Text("home"))
		},
		Ref: func(el host.Element) {
			refd = el
			// Children are already mounted and the element is attached
			assert.Equal(t, "go home", el.(*memdom.Element).TextContent())
			assert.NotNil(t, el.Parent())
		},
	}), f.root)
	require.NoError(t, err)

	el := res.Node().(*memdom.Element)
	assert.Same(t, el, refd)
	assert.Equal(t, 1, childrenCalls)
	assert.Equal(t, `<a href="/home" tabindex="3">go home</a>`, memdom.HTML(el))
}

func TestReactiveAttribute(t *testing.T) {
	f := newFixture()
	value, setValue := reactive.CreateSignal[any](f.rt, false)

	res, err := f.r.Mount(view.El("input",
		view.A("data-v", func() any { return value() }),
	), f.root)
	require.NoError(t, err)
	el := res.Node().(*memdom.Element)

	_, ok := el.Attribute("data-v")
	assert.False(t, ok, "false means absent")

	require.NoError(t, setValue("v"))
	v, ok := el.Attribute("data-v")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, setValue(false))
	_, ok = el.Attribute("data-v")
	assert.False(t, ok)

	require.NoError(t, setValue(true))
	v, _ = el.Attribute("data-v")
	assert.Equal(t, "true", v)
}

func TestConditional(t *testing.T) {
	f := newFixture()
	show, setShow := reactive.CreateSignal(f.rt, true)

	res, err := f.r.Mount(view.IfElse(
		func() any { return show() },
		view.Text("X"),
		view.Text("Y"),
	), f.root)
	require.NoError(t, err)

	x := res.Node().(host.Text)
	assert.Equal(t, "X", x.Text())
	assert.Equal(t, "X", f.root.TextContent())

	require.NoError(t, setShow(false))
	assert.Nil(t, x.Parent(), "previous branch is detached")
	require.Len(t, f.root.Children(), 1)
	assert.Equal(t, "Y", f.root.TextContent())

	require.NoError(t, setShow(true))
	assert.Equal(t, "X", f.root.TextContent())
	assert.NotSame(t, x, f.root.Children()[0], "branches are rebuilt, not reused")

	t.Run("no else mounts nothing", func(t *testing.T) {
		f := newFixture()
		show, setShow := reactive.CreateSignal(f.rt, 0)
		res, err := f.r.Mount(view.If(func() any { return show() }, view.Text("on")), f.root)
		require.NoError(t, err)
		assert.True(t, res.IsSeq())
		assert.Equal(t, 0, res.Len())
		assert.Empty(t, f.root.Children())

		require.NoError(t, setShow(1))
		assert.Equal(t, "on", f.root.TextContent())
		require.NoError(t, setShow(0))
		assert.Empty(t, f.root.Children())
	})
}

func TestIterator(t *testing.T) {
	f := newFixture()
	items, setItems := reactive.CreateSignal(f.rt, []int{1, 2, 3})

	var indexes []int
	res, err := f.r.Mount(view.Each(items, func(n, i int) view.View {
		indexes = append(indexes, i)
		return view.Value(n)
	}), f.root)
	require.NoError(t, err)
	require.True(t, res.IsSeq())
	assert.Equal(t, []string{"1", "2", "3"}, texts(res.Nodes()))
	assert.Equal(t, []int{0, 1, 2}, indexes)

	first := res.Nodes()
	require.NoError(t, setItems([]int{4, 5}))
	for _, n := range first {
		assert.Nil(t, n.Parent())
	}
	assert.Equal(t, []string{"4", "5"}, texts(f.root.Children()))
	assert.Equal(t, 5, f.doc.Created())
}

func TestEventListenerLifecycle(t *testing.T) {
	f := newFixture()
	show, setShow := reactive.CreateSignal(f.rt, true)

	clicks := 0
	var button *memdom.Element
	_, err := f.r.Mount(view.If(
		func() any { return show() },
		view.El("button",
			view.On("click", func(*host.Event) { clicks++ }),
			view.Ref(func(el host.Element) { button = el.(*memdom.Element) }),
		),
	), f.root)
	require.NoError(t, err)
	require.NotNil(t, button)

	assert.Equal(t, 1, button.Listeners("click"))
	button.Dispatch("click", nil)
	assert.Equal(t, 1, clicks)

	require.NoError(t, setShow(false))
	assert.Nil(t, button.Parent())
	assert.Equal(t, 0, button.Listeners("click"))
	button.Dispatch("click", nil)
	assert.Equal(t, 1, clicks)
}

func TestTeardownIsIdempotent(t *testing.T) {
	f := newFixture()
	res, err := f.r.Mount(view.Seq(
		view.El("p", view.On("click", func(*host.Event) {})),
		view.Text("t"),
	), f.root)
	require.NoError(t, err)

	f.r.Teardown(res)
	assert.Empty(t, f.root.Children())
	assert.NotPanics(t, func() {
		f.r.Teardown(res)
	})
}

func TestCounterClick(t *testing.T) {
	f := newFixture()
	count, setCount := reactive.CreateSignal(f.rt, 0)

	res, err := f.r.Mount(view.El("button",
		view.A("data-count", func() any { return count() }),
		view.On("click", func(*host.Event) {
			require.NoError(t, setCount(count()+1))
		}),
		view.Children(view.Text("clicked "), view.Dyn(func() any { return count() })),
	), f.root)
	require.NoError(t, err)
	btn := res.Node().(*memdom.Element)

	btn.Dispatch("click", nil)
	btn.Dispatch("click", nil)
	assert.Equal(t, `<button data-count="2">clicked 2</button>`, memdom.HTML(btn))
}

// Default teardown leaves nested bindings subscribed: they keep updating the
// detached nodes. WithDisposeOnTeardown disposes them instead.
func TestNestedBindingsAfterTeardown(t *testing.T) {
	build := func(f *fixture) (setShow reactive.Setter[bool], setLabel reactive.Setter[string], calls *int) {
		show, setShow := reactive.CreateSignal(f.rt, true)
		label, setLabel := reactive.CreateSignal(f.rt, "a")
		calls = new(int)
		_, err := f.r.Mount(view.If(
			func() any { return show() },
			view.El("span", view.Children(view.Dyn(func() any {
				*calls++
				return label()
			}))),
		), f.root)
		require.NoError(t, err)
		return setShow, setLabel, calls
	}

	t.Run("default keeps detached bindings alive", func(t *testing.T) {
		f := newFixture()
		setShow, setLabel, calls := build(f)
		span := f.root.Children()[0].(*memdom.Element)

		require.NoError(t, setShow(false))
		assert.Empty(t, f.root.Children())

		require.NoError(t, setLabel("b"))
		assert.Equal(t, 2, *calls)
		assert.Equal(t, "b", span.TextContent(), "detached node is still updated")
	})

	t.Run("dispose on teardown stops them", func(t *testing.T) {
		f := newFixture(render.WithDisposeOnTeardown(true))
		setShow, setLabel, calls := build(f)
		span := f.root.Children()[0].(*memdom.Element)

		require.NoError(t, setShow(false))
		require.NoError(t, setLabel("b"))
		assert.Equal(t, 1, *calls)
		assert.Equal(t, "a", span.TextContent())

		require.NoError(t, setShow(true))
		assert.Equal(t, 2, *calls)
		assert.Equal(t, "b", f.root.TextContent())
	})
}

func TestTeardownFollowsRebuiltRegions(t *testing.T) {
	build := func(f *fixture) (setShow reactive.Setter[bool], setItems reactive.Setter[[]string]) {
		rt := f.r.Runtime()
		show, setShow := reactive.CreateSignal(rt, true)
		items, setItems := reactive.CreateSignal(rt, []string{"1", "2"})
		_, err := f.r.Mount(view.If(
			func() any { return show() },
			view.Each(items, func(s string, _ int) view.View {
				return view.DynString(func() string { return s })
			}),
		), f.root)
		require.NoError(t, err)
		return setShow, setItems
	}

	t.Run("default", func(t *testing.T) {
		f := newFixture()
		setShow, setItems := build(f)

		require.NoError(t, setItems([]string{"3", "4"}))
		assert.Equal(t, "34", f.root.TextContent())

		require.NoError(t, setShow(false))
		assert.Empty(t, f.root.Children(), "rebuilt items are torn down with the branch")

		// the iterator is still subscribed and rebuilds into the same parent
		require.NoError(t, setItems([]string{"5"}))
		assert.Equal(t, "5", f.root.TextContent())
	})

	t.Run("dispose on teardown", func(t *testing.T) {
		f := newFixture(render.WithDisposeOnTeardown(true))
		setShow, setItems := build(f)

		require.NoError(t, setItems([]string{"3", "4"}))
		require.NoError(t, setShow(false))
		assert.Empty(t, f.root.Children())

		require.NoError(t, setItems([]string{"5"}))
		assert.Empty(t, f.root.Children())
	})

	t.Run("results resolve current nodes", func(t *testing.T) {
		f := newFixture()
		items, setItems := reactive.CreateSignal(f.r.Runtime(), []int{1})
		res, err := f.r.Mount(view.Seq(
			view.Text("a"),
			view.Each(items, func(n, _ int) view.View { return view.Value(n) }),
		), f.root)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "1"}, texts(res.Nodes()))

		require.NoError(t, setItems([]int{2, 3}))
		assert.Equal(t, []string{"a", "2", "3"}, texts(res.Nodes()))

		f.r.Teardown(res)
		assert.Empty(t, f.root.Children())
	})
}

func TestTeardownDisposesNestedRegions(t *testing.T) {
	f := newFixture(render.WithDisposeOnTeardown(true))
	outer, setOuter := reactive.CreateSignal(f.rt, true)
	inner, setInner := reactive.CreateSignal(f.rt, true)

	res, err := f.r.Mount(view.If(
		func() any { return outer() },
		view.IfElse(func() any { return inner() }, view.Text("in"), view.Text("out")),
	), f.root)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Effects())
	assert.Equal(t, "in", f.root.TextContent())

	// the inner region rebuilds on its own, outside the outer result
	require.NoError(t, setInner(false))
	assert.Equal(t, "out", f.root.TextContent())

	require.NoError(t, setOuter(false))
	assert.Empty(t, f.root.Children())

	require.NoError(t, setInner(true))
	assert.Empty(t, f.root.Children(), "disposed inner region must not remount")

	f.r.Teardown(res)
	require.NoError(t, setOuter(true))
	assert.Empty(t, f.root.Children())
}

func TestErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	f := newFixture()
	fail, setFail := reactive.CreateSignal(f.rt, false)

	// an effect created by a ref callback is the only way to surface an error
	// through the renderer, since view functions cannot return one
	_, err := f.r.Mount(view.If(
		func() any { return true },
		view.El("div", view.Ref(func(el host.Element) {
			_, err := reactive.CreateEffect(f.rt, func() error {
				if fail() {
					return boom
				}
				return nil
			})
			require.NoError(t, err)
		})),
	), f.root)
	require.NoError(t, err)

	err = setFail(true)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, f.rt.Depth())
}

func TestPanicsUnwind(t *testing.T) {
	f := newFixture()
	bad, setBad := reactive.CreateSignal(f.rt, false)

	_, err := f.r.Mount(view.If(func() any {
		if bad() {
			panic("predicate failed")
		}
		return true
	}, view.Text("ok")), f.root)
	require.NoError(t, err)

	assert.Panics(t, func() { _ = setBad(true) })
	assert.Equal(t, 0, f.rt.Depth())
	// no rollback: the previous branch is still mounted
	assert.Equal(t, "ok", f.root.TextContent())
}
