// Package render mounts views into a host tree and keeps the dynamic parts
// in sync through reactive effects.
//
// Every dynamic binding gets its own effect: one per reactive attribute, one
// per dynamic text node, one per conditional and one per iterator. Structural
// views rebuild their whole subtree on every change; there is no diffing.
//
// By default teardown only detaches nodes and removes listeners. Effects
// belonging to bindings inside a removed subtree stay subscribed and keep
// updating detached nodes on later writes. A nested conditional or iterator
// mounted directly into the same parent keeps rebuilding into that parent,
// so its output reappears on its next change. WithDisposeOnTeardown changes
// that: every structural mount is scoped and its effects are disposed with it.
package render

import (
	"fmt"

	"github.com/delaneyj/sigview/host"
	"github.com/delaneyj/sigview/reactive"
	"github.com/delaneyj/sigview/view"
)

type Option func(r *Renderer)

// WithDisposeOnTeardown disposes the effects created by a mount when that
// mount is torn down.
func WithDisposeOnTeardown(enabled bool) Option {
	return func(r *Renderer) {
		r.disposeOnTeardown = enabled
	}
}

type Renderer struct {
	rt  *reactive.Runtime
	doc host.Document

	disposeOnTeardown bool
}

func New(rt *reactive.Runtime, doc host.Document, opts ...Option) *Renderer {
	r := &Renderer{
		rt:  rt,
		doc: doc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Runtime() *reactive.Runtime {
	return r.rt
}

// Mount builds v under parent and returns the top-level nodes it appended.
// Errors from nested effects are returned as is; nodes appended before the
// failure stay in place.
func (r *Renderer) Mount(v view.View, parent host.Element) (Result, error) {
	res, err := r.mountOwned(v, parent)
	if err != nil {
		return res, fmt.Errorf("render: %w", err)
	}
	return res, nil
}

// Teardown detaches a mount result. Calling it again is a no-op.
func (r *Renderer) Teardown(res Result) {
	r.teardown(res)
}

// mountOwned is mount, scoped when effects must be disposed with the result.
func (r *Renderer) mountOwned(v view.View, parent host.Element) (Result, error) {
	if !r.disposeOnTeardown {
		return r.mount(v, parent)
	}

	var res Result
	scope, err := r.rt.Scope(func() (err error) {
		res, err = r.mount(v, parent)
		return err
	})
	res.scope = scope
	return res, err
}

func (r *Renderer) mount(v view.View, parent host.Element) (Result, error) {
	switch v.Kind() {
	case view.KindConditional:
		return r.mountConditional(v.Conditional(), parent)
	case view.KindIterator:
		return r.mountIterator(v.Iterator(), parent)
	case view.KindSequence:
		return r.mountSequence(v.Sequence(), parent)
	case view.KindDynamicText:
		return r.mountDynamicText(v.DynamicText(), parent)
	case view.KindElement:
		return r.mountElement(v.Element(), parent)
	default:
		t := r.doc.CreateTextNode(stringify(v.Primitive()))
		parent.AppendChild(t)
		return single(t), nil
	}
}

func (r *Renderer) mountSequence(views []view.View, parent host.Element) (Result, error) {
	parts := make([]Result, 0, len(views))
	for _, child := range views {
		res, err := r.mount(child, parent)
		parts = append(parts, res)
		if err != nil {
			return sequence(parts), err
		}
	}
	return sequence(parts), nil
}

func (r *Renderer) mountDynamicText(fn func() any, parent host.Element) (Result, error) {
	t := r.doc.CreateTextNode("")
	if _, err := reactive.CreateEffect(r.rt, func() error {
		t.SetText(stringify(fn()))
		return nil
	}); err != nil {
		return single(t), fmt.Errorf("dynamic text: %w", err)
	}
	parent.AppendChild(t)
	return single(t), nil
}

func (r *Renderer) mountElement(e *view.Element, parent host.Element) (Result, error) {
	el := r.doc.CreateElement(e.Name)

	for _, a := range e.Attributes {
		name := a.Name
		bind, ok := a.Binding()
		if !ok {
			setAttribute(el, name, a.Value)
			continue
		}
		if _, err := reactive.CreateEffect(r.rt, func() error {
			setAttribute(el, name, bind())
			return nil
		}); err != nil {
			return single(el), fmt.Errorf("attribute %q: %w", name, err)
		}
	}

	for event, l := range e.Events {
		el.AddEventListener(event, l)
	}

	el.SetSource(e)
	parent.AppendChild(el)

	children := e.Children
	if e.ChildrenFunc != nil {
		children = e.ChildrenFunc()
	}
	if !children.IsNil() {
		if _, err := r.mount(children, el); err != nil {
			return single(el), fmt.Errorf("children of <%s>: %w", e.Name, err)
		}
	}

	if e.Ref != nil {
		e.Ref(el)
	}
	return single(el), nil
}

// setAttribute applies one attribute value; false removes the attribute.
func setAttribute(el host.Element, name string, value any) {
	if b, ok := value.(bool); ok && !b {
		el.RemoveAttribute(name)
		return
	}
	el.SetAttribute(name, stringify(value))
}
