// Package memdom is an in-memory host. It backs the tests and the CLI demo:
// nodes live in plain Go structs, events are dispatched by hand, and any
// subtree can be serialized to HTML.
package memdom

import (
	"fmt"

	"github.com/delaneyj/sigview/host"
)

type Document struct {
	created int
}

func NewDocument() *Document {
	return &Document{}
}

// Created is the number of nodes the document has handed out.
func (d *Document) Created() int {
	return d.created
}

func (d *Document) CreateTextNode(text string) host.Text {
	d.created++
	return &Text{data: text}
}

func (d *Document) CreateElement(name string) host.Element {
	d.created++
	return newElement(name)
}

// Root makes a detached element to mount into. It is not counted as created.
func (d *Document) Root(name string) *Element {
	return newElement(name)
}

type node struct {
	parent *Element
}

func (n *node) Parent() host.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) base() *node {
	return n
}

type Text struct {
	node
	data string
}

func (t *Text) Text() string {
	return t.data
}

func (t *Text) SetText(text string) {
	t.data = text
}

type attr struct {
	name, value string
}

type Element struct {
	node
	name      string
	attrs     []attr
	listeners map[string][]*host.Listener
	children  []host.Node
	source    any
}

func newElement(name string) *Element {
	return &Element{
		name:      name,
		listeners: map[string][]*host.Listener{},
	}
}

func (e *Element) Name() string {
	return e.name
}

func (e *Element) SetAttribute(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attr{name: name, value: value})
}

func (e *Element) RemoveAttribute(name string) {
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

func (e *Element) AddEventListener(event string, l *host.Listener) {
	for _, existing := range e.listeners[event] {
		if existing == l {
			return
		}
	}
	e.listeners[event] = append(e.listeners[event], l)
}

func (e *Element) RemoveEventListener(event string, l *host.Listener) {
	ls := e.listeners[event]
	for i, existing := range ls {
		if existing == l {
			e.listeners[event] = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(e.listeners[event]) == 0 {
		delete(e.listeners, event)
	}
}

// Listeners is the number of listeners registered for event.
func (e *Element) Listeners(event string) int {
	return len(e.listeners[event])
}

// Dispatch invokes the listeners registered for event and reports how many
// ran. Listeners added or removed by a handler take effect on the next
// dispatch.
func (e *Element) Dispatch(event string, data any) int {
	ls := append([]*host.Listener(nil), e.listeners[event]...)
	ev := &host.Event{Type: event, Target: e, Data: data}
	for _, l := range ls {
		l.Handle(ev)
	}
	return len(ls)
}

func (e *Element) AppendChild(child host.Node) {
	n := baseOf(child)
	if n.parent != nil {
		n.parent.RemoveChild(child)
	}
	n.parent = e
	e.children = append(e.children, child)
}

func (e *Element) RemoveChild(child host.Node) {
	n := baseOf(child)
	if n.parent != e {
		return
	}
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (e *Element) Children() []host.Node {
	return append([]host.Node(nil), e.children...)
}

func (e *Element) SetSource(src any) {
	e.source = src
}

func (e *Element) Source() any {
	return e.source
}

// TextContent concatenates every descendant text node, in document order.
func (e *Element) TextContent() string {
	var out []byte
	var walk func(n host.Node)
	walk = func(n host.Node) {
		switch n := n.(type) {
		case *Text:
			out = append(out, n.data...)
		case *Element:
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	walk(e)
	return string(out)
}

func baseOf(n host.Node) *node {
	b, ok := n.(interface{ base() *node })
	if !ok {
		panic(fmt.Sprintf("memdom: node %T was not created by memdom", n))
	}
	return b.base()
}
