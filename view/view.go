// Package view describes output trees declaratively.
//
// A View is a closed sum type: its Kind is fixed by the constructor that built
// it, so the renderer never guesses a variant from which fields happen to be
// set. The zero View is the absent primitive and renders as empty text.
package view

import "github.com/delaneyj/sigview/host"

type Kind uint8

const (
	KindPrimitive   Kind = iota // string, number, bool or absent
	KindElement                 // named element
	KindConditional             // then/else chosen by a predicate
	KindIterator                // one subtree per collection item
	KindSequence                // ordered list of views
	KindDynamicText             // text recomputed from a function
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindElement:
		return "Element"
	case KindConditional:
		return "Conditional"
	case KindIterator:
		return "Iterator"
	case KindSequence:
		return "Sequence"
	case KindDynamicText:
		return "DynamicText"
	default:
		return "Unknown"
	}
}

type View struct {
	kind  Kind
	value any
	elem  *Element
	cond  *Conditional
	iter  *Iterator
	seq   []View
	text  func() any
}

func (v View) Kind() Kind {
	return v.kind
}

// IsNil reports whether v is the absent primitive.
func (v View) IsNil() bool {
	return v.kind == KindPrimitive && v.value == nil
}

func (v View) Primitive() any            { return v.value }
func (v View) Element() *Element         { return v.elem }
func (v View) Conditional() *Conditional { return v.cond }
func (v View) Iterator() *Iterator       { return v.iter }
func (v View) Sequence() []View          { return v.seq }
func (v View) DynamicText() func() any   { return v.text }

// Element describes one element node.
type Element struct {
	Name       string
	Attributes []Attr
	// Listeners are attached once at mount and removed at teardown.
	Events map[string]*host.Listener
	// Children is mounted once. ChildrenFunc, when set, is called once at
	// mount instead; reactivity inside children comes from nested
	// conditional, iterator and dynamic text views.
	Children     View
	ChildrenFunc func() View
	// Ref runs after the element and its children are mounted.
	Ref func(el host.Element)
}

// Attr is a named attribute. Value is either a static value or a binding
// (func() any, func() string, func() bool) re-evaluated reactively. The value
// false means the attribute is absent.
type Attr struct {
	Name  string
	Value any
}

// Binding returns the attribute's reactive binding, if it has one.
func (a Attr) Binding() (func() any, bool) {
	switch fn := a.Value.(type) {
	case func() any:
		return fn, true
	case func() string:
		return func() any { return fn() }, true
	case func() bool:
		return func() any { return fn() }, true
	default:
		return nil, false
	}
}

type Conditional struct {
	Condition func() any
	Then      View
	// Else is skipped when it is the zero View.
	Else View
}

type Iterator struct {
	Collection func() []any
	Item       func(item any, index int) View
}
