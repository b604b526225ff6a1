package view

import "github.com/delaneyj/sigview/host"

// Text is a static text node.
func Text(s string) View {
	return View{kind: KindPrimitive, value: s}
}

// Value is a static primitive: string, bool, any number, or nil for absent.
// A View passed here is returned unchanged.
func Value(v any) View {
	if inner, ok := v.(View); ok {
		return inner
	}
	return View{kind: KindPrimitive, value: v}
}

func Nil() View {
	return View{}
}

// Dyn is text recomputed from fn whenever a signal fn reads is written.
func Dyn(fn func() any) View {
	return View{kind: KindDynamicText, text: fn}
}

// DynString is Dyn for string-valued functions.
func DynString(fn func() string) View {
	return Dyn(func() any { return fn() })
}

func Seq(views ...View) View {
	return View{kind: KindSequence, seq: views}
}

func Elem(e *Element) View {
	return View{kind: KindElement, elem: e}
}

// El is a shorthand element with only children. Options tweak the rest.
func El(name string, opts ...ElementOption) View {
	e := &Element{Name: name}
	for _, opt := range opts {
		opt(e)
	}
	return Elem(e)
}

type ElementOption func(e *Element)

// A sets an attribute. value may be a binding, see Attr.
func A(name string, value any) ElementOption {
	return func(e *Element) {
		e.Attributes = append(e.Attributes, Attr{Name: name, Value: value})
	}
}

func On(event string, fn func(ev *host.Event)) ElementOption {
	return OnListener(event, host.Listen(fn))
}

func OnListener(event string, l *host.Listener) ElementOption {
	return func(e *Element) {
		if e.Events == nil {
			e.Events = map[string]*host.Listener{}
		}
		e.Events[event] = l
	}
}

// Children appends to the element's children, which become a sequence.
func Children(children ...View) ElementOption {
	return func(e *Element) {
		if e.Children.IsNil() {
			e.Children = Seq(children...)
			return
		}
		e.Children = Seq(append([]View{e.Children}, children...)...)
	}
}

func ChildrenFunc(fn func() View) ElementOption {
	return func(e *Element) {
		e.ChildrenFunc = fn
	}
}

func Ref(fn func(el host.Element)) ElementOption {
	return func(e *Element) {
		e.Ref = fn
	}
}

func If(condition func() any, then View) View {
	return IfElse(condition, then, Nil())
}

func IfElse(condition func() any, then, otherwise View) View {
	return View{kind: KindConditional, cond: &Conditional{
		Condition: condition,
		Then:      then,
		Else:      otherwise,
	}}
}

// When is If for bool predicates.
func When(condition func() bool, then, otherwise View) View {
	return IfElse(func() any { return condition() }, then, otherwise)
}

func For(collection func() []any, item func(item any, index int) View) View {
	return View{kind: KindIterator, iter: &Iterator{
		Collection: collection,
		Item:       item,
	}}
}

// Each is For over a typed collection.
func Each[T any](collection func() []T, item func(item T, index int) View) View {
	return For(
		func() []any {
			items := collection()
			out := make([]any, len(items))
			for i, it := range items {
				out[i] = it
			}
			return out
		},
		func(it any, index int) View {
			v, _ := it.(T)
			return item(v, index)
		},
	)
}
