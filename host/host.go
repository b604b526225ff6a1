// Package host declares the output-node primitives the renderer drives.
//
// A host owns the live tree: it creates nodes, mutates text and attributes,
// wires listeners and moves nodes between parents. The renderer never touches
// host internals beyond these interfaces.
package host

type Node interface {
	// Parent returns the element the node is attached to, or nil.
	Parent() Element
}

type Text interface {
	Node
	Text() string
	SetText(text string)
}

type Element interface {
	Node
	Name() string

	SetAttribute(name, value string)
	RemoveAttribute(name string)

	// Adding the same listener twice for one event registers it once.
	AddEventListener(event string, l *Listener)
	RemoveEventListener(event string, l *Listener)

	// AppendChild moves child under the element, detaching it from any
	// previous parent first.
	AppendChild(child Node)
	// RemoveChild detaches child. It does nothing when child is not attached
	// to this element.
	RemoveChild(child Node)

	// Source is a non-owning back-reference to whatever description the
	// element was built from.
	SetSource(src any)
	Source() any
}

type Document interface {
	CreateTextNode(text string) Text
	CreateElement(name string) Element
}

// Detach removes n from its current parent, if any.
func Detach(n Node) {
	if parent := n.Parent(); parent != nil {
		parent.RemoveChild(n)
	}
}
