package memdom

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/sigview/host"
	"github.com/valyala/quicktemplate"
)

var voidElements = map[string]bool{
	"area": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// StreamHTML writes n and its descendants as HTML. Text and attribute values
// are escaped; listeners and sources are not serialized.
func StreamHTML(qw *quicktemplate.Writer, n host.Node) {
	switch n := n.(type) {
	case *Text:
		qw.E().S(n.data)
	case *Element:
		qw.N().S("<")
		qw.N().S(n.name)
		for _, a := range n.attrs {
			qw.N().S(" ")
			qw.N().S(a.name)
			qw.N().S(`="`)
			qw.E().S(a.value)
			qw.N().S(`"`)
		}
		qw.N().S(">")
		if voidElements[n.name] && len(n.children) == 0 {
			return
		}
		for _, c := range n.children {
			StreamHTML(qw, c)
		}
		qw.N().S("</")
		qw.N().S(n.name)
		qw.N().S(">")
	}
}

func WriteHTML(w io.Writer, n host.Node) {
	qw := quicktemplate.AcquireWriter(w)
	StreamHTML(qw, n)
	quicktemplate.ReleaseWriter(qw)
}

func HTML(n host.Node) string {
	bb := quicktemplate.AcquireByteBuffer()
	WriteHTML(bb, n)
	s := string(bb.B)
	quicktemplate.ReleaseByteBuffer(bb)
	return s
}

// InnerHTML serializes the children of e without e itself.
func InnerHTML(e *Element) string {
	bb := quicktemplate.AcquireByteBuffer()
	qw := quicktemplate.AcquireWriter(bb)
	for _, c := range e.children {
		StreamHTML(qw, c)
	}
	quicktemplate.ReleaseWriter(qw)
	s := string(bb.B)
	quicktemplate.ReleaseByteBuffer(bb)
	return s
}

// Fingerprint is a 64-bit digest of the HTML of n. Two trees with the same
// markup share a fingerprint regardless of node identity.
func Fingerprint(n host.Node) uint64 {
	bb := quicktemplate.AcquireByteBuffer()
	WriteHTML(bb, n)
	sum := xxhash.Sum64(bb.B)
	quicktemplate.ReleaseByteBuffer(bb)
	return sum
}
