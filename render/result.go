package render

import (
	"github.com/delaneyj/sigview/host"
	"github.com/delaneyj/sigview/reactive"
)

// Result is what a mount produced: either one node or a flat sequence.
//
// Conditionals and iterators rebuild after mounting, so their results are
// resolved from the region's current output every time they are read.
type Result struct {
	node   host.Node
	parts  []Result
	region *region
	seq    bool
	// Effects created by the mount, set only when disposing on teardown
	scope *reactive.Scope
}

func single(n host.Node) Result {
	return Result{node: n}
}

func sequence(parts []Result) Result {
	return Result{parts: parts, seq: true}
}

func live(g *region) Result {
	return Result{region: g, seq: true}
}

// Node is the mounted node, or nil when the result is a sequence.
func (r Result) Node() host.Node {
	if r.region != nil {
		if !r.region.mounted {
			return nil
		}
		return r.region.current.Node()
	}
	if r.seq {
		return nil
	}
	return r.node
}

// Nodes is the flat list of top-level mounted nodes.
func (r Result) Nodes() []host.Node {
	switch {
	case r.region != nil:
		if !r.region.mounted {
			return []host.Node{}
		}
		return r.region.current.Nodes()
	case r.seq:
		out := []host.Node{}
		for _, p := range r.parts {
			out = append(out, p.Nodes()...)
		}
		return out
	case r.node == nil:
		return []host.Node{}
	default:
		return []host.Node{r.node}
	}
}

func (r Result) IsSeq() bool {
	if r.region != nil {
		return !r.region.mounted || r.region.current.IsSeq()
	}
	return r.seq
}

func (r Result) Len() int {
	return len(r.Nodes())
}

// Effects is the number of effects owned by the result. It is always zero
// unless the renderer disposes on teardown.
func (r Result) Effects() int {
	return r.scope.Len()
}
