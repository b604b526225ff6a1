// Package reactive is a small push-based signal runtime.
//
// Signals are read through a Getter and written through a Setter. Reading a
// signal while an effect is executing subscribes that effect; writing a signal
// synchronously re-executes every subscriber before the Setter returns. Effects
// recompute their dependencies from scratch on every execution.
//
// There is no batching and no scheduler: N writes cause N propagation passes,
// and a write performed by a subscriber propagates depth-first inside the
// outer write. Cyclic writes are not detected.
//
// A Runtime is not safe for concurrent use. Confine it to one goroutine.
package reactive

// Runtime holds the execution context: which effect is currently running and
// which scope, if any, is collecting newly created effects.
type Runtime struct {
	// Effects currently executing, innermost last. A nil entry marks an
	// untracked section.
	stack []*Effect
	// Scopes collecting effects, innermost last. A nil entry is pushed for
	// every effect execution so scopes never leak into unrelated runs.
	scopes []*Scope
}

func NewRuntime() *Runtime {
	return &Runtime{}
}

// Depth reports how many execution frames are currently open.
func (rt *Runtime) Depth() int {
	return len(rt.stack)
}

func (rt *Runtime) current() *Effect {
	if len(rt.stack) == 0 {
		return nil
	}
	return rt.stack[len(rt.stack)-1]
}

// enter pushes e as the running effect and returns the matching exit. Callers
// defer the exit so the frame is popped on every path, panics included.
func (rt *Runtime) enter(e *Effect) (exit func()) {
	rt.stack = append(rt.stack, e)
	rt.scopes = append(rt.scopes, nil)
	depth, scopeDepth := len(rt.stack), len(rt.scopes)
	return func() {
		rt.stack = rt.stack[:depth-1]
		rt.scopes = rt.scopes[:scopeDepth-1]
	}
}

func (rt *Runtime) scope() *Scope {
	if len(rt.scopes) == 0 {
		return nil
	}
	return rt.scopes[len(rt.scopes)-1]
}

// Untrack runs fn with no running effect, so none of its reads subscribe.
func Untrack[T any](rt *Runtime, fn func() T) T {
	rt.stack = append(rt.stack, nil)
	depth := len(rt.stack)
	defer func() {
		rt.stack = rt.stack[:depth-1]
	}()
	return fn()
}
