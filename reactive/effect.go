package reactive

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Effect is a re-runnable unit of work. Its dependencies are whatever signals
// it read during its latest execution.
type Effect struct {
	rt *Runtime
	fn func() error

	// Subscriber sets that currently contain this effect
	deps mapset.Set[*subscribers]
	// Run in reverse order before the next execution and on Dispose
	cleanups []func()

	disposed bool
}

// CreateEffect runs fn immediately and again whenever a signal it read during
// its latest run is written.
//
// An error from the first run is returned here; errors from later runs are
// returned by the Setter that triggered them. The effect stays subscribed to
// whatever it read before failing.
func CreateEffect(rt *Runtime, fn func() error) (*Effect, error) {
	e := &Effect{
		rt:   rt,
		fn:   fn,
		deps: mapset.NewThreadUnsafeSet[*subscribers](),
	}
	if s := rt.scope(); s != nil {
		s.effects = append(s.effects, e)
	}

	if err := e.execute(); err != nil {
		return e, fmt.Errorf("error while running the effect: %w", err)
	}
	return e, nil
}

func (e *Effect) execute() error {
	if e.disposed {
		return nil
	}

	e.runCleanups()
	e.unsubscribe()

	exit := e.rt.enter(e)
	defer exit()

	return e.fn()
}

func (e *Effect) unsubscribe() {
	for _, dep := range e.deps.ToSlice() {
		dep.effects.Remove(e)
	}
	e.deps.Clear()
}

func (e *Effect) runCleanups() {
	if len(e.cleanups) == 0 {
		return
	}
	cleanups := e.cleanups
	e.cleanups = nil

	// Cleanups must not subscribe whichever effect is running around us
	Untrack(e.rt, func() struct{} {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		return struct{}{}
	})
}

// Dispose unsubscribes the effect from every signal, runs its cleanups and
// stops it from ever executing again. Disposing twice is a no-op.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.runCleanups()
	e.unsubscribe()
}

func (e *Effect) Disposed() bool {
	return e.disposed
}

// Dependencies is the number of signals the effect read during its latest run.
func (e *Effect) Dependencies() int {
	return e.deps.Cardinality()
}

// OnCleanup registers fn on the running effect. It runs before that effect
// executes again, or when it is disposed. Outside an effect it does nothing.
func OnCleanup(rt *Runtime, fn func()) {
	if running := rt.current(); running != nil {
		running.cleanups = append(running.cleanups, fn)
	}
}
