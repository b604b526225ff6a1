package reactive

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

type Getter[T any] func() T
type Setter[T any] func(value T) error

// subscribers is the set of effects listening to one signal. It lives behind a
// pointer so effects can hold it in their own dependency set and remove
// themselves in O(1).
type subscribers struct {
	effects mapset.Set[*Effect]
}

func newSubscribers() *subscribers {
	return &subscribers{
		effects: mapset.NewThreadUnsafeSet[*Effect](),
	}
}

type signal[T any] struct {
	rt    *Runtime
	value T
	subs  *subscribers
}

// CreateSignal makes a mutable cell and returns its accessors.
//
// The getter subscribes the running effect, if any, and returns the current
// value. The setter stores the value and then executes every effect that was
// subscribed at the moment of the write. An effect that subscribes again while
// it runs is not executed a second time by the same write.
func CreateSignal[T any](rt *Runtime, value T) (Getter[T], Setter[T]) {
	s := &signal[T]{
		rt:    rt,
		value: value,
		subs:  newSubscribers(),
	}
	return s.read, s.write
}

func (s *signal[T]) read() T {
	if running := s.rt.current(); running != nil {
		s.subs.effects.Add(running)
		running.deps.Add(s.subs)
	}
	return s.value
}

func (s *signal[T]) write(next T) error {
	s.value = next

	// Snapshot first: subscribers resubscribe while they run
	for _, sub := range s.subs.effects.ToSlice() {
		if err := sub.execute(); err != nil {
			return fmt.Errorf("error while notifying subscriber: %w", err)
		}
	}
	return nil
}
