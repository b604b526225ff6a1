package host

type Event struct {
	Type   string
	Target Element
	Data   any
}

// Listener is an event handler with an identity. Remove it with the same
// pointer it was added with.
type Listener struct {
	handle func(ev *Event)
}

func Listen(fn func(ev *Event)) *Listener {
	return &Listener{handle: fn}
}

func (l *Listener) Handle(ev *Event) {
	if l == nil || l.handle == nil {
		return
	}
	l.handle(ev)
}
