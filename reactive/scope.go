package reactive

// Scope owns the effects created while it was collecting, so they can be
// disposed together.
type Scope struct {
	effects []*Effect
}

// Scope runs fn and collects every effect created directly inside it. Effects
// created by nested effect executions belong to those executions, not to the
// scope.
func (rt *Runtime) Scope(fn func() error) (*Scope, error) {
	s := &Scope{}
	rt.scopes = append(rt.scopes, s)
	depth := len(rt.scopes)
	defer func() {
		rt.scopes = rt.scopes[:depth-1]
	}()

	return s, fn()
}

// Len is the number of effects owned by the scope.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.effects)
}

// Dispose disposes owned effects, newest first.
func (s *Scope) Dispose() {
	if s == nil {
		return
	}
	effects := s.effects
	s.effects = nil
	for i := len(effects) - 1; i >= 0; i-- {
		effects[i].Dispose()
	}
}
