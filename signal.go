package glimmer

import "reflect"

type subscription[T comparable] struct {
	fn func(value T) error
	id uintptr
}

// Signal is a single mutable reactive cell. Reads register a dependency with
// the Tracker, writes propagate to both direct subscribers and the graph.
type Signal[T comparable] struct {
	t     *Tracker
	value T
	subs  []subscription[T]
}

func NewSignal[T comparable](t *Tracker, initial T) *Signal[T] {
	return &Signal[T]{t: t, value: initial}
}

func (s *Signal[T]) isReactor() {}

func (s *Signal[T]) Value() T {
	s.t.Track(s, KeyValue)
	return s.value
}

// Peek returns the stored value without registering a dependency.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores v and propagates. A write of an equal value is a no-op and never
// notifies. Direct subscribers run first, each isolated so a failing one
// never starves its siblings; the graph trigger follows. The returned error
// is structural only (circularity detected during propagation).
func (s *Signal[T]) Set(v T) error {
	if s.value == v {
		return nil
	}
	s.value = v

	// Snapshot, a callback may unsubscribe itself mid-notification.
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		if err := sub.fn(v); err != nil {
			s.t.reportError(s, err)
		}
	}

	return s.t.Trigger(s, KeyValue)
}

// Subscribe registers fn to run synchronously with every accepted write,
// outside of automatic tracking. Registrations have set semantics: the same
// function registered twice collapses to one entry. The returned closure
// removes the registration.
func (s *Signal[T]) Subscribe(fn func(value T) error) (unsubscribe func()) {
	id := reflect.ValueOf(fn).Pointer()
	for _, sub := range s.subs {
		if sub.id == id {
			return func() { s.unsubscribe(id) }
		}
	}
	s.subs = append(s.subs, subscription[T]{fn: fn, id: id})
	return func() { s.unsubscribe(id) }
}

func (s *Signal[T]) unsubscribe(id uintptr) {
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Dispose clears the direct subscribers and drops every graph edge where this
// signal is the source. Later writes still store the value but notify nobody.
func (s *Signal[T]) Dispose() {
	s.subs = nil
	s.t.ClearDependencies(s)
}
