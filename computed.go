package glimmer

import "fmt"

// Computed is a memoized derived cell. It is never eagerly evaluated: a
// dependency change only marks it dirty, the getter re-runs on the next read.
type Computed[T comparable] struct {
	t         *Tracker
	getter    func(oldValue T) (T, error)
	value     T
	dirty     bool
	computing bool
}

func NewComputed[T comparable](t *Tracker, getter func(oldValue T) (T, error)) *Computed[T] {
	return &Computed[T]{t: t, getter: getter, dirty: true}
}

func (c *Computed[T]) isReactor() {}

// Value returns the cached result, recomputing first when dirty. The read
// also tracks this Computed itself, so an outer context becomes a transitive
// subscriber.
func (c *Computed[T]) Value() T {
	if c.dirty {
		c.recompute()
	}
	c.t.Track(c, KeyValue)
	return c.value
}

func (c *Computed[T]) recompute() {
	if c.computing {
		c.t.reportError(c, &CircularDependencyError{
			Target: fmt.Sprintf("%T", c),
			Key:    KeyValue,
		})
		return
	}
	c.computing = true
	defer func() { c.computing = false }()

	// The dependency set is data-dependent, so the previous run's edges are
	// dropped and whatever the getter reads this time becomes the new set.
	c.t.CleanupContext(c)
	value, err := WithTracking(c.t, c, func() (T, error) {
		return c.getter(c.value)
	})
	if err != nil {
		// Cache and dirty flag stay as they were; the next read retries.
		c.t.reportError(c, err)
		return
	}
	c.value = value
	c.dirty = false
}

// Update marks the cached value stale and cascades the invalidation to
// whatever reads this Computed. It never recomputes here; with no current
// reader a Computed does no work no matter how often its sources change.
func (c *Computed[T]) Update() error {
	if c.dirty {
		return nil
	}
	c.dirty = true
	return c.t.Trigger(c, KeyValue)
}

// Dispose drops this Computed's edges in both roles. The next read after
// Dispose still works, it just resubscribes from scratch.
func (c *Computed[T]) Dispose() {
	c.t.CleanupContext(c)
	c.t.ClearDependencies(c)
	c.dirty = true
}
