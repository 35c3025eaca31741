package glimmer

import "errors"

// CleanupFunc tears down whatever the previous effect run acquired. It runs
// before the next run of the body and on disposal.
type CleanupFunc func() error

// EffectFunc is an effect body. A non-nil CleanupFunc is stored for the next
// run or for disposal.
type EffectFunc func() (CleanupFunc, error)

// Effect is an eagerly-run side-effecting subscriber. The body runs under
// tracking at construction and again whenever a dependency changes.
type Effect struct {
	t       *Tracker
	fn      EffectFunc
	cleanup CleanupFunc
	active  bool
}

// NewEffect runs fn immediately and re-runs it whenever one of the reactive
// values it read changes.
func NewEffect(t *Tracker, fn func() error) *Effect {
	return NewEffectWithCleanup(t, func() (CleanupFunc, error) {
		return nil, fn()
	})
}

// NewEffectWithCleanup is NewEffect for bodies that acquire resources: the
// cleanup returned by one run is invoked before the next run and on Dispose.
func NewEffectWithCleanup(t *Tracker, fn EffectFunc) *Effect {
	e := &Effect{t: t, fn: fn, active: true}
	if err := e.run(); err != nil {
		t.reportError(e, err)
	}
	return e
}

func (e *Effect) isReactor() {}

func (e *Effect) run() error {
	cleanup, err := WithTracking(e.t, e, func() (CleanupFunc, error) {
		return e.fn()
	})
	e.cleanup = cleanup
	if err != nil {
		var circular *CircularDependencyError
		if errors.As(err, &circular) {
			return err
		}
		e.t.reportError(e, err)
	}
	return nil
}

// Update re-runs the body: pending cleanup first, then the body under a fresh
// tracking frame, replacing the dependency set. After Dispose it is a no-op,
// which is what makes disposal safe against updates already queued in a batch.
func (e *Effect) Update() error {
	if !e.active {
		return nil
	}
	e.runCleanup()
	e.t.CleanupContext(e)
	return e.run()
}

func (e *Effect) runCleanup() {
	if e.cleanup == nil {
		return
	}
	cleanup := e.cleanup
	e.cleanup = nil
	if err := cleanup(); err != nil {
		e.t.reportError(e, err)
	}
}

// Dispose deactivates the effect, runs the pending cleanup and removes every
// edge where this effect is the subscriber. Idempotent.
func (e *Effect) Dispose() {
	if !e.active {
		return
	}
	e.active = false
	e.runCleanup()
	e.t.CleanupContext(e)
}
