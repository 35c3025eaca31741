package glimmer_test

import (
	"errors"
	"testing"

	"github.com/glimmer-ui/glimmer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// N reads without a dependency change invoke the getter at most once
func TestComputedCachesUntilDirty(t *testing.T) {
	tr := newTestTracker(t)
	a := glimmer.NewSignal(tr, 3)

	calls := 0
	c := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		calls++
		return a.Value() * 2, nil
	})
	assert.Equal(t, 0, calls, "never eagerly evaluated")

	assert.Equal(t, 6, c.Value())
	assert.Equal(t, 6, c.Value())
	assert.Equal(t, 6, c.Value())
	assert.Equal(t, 1, calls)
}

// a dependency change re-runs the getter on the next read, not at write time
func TestComputedIsPullBased(t *testing.T) {
	tr := newTestTracker(t)
	a := glimmer.NewSignal(tr, 1)

	calls := 0
	c := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		calls++
		return a.Value() + 10, nil
	})
	assert.Equal(t, 11, c.Value())
	assert.Equal(t, 1, calls)

	require.NoError(t, a.Set(2))
	require.NoError(t, a.Set(3))
	assert.Equal(t, 1, calls, "writes alone must not recompute")

	assert.Equal(t, 13, c.Value())
	assert.Equal(t, 2, calls)
}

// a computed reading a computed becomes a transitive subscriber
func TestComputedNesting(t *testing.T) {
	tr := newTestTracker(t)
	a := glimmer.NewSignal(tr, 2)
	double := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		return a.Value() * 2, nil
	})
	quad := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		return double.Value() * 2, nil
	})

	assert.Equal(t, 8, quad.Value())
	require.NoError(t, a.Set(3))
	assert.Equal(t, 12, quad.Value())
}

// dependencies read in a previous run but not the next are dropped
func TestComputedDropsStaleDependencies(t *testing.T) {
	tr := newTestTracker(t)
	useFirst := glimmer.NewSignal(tr, true)
	first := glimmer.NewSignal(tr, "first")
	second := glimmer.NewSignal(tr, "second")

	calls := 0
	c := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		calls++
		if useFirst.Value() {
			return first.Value(), nil
		}
		return second.Value(), nil
	})

	assert.Equal(t, "first", c.Value())
	assert.Equal(t, 1, calls)

	require.NoError(t, second.Set("second!"))
	assert.Equal(t, "first", c.Value())
	assert.Equal(t, 1, calls, "unread branch must not invalidate")

	require.NoError(t, useFirst.Set(false))
	assert.Equal(t, "second!", c.Value())
	assert.Equal(t, 2, calls)

	require.NoError(t, first.Set("first!"))
	assert.Equal(t, "second!", c.Value())
	assert.Equal(t, 2, calls, "dropped dependency must not invalidate")
}

// a failing getter leaves the cache and dirty flag as they were
func TestComputedGetterFailureIsolated(t *testing.T) {
	errs := []error{}
	tr := glimmer.NewTracker(func(from glimmer.Reactor, err error) {
		errs = append(errs, err)
	})
	fail := glimmer.NewSignal(tr, false)
	a := glimmer.NewSignal(tr, 1)

	boom := errors.New("boom")
	calls := 0
	c := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		calls++
		if fail.Value() {
			return 0, boom
		}
		return a.Value() * 2, nil
	})

	assert.Equal(t, 2, c.Value())
	assert.Equal(t, 1, calls)

	require.NoError(t, fail.Set(true))
	assert.Equal(t, 2, c.Value(), "failed recompute keeps the previous cache")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)

	require.NoError(t, fail.Set(false))
	assert.Equal(t, 2, c.Value())
	assert.Equal(t, 3, calls, "stays dirty after failure, so the read retries")
}

// disposing a computed detaches it from its sources
func TestComputedDispose(t *testing.T) {
	tr := newTestTracker(t)
	a := glimmer.NewSignal(tr, 1)

	calls := 0
	c := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		calls++
		return a.Value(), nil
	})
	assert.Equal(t, 1, c.Value())

	runs := 0
	e := glimmer.NewEffect(tr, func() error {
		c.Value()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	c.Dispose()
	e.Dispose()
	require.NoError(t, a.Set(2))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, runs)
}
