package glimmer_test

import (
	"fmt"
	"testing"

	"github.com/glimmer-ui/glimmer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologyDropAbaUpdates(t *testing.T) {
	tr := newTestTracker(t)

	//     A
	//   / |
	//  B  | <- Looks like a flag doesn't it? :D
	//   \ |
	//     C
	//     |
	//     D
	a := glimmer.NewSignal(tr, 2)
	b := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		return a.Value() - 1, nil
	})
	c := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		return a.Value() + b.Value(), nil
	})
	callCount := 0
	d := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		callCount++
		return fmt.Sprintf("d: %d", c.Value()), nil
	})

	// Trigger read
	assert.Equal(t, "d: 3", d.Value())
	assert.Equal(t, 1, callCount)

	require.NoError(t, a.Set(4))
	d.Value()
	assert.Equal(t, 2, callCount)
}

func TestTopologyDiamondRecomputesOnce(t *testing.T) {
	tr := newTestTracker(t)

	// "D" should only recompute once per read when "A" changes.
	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	a := glimmer.NewSignal(tr, "a")
	b := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		return a.Value(), nil
	})
	c := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		return a.Value(), nil
	})

	callCount := 0
	d := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		callCount++
		return b.Value() + " " + c.Value(), nil
	})

	assert.Equal(t, "a a", d.Value())
	assert.Equal(t, 1, callCount)
	callCount = 0

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa aa", d.Value())
	assert.Equal(t, 1, callCount)
}

func TestTopologyDiamondTail(t *testing.T) {
	tr := newTestTracker(t)

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	//     |
	//     E
	a := glimmer.NewSignal(tr, "a")
	b := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		return a.Value(), nil
	})
	c := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		return a.Value(), nil
	})
	d := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		return b.Value() + " " + c.Value(), nil
	})

	eCallCount := 0
	e := glimmer.NewComputed(tr, func(oldValue string) (string, error) {
		eCallCount++
		return d.Value(), nil
	})

	assert.Equal(t, "a a", e.Value())
	assert.Equal(t, 1, eCallCount)

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa aa", e.Value())
	assert.Equal(t, 2, eCallCount)
}

func TestTopologyDeepChain(t *testing.T) {
	tr := newTestTracker(t)

	src := glimmer.NewSignal(tr, 0)
	last := glimmer.NewComputed(tr, func(oldValue int) (int, error) {
		return src.Value() + 1, nil
	})
	for i := 0; i < 50; i++ {
		prev := last
		last = glimmer.NewComputed(tr, func(oldValue int) (int, error) {
			return prev.Value() + 1, nil
		})
	}

	runs := 0
	got := 0
	glimmer.NewEffect(tr, func() error {
		got = last.Value()
		runs++
		return nil
	})
	assert.Equal(t, 51, got)
	assert.Equal(t, 1, runs)

	require.NoError(t, src.Set(10))
	assert.Equal(t, 61, got)
	assert.Equal(t, 2, runs)
}
