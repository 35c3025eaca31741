package glimmer

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// Key identifies one reactive property of a dependency. Keys are interned
// xxhash symbols so the indices stay integer-keyed while error messages can
// still name the property.
type Key uint64

var keyNames = map[Key]string{}

func KeyFor(name string) Key {
	k := Key(xxhash.Sum64String(name))
	keyNames[k] = name
	return k
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint64(k))
}

// KeyValue is the property every Signal and Computed exposes.
var KeyValue = KeyFor("value")

// Reactor is implemented by every node a Tracker can see: Signal, Computed
// and Effect.
type Reactor interface {
	isReactor()
}

// Subscriber is a Reactor that can be invalidated when one of its
// dependencies changes. Update returns an error only for structural
// violations (circularity); plain body failures are reported through the
// Tracker's OnErrorFunc instead.
type Subscriber interface {
	Reactor
	Update() error
}

type OnErrorFunc func(from Reactor, err error)

// Tracker owns the execution-context stack, the bidirectional dependency
// registry and the batching queue. It holds no ownership over the nodes it
// indexes; Dispose on a node is the removal path.
//
// A Tracker is not safe for concurrent use. All tracking, triggering and
// flushing happen synchronously on one logical thread.
type Tracker struct {
	stack []Subscriber // live execution contexts, nil frames pause tracking

	deps map[Reactor]map[Key][]Subscriber          // forward: target -> key -> subscribers, insertion order
	back map[Subscriber]map[Reactor]mapset.Set[Key] // reverse: context -> target -> keys

	batchDepth int
	pending    []Subscriber
	pendingSet mapset.Set[Subscriber]

	onError OnErrorFunc
}

func NewTracker(onError OnErrorFunc) *Tracker {
	return &Tracker{
		deps:       map[Reactor]map[Key][]Subscriber{},
		back:       map[Subscriber]map[Reactor]mapset.Set[Key]{},
		pendingSet: mapset.NewThreadUnsafeSet[Subscriber](),
		onError:    onError,
	}
}

func (t *Tracker) reportError(from Reactor, err error) {
	if t.onError != nil {
		t.onError(from, err)
	}
}

func (t *Tracker) activeContext() Subscriber {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

func (t *Tracker) onStack(sub Subscriber) bool {
	for _, frame := range t.stack {
		if frame == sub {
			return true
		}
	}
	return false
}

// WithTracking runs fn with ctx as the current execution context. The pop is
// deferred so the stack stays balanced when fn fails.
func WithTracking[R any](t *Tracker, ctx Subscriber, fn func() (R, error)) (R, error) {
	t.stack = append(t.stack, ctx)
	defer func() {
		t.stack = t.stack[:len(t.stack)-1]
	}()
	return fn()
}

// PauseTracking stops reads from registering dependencies until the matching
// ResumeTracking. Pairs nest with WithTracking frames.
func (t *Tracker) PauseTracking() {
	t.stack = append(t.stack, nil)
}

func (t *Tracker) ResumeTracking() {
	t.stack = t.stack[:len(t.stack)-1]
}

// Untrack runs fn with tracking paused, so reads inside it do not subscribe
// the surrounding context.
func Untrack[R any](t *Tracker, fn func() R) R {
	t.PauseTracking()
	defer t.ResumeTracking()
	return fn()
}

// Track records an edge between (target, key) and the current execution
// context in both indices. No-op when nothing is tracking.
func (t *Tracker) Track(target Reactor, key Key) {
	ctx := t.activeContext()
	if ctx == nil {
		return
	}

	byKey := t.deps[target]
	if byKey == nil {
		byKey = map[Key][]Subscriber{}
		t.deps[target] = byKey
	}
	already := false
	for _, sub := range byKey[key] {
		if sub == ctx {
			already = true
			break
		}
	}
	if !already {
		byKey[key] = append(byKey[key], ctx)
	}

	byTarget := t.back[ctx]
	if byTarget == nil {
		byTarget = map[Reactor]mapset.Set[Key]{}
		t.back[ctx] = byTarget
	}
	keys := byTarget[target]
	if keys == nil {
		keys = mapset.NewThreadUnsafeSet[Key]()
		byTarget[target] = keys
	}
	keys.Add(key)
}

// Trigger notifies every subscriber of (target, key), queueing when a batch
// is active and running inline otherwise. A subscriber of this exact pair
// that is still on the live execution stack means the write re-entered its
// own update, which is reported as a CircularDependencyError before anything
// is queued or run.
func (t *Tracker) Trigger(target Reactor, key Key) error {
	subs := t.deps[target][key]
	if len(subs) == 0 {
		return nil
	}
	for _, sub := range subs {
		if t.onStack(sub) {
			return &CircularDependencyError{
				Target: fmt.Sprintf("%T", target),
				Key:    key,
			}
		}
	}

	// Updates re-track and mutate the index, so iterate a snapshot.
	snapshot := make([]Subscriber, len(subs))
	copy(snapshot, subs)
	for _, sub := range snapshot {
		if t.batchDepth > 0 {
			t.enqueue(sub)
			continue
		}
		if err := sub.Update(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) enqueue(sub Subscriber) {
	if !t.pendingSet.Add(sub) {
		return
	}
	t.pending = append(t.pending, sub)
}

// QueueUpdate defers sub's update to the end of the current batch,
// deduplicated by subscriber identity. Outside a batch it runs immediately,
// with failures isolated through the OnErrorFunc so sibling updates still run.
func (t *Tracker) QueueUpdate(sub Subscriber) {
	if t.batchDepth > 0 {
		t.enqueue(sub)
		return
	}
	if err := sub.Update(); err != nil {
		t.reportError(sub, err)
	}
}

func (t *Tracker) StartBatch() {
	t.batchDepth++
}

// EndBatch closes one batch level and flushes the pending queue when the
// outermost level exits. Nested batches flush once.
func (t *Tracker) EndBatch() {
	t.batchDepth--
	if t.batchDepth == 0 {
		t.flush()
	}
}

func (t *Tracker) Batch(fn func()) {
	t.StartBatch()
	defer t.EndBatch()
	fn()
}

func (t *Tracker) flush() {
	for len(t.pending) > 0 {
		sub := t.pending[0]
		t.pending = t.pending[1:]
		t.pendingSet.Remove(sub)
		if err := sub.Update(); err != nil {
			t.reportError(sub, err)
		}
	}
}

// CleanupContext drops every edge held by ctx as a subscriber, from both
// indices, pruning entries that become empty. Idempotent. Called before each
// re-run so dependencies read in a previous run but not the next are dropped.
func (t *Tracker) CleanupContext(ctx Subscriber) {
	byTarget := t.back[ctx]
	if byTarget == nil {
		return
	}
	for target, keys := range byTarget {
		byKey := t.deps[target]
		if byKey == nil {
			continue
		}
		for key := range keys.Iter() {
			byKey[key] = removeSubscriber(byKey[key], ctx)
			if len(byKey[key]) == 0 {
				delete(byKey, key)
			}
		}
		if len(byKey) == 0 {
			delete(t.deps, target)
		}
	}
	delete(t.back, ctx)
}

// ClearDependencies drops every edge where target is the source. Used when a
// source is disposed.
func (t *Tracker) ClearDependencies(target Reactor) {
	byKey := t.deps[target]
	for key, subs := range byKey {
		for _, sub := range subs {
			byTarget := t.back[sub]
			keys := byTarget[target]
			if keys == nil {
				continue
			}
			keys.Remove(key)
			if keys.Cardinality() == 0 {
				delete(byTarget, target)
			}
			if len(byTarget) == 0 {
				delete(t.back, sub)
			}
		}
	}
	delete(t.deps, target)
}

func removeSubscriber(subs []Subscriber, sub Subscriber) []Subscriber {
	for i, s := range subs {
		if s == sub {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}
