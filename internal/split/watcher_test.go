package split

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWatcher struct {
	current ViewportSize
	subs    map[int]func(ViewportSize)
	nextID  int
}

func newFakeWatcher(v ViewportSize) *fakeWatcher {
	return &fakeWatcher{current: v, subs: map[int]func(ViewportSize){}}
}

func (w *fakeWatcher) Current() ViewportSize { return w.current }

func (w *fakeWatcher) Subscribe(fn func(ViewportSize)) func() {
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	return func() { delete(w.subs, id) }
}

func (w *fakeWatcher) resize(v ViewportSize) {
	w.current = v
	for _, fn := range w.subs {
		fn(v)
	}
}

func TestWatchInitializesFromCurrent(t *testing.T) {
	w := newFakeWatcher(ViewportSize{Width: 400, Height: 800})
	c := newTestController(t, Options{})

	require.NoError(t, c.Watch(w, nil))
	assert.True(t, c.Initialized())
	assert.Equal(t, 182.5, c.Geometry().Left)
	assert.Len(t, w.subs, 1)
}

func TestWatchForwardsResets(t *testing.T) {
	w := newFakeWatcher(ViewportSize{Width: 400, Height: 800})
	c := newTestController(t, Options{})

	var updates []Update
	require.NoError(t, c.Watch(w, func(u Update) { updates = append(updates, u) }))

	send(t, c, PointerEvent{Kind: EventStart, At: at(0)})
	send(t, c, PointerEvent{Kind: EventMove, DeltaX: 90})
	send(t, c, PointerEvent{Kind: EventEnd})

	// Rotation.
	w.resize(ViewportSize{Width: 800, Height: 400})
	require.Len(t, updates, 1)
	assert.True(t, updates[0].ResetRequested)
	assert.Equal(t, 382.5, updates[0].Geometry.Left)
	assert.Equal(t, 200.0, updates[0].Geometry.Top)
	assert.Equal(t, PaneRatios{LeftWeight: 1, RightWeight: 1}, updates[0].Ratios)
}

func TestWatchSkipsInvalidSizes(t *testing.T) {
	w := newFakeWatcher(ViewportSize{Width: 400, Height: 800})
	c := newTestController(t, Options{})
	calls := 0
	require.NoError(t, c.Watch(w, func(Update) { calls++ }))

	w.resize(ViewportSize{Width: math.NaN(), Height: 10})
	assert.Zero(t, calls)
	assert.Equal(t, ViewportSize{Width: 400, Height: 800}, c.Viewport())
}

func TestWatchTwiceFails(t *testing.T) {
	w := newFakeWatcher(ViewportSize{Width: 10, Height: 10})
	c := newTestController(t, Options{})
	require.NoError(t, c.Watch(w, nil))
	assert.Error(t, c.Watch(w, nil))
}

func TestWatchPropagatesInitializeError(t *testing.T) {
	w := newFakeWatcher(ViewportSize{Width: -5, Height: 10})
	c := newTestController(t, Options{})
	require.ErrorIs(t, c.Watch(w, nil), ErrInvalidDimension)
	assert.Empty(t, w.subs)
}

func TestCloseDeregisters(t *testing.T) {
	w := newFakeWatcher(ViewportSize{Width: 400, Height: 800})
	c := newTestController(t, Options{})
	calls := 0
	require.NoError(t, c.Watch(w, func(Update) { calls++ }))

	c.Close()
	c.Close()
	assert.Empty(t, w.subs)

	w.resize(ViewportSize{Width: 100, Height: 100})
	assert.Zero(t, calls)
	assert.Equal(t, ViewportSize{Width: 400, Height: 800}, c.Viewport())
}
