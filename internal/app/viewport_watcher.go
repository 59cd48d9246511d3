package app

import "github.com/treykane/side-by-side/internal/split"

// windowWatcher adapts Bubble Tea's window size messages into the
// split.ViewportWatcher contract. Subscribers run synchronously on the
// Update loop.
type windowWatcher struct {
	current split.ViewportSize
	subs    map[int]func(split.ViewportSize)
	nextID  int
}

func newWindowWatcher() *windowWatcher {
	return &windowWatcher{subs: map[int]func(split.ViewportSize){}}
}

func (w *windowWatcher) Current() split.ViewportSize {
	return w.current
}

func (w *windowWatcher) Subscribe(fn func(split.ViewportSize)) func() {
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	return func() { delete(w.subs, id) }
}

// notify records v and reports it to subscribers when it differs from the
// last size. Terminals repeat the same size on some focus changes; those are
// not viewport changes.
func (w *windowWatcher) notify(v split.ViewportSize) bool {
	if v == w.current {
		return false
	}
	w.current = v
	for _, fn := range w.subs {
		fn(v)
	}
	return true
}
