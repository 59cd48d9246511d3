package split

import "time"

// DefaultDoubleTapWindow is the longest gap between two gesture starts that
// still counts as a double-tap.
const DefaultDoubleTapWindow = 500 * time.Millisecond

// Action is the outcome of a gesture start.
type Action int

const (
	// ActionBeginDrag starts an ordinary drag.
	ActionBeginDrag Action = iota
	// ActionResetView starts a drag that is the second half of a double-tap.
	ActionResetView
)

func (a Action) String() string {
	if a == ActionResetView {
		return "reset-view"
	}
	return "begin-drag"
}

// tapDetector remembers the previous gesture start across gestures.
type tapDetector struct {
	window time.Duration
	last   time.Time
	seen   bool
}

// observe classifies a gesture start at now and records it. The window is
// always measured against the immediately preceding start, so a run of quick
// taps resets once per pair rather than chaining.
func (d *tapDetector) observe(now time.Time) Action {
	if !d.seen {
		d.seen = true
		d.last = now
		return ActionBeginDrag
	}
	action := ActionBeginDrag
	if now.Sub(d.last) < d.window {
		action = ActionResetView
	}
	d.last = now
	return action
}

// session is the ephemeral state of one drag.
type session struct {
	active    bool
	stale     bool
	start     DragStart
	startedAt time.Time
}

func beginSession(g DividerGeometry, r PaneRatios, now time.Time) session {
	return session{
		active: true,
		start: DragStart{
			DividerLeft: g.Left,
			LeftWeight:  r.LeftWeight,
			RightWeight: r.RightWeight,
		},
		startedAt: now,
	}
}
