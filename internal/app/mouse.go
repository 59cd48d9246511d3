package app

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/side-by-side/internal/split"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

// MouseThrottle rate-limits motion and wheel events. Pass its Filter to
// tea.WithFilter. Presses and releases are never dropped.
type MouseThrottle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewMouseThrottle returns a throttle that forwards at most one motion or
// wheel event per MouseMotionInterval.
func NewMouseThrottle() *MouseThrottle {
	return &MouseThrottle{interval: MouseMotionInterval, now: time.Now}
}

// Filter has the tea.WithFilter signature.
func (t *MouseThrottle) Filter(_ tea.Model, msg tea.Msg) tea.Msg {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || !throttled(mouse) {
		return msg
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return nil
	}
	t.last = now
	return msg
}

func throttled(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionMotion || isWheel(msg)
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown
}

// ---------------------------------------------------------------------------
// Mouse handling: divider drag first, then pane focus and scrolling.
// ---------------------------------------------------------------------------

// dragState tracks the host side of a divider drag. originX is the column of
// the press; the controller receives x-originX on every move. stale is set
// when the window resizes mid-drag, after which moves are no longer sent.
type dragState struct {
	active  bool
	stale   bool
	originX int
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.split.Initialized() {
		return m, nil
	}
	switch {
	case isWheel(msg):
		return m.handleWheel(msg)
	case msg.Action == tea.MouseActionPress:
		return m.handlePress(msg)
	case msg.Action == tea.MouseActionMotion:
		if m.drag.active && !m.drag.stale {
			m.dragTo(msg.X)
		}
		return m, nil
	case msg.Action == tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		if !m.drag.stale {
			m.dragTo(msg.X)
		}
		return m.endDrag(split.EventEnd)
	}
	return m, nil
}

func (m *Model) handlePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		if m.drag.active {
			return m.endDrag(split.EventCancel)
		}
		return m, nil
	}
	layout := m.calculateLayout()
	if m.onDivider(msg.X, msg.Y, layout) {
		return m.beginDrag(msg.X)
	}
	if id, ok := m.paneAt(msg.X, msg.Y, layout); ok {
		m.focus = id
	}
	return m, nil
}

func (m *Model) handleWheel(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	id, ok := m.paneAt(msg.X, msg.Y, m.calculateLayout())
	if !ok {
		return m, nil
	}
	vp := &m.panes[id].viewport
	if msg.Button == tea.MouseButtonWheelUp {
		vp.LineUp(ScrollStep)
	} else {
		vp.LineDown(ScrollStep)
	}
	return m, nil
}

// beginDrag starts a gesture at column x. A start within the double-tap
// window resets the split instead of continuing from the current position.
func (m *Model) beginDrag(x int) (tea.Model, tea.Cmd) {
	u, err := m.split.HandlePointerEvent(split.PointerEvent{Kind: split.EventStart, At: m.now()})
	if err != nil {
		m.setStatusError("Divider drag failed", err, "x", x)
		return m, nil
	}
	m.drag = dragState{active: true, originX: x}
	m.applySplitUpdate(u)
	if u.ResetRequested {
		m.status = "Split reset"
		return m, m.requestRenderAll()
	}
	m.status = "Dragging divider"
	return m, nil
}

func (m *Model) dragTo(x int) {
	u, err := m.split.HandlePointerEvent(split.PointerEvent{
		Kind:   split.EventMove,
		At:     m.now(),
		DeltaX: float64(x - m.drag.originX),
	})
	if err != nil {
		m.setStatusError("Divider drag failed", err, "x", x)
		return
	}
	m.applySplitUpdate(u)
}

// endDrag finishes the gesture with kind (EventEnd or EventCancel) and
// re-renders both panes at their final widths.
func (m *Model) endDrag(kind split.EventKind) (tea.Model, tea.Cmd) {
	u, err := m.split.HandlePointerEvent(split.PointerEvent{Kind: kind, At: m.now()})
	m.drag = dragState{}
	if err != nil {
		m.setStatusError("Divider drag failed", err, "event", kind.String())
		return m, nil
	}
	m.applySplitUpdate(u)
	if kind == split.EventCancel {
		m.status = "Drag cancelled"
	} else {
		m.status = fmt.Sprintf("Split %s", m.ratioLabel())
	}
	return m, m.requestRenderAll()
}

// cancelDrag cancels an in-progress drag, if any.
func (m *Model) cancelDrag() (tea.Model, tea.Cmd) {
	if !m.drag.active {
		return m, nil
	}
	return m.endDrag(split.EventCancel)
}
