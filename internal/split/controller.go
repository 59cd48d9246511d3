package split

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/treykane/side-by-side/internal/logging"
)

// State is the controller's gesture state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EventKind identifies a pointer lifecycle event.
type EventKind int

const (
	EventStart EventKind = iota
	EventMove
	EventEnd
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	case EventCancel:
		return "cancel"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// PointerEvent is one raw gesture event forwarded by the host. DeltaX is
// only read for EventMove and is cumulative since the gesture started.
type PointerEvent struct {
	Kind   EventKind
	At     time.Time
	DeltaX float64
}

// Update is what the host applies after an event. When Changed is false the
// Geometry and Ratios fields are zero and must not be applied. Diagnostic
// carries a problem the controller recovered from by ignoring the event.
type Update struct {
	Geometry       DividerGeometry
	Ratios         PaneRatios
	Changed        bool
	ResetRequested bool
	Diagnostic     error
}

// Options configure a Controller. They are fixed for its lifetime.
type Options struct {
	Divider DividerSize
	// DoubleTapWindow defaults to DefaultDoubleTapWindow when zero.
	DoubleTapWindow time.Duration
	Basis           WeightBasis
	Clamp           ClampPolicy
	// Logger defaults to logging.New("split").
	Logger *slog.Logger
}

// Controller turns a gesture stream and viewport changes into divider
// geometry and pane weights.
//
// A Controller is not safe for concurrent use. Hosts deliver events from a
// single loop in the order the input system produced them.
type Controller struct {
	opts        Options
	log         *slog.Logger
	initialized bool
	viewport    ViewportSize
	geometry    DividerGeometry
	ratios      PaneRatios
	state       State
	session     session
	taps        tapDetector

	unsubscribe func()
}

// New validates opts and returns an uninitialized controller.
func New(opts Options) (*Controller, error) {
	if err := opts.Divider.Validate(); err != nil {
		return nil, err
	}
	if opts.DoubleTapWindow < 0 {
		return nil, fmt.Errorf("double-tap window %s must not be negative", opts.DoubleTapWindow)
	}
	if opts.DoubleTapWindow == 0 {
		opts.DoubleTapWindow = DefaultDoubleTapWindow
	}
	if opts.Clamp.Enabled && !finiteNonNegative(opts.Clamp.MinWeight) {
		return nil, fmt.Errorf("clamp min weight %v: %w", opts.Clamp.MinWeight, ErrInvalidDimension)
	}
	if opts.Logger == nil {
		opts.Logger = logging.New("split")
	}
	return &Controller{
		opts:  opts,
		log:   opts.Logger,
		state: StateIdle,
		taps:  tapDetector{window: opts.DoubleTapWindow},
	}, nil
}

// Initialize computes and stores the default geometry for v. It must be
// called exactly once before any pointer event.
func (c *Controller) Initialize(v ViewportSize) (DividerGeometry, PaneRatios, error) {
	if c.initialized {
		return DividerGeometry{}, PaneRatios{}, ErrAlreadyInitialized
	}
	if err := c.resetTo(v); err != nil {
		return DividerGeometry{}, PaneRatios{}, fmt.Errorf("initialize: %w", err)
	}
	c.initialized = true
	c.log.Debug("initialized", "viewport_width", v.Width, "viewport_height", v.Height, "left", c.geometry.Left)
	return c.geometry, c.ratios, nil
}

// HandlePointerEvent applies one gesture event. The only errors returned are
// usage errors (ErrNotInitialized, an unknown kind); recoverable problems are
// reported through Update.Diagnostic.
func (c *Controller) HandlePointerEvent(ev PointerEvent) (Update, error) {
	if !c.initialized {
		return Update{}, fmt.Errorf("%s event: %w", ev.Kind, ErrNotInitialized)
	}
	switch ev.Kind {
	case EventStart:
		return c.start(ev.At), nil
	case EventMove:
		return c.move(ev.DeltaX), nil
	case EventEnd, EventCancel:
		return c.finish(ev.Kind, ev.At), nil
	default:
		return Update{}, fmt.Errorf("unknown pointer event kind %d", int(ev.Kind))
	}
}

// HandleViewportChange resets to the default geometry for v. An in-progress
// drag is invalidated: its later moves are ignored, and its end or cancel
// still returns the controller to idle.
func (c *Controller) HandleViewportChange(v ViewportSize) (DividerGeometry, PaneRatios, error) {
	if !c.initialized {
		return DividerGeometry{}, PaneRatios{}, fmt.Errorf("viewport change: %w", ErrNotInitialized)
	}
	if err := c.resetTo(v); err != nil {
		return DividerGeometry{}, PaneRatios{}, fmt.Errorf("viewport change: %w", err)
	}
	if c.session.active {
		c.session.stale = true
		c.log.Debug("viewport changed mid-drag, gesture invalidated")
	}
	return c.geometry, c.ratios, nil
}

// Reset restores the default geometry for the current viewport without
// touching gesture state.
func (c *Controller) Reset() (Update, error) {
	if !c.initialized {
		return Update{}, fmt.Errorf("reset: %w", ErrNotInitialized)
	}
	if err := c.resetTo(c.viewport); err != nil {
		return Update{}, fmt.Errorf("reset: %w", err)
	}
	return c.changed(true), nil
}

// State reports whether a drag is in progress.
func (c *Controller) State() State { return c.state }

// Geometry returns the current divider frame.
func (c *Controller) Geometry() DividerGeometry { return c.geometry }

// Ratios returns the current pane weights.
func (c *Controller) Ratios() PaneRatios { return c.ratios }

// Viewport returns the last viewport the controller was reset for.
func (c *Controller) Viewport() ViewportSize { return c.viewport }

// Initialized reports whether Initialize has succeeded.
func (c *Controller) Initialized() bool { return c.initialized }

func (c *Controller) start(now time.Time) Update {
	if c.session.active {
		c.log.Debug("gesture start while dragging, replacing session")
	}
	reset := c.taps.observe(now) == ActionResetView
	if reset {
		// The viewport was validated when it was stored.
		if err := c.resetTo(c.viewport); err != nil {
			c.log.Warn("double-tap reset failed", "error", err)
		}
		c.log.Debug("double-tap, view reset", "left", c.geometry.Left)
	}
	c.session = beginSession(c.geometry, c.ratios, now)
	c.state = StateDragging
	return c.changed(reset)
}

func (c *Controller) move(dx float64) Update {
	if !c.session.active || c.session.stale {
		err := fmt.Errorf("move without an active gesture: %w", ErrProtocolViolation)
		c.log.Debug("ignored pointer event", "error", err)
		return Update{Diagnostic: err}
	}
	if !finite(dx) {
		err := fmt.Errorf("move delta %v: %w", dx, ErrInvalidDimension)
		c.log.Debug("ignored pointer event", "error", err)
		return Update{Diagnostic: err}
	}
	dx = c.opts.Clamp.Apply(c.session.start, dx)
	c.geometry.Left, c.ratios = ApplyDrag(c.session.start, dx)
	return c.changed(false)
}

func (c *Controller) finish(kind EventKind, now time.Time) Update {
	if !c.session.active {
		err := fmt.Errorf("%s without an active gesture: %w", kind, ErrProtocolViolation)
		c.log.Debug("ignored pointer event", "error", err)
		return Update{Diagnostic: err}
	}
	c.log.Debug("gesture finished", "kind", kind.String(), "duration", now.Sub(c.session.startedAt), "left", c.geometry.Left)
	c.session = session{}
	c.state = StateIdle
	return Update{}
}

func (c *Controller) resetTo(v ViewportSize) error {
	geometry, ratios, err := DefaultGeometry(v, c.opts.Divider, c.opts.Basis)
	if err != nil {
		return err
	}
	c.viewport = v
	c.geometry = geometry
	c.ratios = ratios
	return nil
}

func (c *Controller) changed(reset bool) Update {
	return Update{
		Geometry:       c.geometry,
		Ratios:         c.ratios,
		Changed:        true,
		ResetRequested: reset,
	}
}
