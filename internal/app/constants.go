package app

import "time"

// Layout constants
const (
	// FooterRows is the number of rows reserved for the status line and the
	// key help line.
	FooterRows = 2

	// PaneTitleRows is the header row above each pane's content.
	PaneTitleRows = 1
)

// Rendering constants control render timing and optimization
const (
	// RenderDebounce is the delay before a requested pane render runs, so a
	// burst of resize events renders once.
	RenderDebounce = 120 * time.Millisecond

	// RenderWidthBucket is the granularity for width-based render caching.
	// Widths are rounded down to a multiple of this value.
	RenderWidthBucket = 20

	// MouseMotionInterval is the minimum gap between forwarded motion and
	// wheel events. Drag deltas are cumulative, so dropped motion events
	// never lose divider position.
	MouseMotionInterval = 15 * time.Millisecond
)

// Content limits
const (
	// MaxPaneFileBytes is the largest file a pane will load.
	MaxPaneFileBytes = 4 * 1024 * 1024

	// ScrollStep is the number of lines a wheel notch or j/k press scrolls.
	ScrollStep = 3
)
