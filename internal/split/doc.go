// Package split implements the interaction controller behind a two-pane
// side-by-side layout.
//
// A [Controller] owns the divider frame and the two pane weights. Hosts
// forward pointer lifecycle events (start, move, end, cancel) and viewport
// changes, and apply the [Update] values that come back. Dragging moves the
// divider and transfers weight between the panes; two gesture starts within
// the double-tap window, or any viewport change, restore the even split
// computed by [DefaultGeometry].
//
// The package has no rendering dependency. Coordinates are in whatever unit
// the host uses (pixels, terminal cells).
package split
