// layout.go turns the split controller's geometry into terminal cells.
//
// The controller works in cells as its pixel unit: the viewport it is given
// is the content area (terminal height minus the footer) and its weights are
// seeded with half the viewport width. Pane widths come from the weights, the
// way a flex layout would size them; the divider column sits between the
// panes and its grab handle is drawn at the controller's Top.
package app

import (
	"math"

	"github.com/treykane/side-by-side/internal/split"
)

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	LeftWidth     int // columns given to the left pane
	RightWidth    int // columns given to the right pane
	DividerX      int // first column of the divider
	DividerWidth  int // columns the divider occupies
	ContentHeight int // rows above the footer
	HandleTop     int // first row of the grab handle
	HandleHeight  int // rows of the grab handle, clipped to ContentHeight
	PaneBodyRows  int // rows below each pane's title
}

// contentViewport is the area handed to the split controller.
func (m *Model) contentViewport() split.ViewportSize {
	return split.ViewportSize{
		Width:  float64(max(0, m.width)),
		Height: float64(max(0, m.height-FooterRows)),
	}
}

// calculateLayout computes all UI dimensions from the terminal size and the
// current split geometry.
func (m *Model) calculateLayout() LayoutDimensions {
	contentHeight := max(0, m.height-FooterRows)
	dividerWidth := clamp(m.cfg.Divider.Width, 0, max(0, m.width))
	paneArea := max(0, m.width-dividerWidth)

	leftWidth := clamp(int(math.Round(float64(paneArea)*m.ratios.Fraction())), 0, paneArea)

	handleTop := 0
	if contentHeight > 0 {
		handleTop = clamp(int(math.Floor(m.geometry.Top)), 0, contentHeight-1)
	}
	handleHeight := clamp(int(math.Round(m.geometry.Height)), 0, contentHeight-handleTop)

	return LayoutDimensions{
		LeftWidth:     leftWidth,
		RightWidth:    paneArea - leftWidth,
		DividerX:      leftWidth,
		DividerWidth:  dividerWidth,
		ContentHeight: contentHeight,
		HandleTop:     handleTop,
		HandleHeight:  handleHeight,
		PaneBodyRows:  max(0, contentHeight-PaneTitleRows),
	}
}

// onDivider reports whether a cell belongs to the divider. Both the drawn
// column and the controller's own frame count, since rounding can put them
// one column apart.
func (m *Model) onDivider(x, y int, layout LayoutDimensions) bool {
	if y < 0 || y >= layout.ContentHeight {
		return false
	}
	if x >= layout.DividerX && x < layout.DividerX+layout.DividerWidth {
		return true
	}
	left := int(math.Floor(m.geometry.Left))
	return x >= left && x < left+layout.DividerWidth
}

// paneAt returns the pane under a cell.
func (m *Model) paneAt(x, y int, layout LayoutDimensions) (paneID, bool) {
	if y < 0 || y >= layout.ContentHeight {
		return 0, false
	}
	switch {
	case x >= 0 && x < layout.LeftWidth:
		return paneLeft, true
	case x >= layout.DividerX+layout.DividerWidth && x < m.width:
		return paneRight, true
	default:
		return 0, false
	}
}

// applyLayout pushes pane sizes into the viewports.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.panes[paneLeft].viewport.Width = layout.LeftWidth
	m.panes[paneLeft].viewport.Height = layout.PaneBodyRows
	m.panes[paneRight].viewport.Width = layout.RightWidth
	m.panes[paneRight].viewport.Height = layout.PaneBodyRows
}
